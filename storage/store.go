// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokenrollup/fault"
)

//go:generate mockgen -destination=mocks/store.go -package=mocks github.com/bitmark-inc/tokenrollup/storage Store

// Store - transactional path-addressed key/value store
type Store interface {
	Begin() error
	Has(Path) (bool, error)
	Get(Path) ([]byte, error)
	Put(Path, []byte) error
	Commit() error
	Abort()
	InUse() bool
	Iterate(Path, func(Path, []byte) error) error
	Close() error
}

// the operations each database must provide
type backend interface {
	get([]byte) ([]byte, error) // nil when absent
	has([]byte) (bool, error)
	write([]Element) error // atomic
	iterate([]byte, func([]byte, []byte) error) error
	close() error
}

// Handle - a Store over one of the backends
type Handle struct {
	sync.Mutex
	inUse   bool
	log     *logger.L
	backend backend
	cache   Cache
}

func newHandle(b backend, log *logger.L) *Handle {
	return &Handle{
		inUse:   false,
		log:     log,
		backend: b,
		cache:   newCache(),
	}
}

// Begin - start a transaction
func (h *Handle) Begin() error {
	h.Lock()
	defer h.Unlock()

	if h.inUse {
		return fault.ErrTransactionAlreadyInUse
	}

	h.inUse = true
	return nil
}

// Put - record a pending write
func (h *Handle) Put(path Path, value []byte) error {
	h.Lock()
	defer h.Unlock()

	if !h.inUse {
		return fault.ErrTransactionNotInUse
	}
	h.cache.Set(string(path), value)
	return nil
}

// Get - read a value, pending writes first
//
// returns nil if the path is absent
func (h *Handle) Get(path Path) ([]byte, error) {
	h.Lock()
	defer h.Unlock()

	if val, found := h.cache.Get(string(path)); found {
		return val, nil
	}
	return h.backend.get(path.bytes())
}

// Has - check if a path exists, pending writes first
func (h *Handle) Has(path Path) (bool, error) {
	h.Lock()
	defer h.Unlock()

	if _, found := h.cache.Get(string(path)); found {
		return true, nil
	}
	return h.backend.has(path.bytes())
}

// Commit - write all pending values atomically and end the transaction
//
// on failure the pending writes are discarded
func (h *Handle) Commit() error {
	h.Lock()
	defer h.Unlock()

	if !h.inUse {
		return fault.ErrTransactionNotInUse
	}

	pending := h.cache.Pending()
	err := h.backend.write(pending)
	if nil != err {
		h.log.Errorf("commit of %d items failed: %s", len(pending), err)
	} else {
		h.log.Debugf("committed %d items", len(pending))
	}

	h.cache.Clear()
	h.inUse = false
	return err
}

// Abort - discard pending writes and end the transaction
func (h *Handle) Abort() {
	h.Lock()
	defer h.Unlock()

	h.cache.Clear()
	h.inUse = false
}

// InUse - true between Begin and Commit/Abort
func (h *Handle) InUse() bool {
	h.Lock()
	defer h.Unlock()

	return h.inUse
}

// Iterate - call fn for each committed path below prefix, in key order
//
// fn must not call back into the store
func (h *Handle) Iterate(prefix Path, fn func(Path, []byte) error) error {
	h.Lock()
	defer h.Unlock()

	return h.backend.iterate(append(prefix.bytes(), '/'), func(key []byte, value []byte) error {
		return fn(Path(key), value)
	})
}

// Close - release the database
func (h *Handle) Close() error {
	h.Lock()
	defer h.Unlock()

	h.cache.Clear()
	h.inUse = false
	return h.backend.close()
}
