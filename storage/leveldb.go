// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

type levelDB struct {
	db *leveldb.DB
}

func openLevelDB(name string, readOnly bool) (*levelDB, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return &levelDB{db: db}, nil
}

func openMemoryDB() (*levelDB, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return &levelDB{db: db}, nil
}

func (l *levelDB) get(key []byte) ([]byte, error) {
	value, err := l.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

func (l *levelDB) has(key []byte) (bool, error) {
	return l.db.Has(key, nil)
}

func (l *levelDB) write(elements []Element) error {
	batch := new(leveldb.Batch)
	for _, e := range elements {
		batch.Put(e.Key, e.Value)
	}
	return l.db.Write(batch, nil)
}

func (l *levelDB) iterate(prefix []byte, fn func([]byte, []byte) error) error {
	iter := l.db.NewIterator(ldb_util.BytesPrefix(prefix), nil)
	defer iter.Release()

	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := make([]byte, len(iter.Key()))
		copy(key, iter.Key())
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())

		if err := fn(key, value); nil != err {
			return err
		}
	}
	return iter.Error()
}

func (l *levelDB) close() error {
	return l.db.Close()
}
