// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"strings"

	"github.com/bitmark-inc/tokenrollup/account"
	"github.com/bitmark-inc/tokenrollup/fault"
	"github.com/bitmark-inc/tokenrollup/message"
	"github.com/bitmark-inc/tokenrollup/storage"
	"github.com/bitmark-inc/tokenrollup/token"
)

// NonceSize - bytes in the stored form of a nonce
const NonceSize = 8

// roots of the two namespaces
const (
	ledgerRoot = storage.Path("/ledger")
	nonceRoot  = storage.Path("/nonce")
)

// Ledger - balances and nonces on top of a store
type Ledger struct {
	store storage.Store
}

// New - ledger over the given store
func New(store storage.Store) *Ledger {
	return &Ledger{
		store: store,
	}
}

// BalancePath - /ledger/<account>/<token hex>
func BalancePath(owner account.PublicKeyHash, tk token.Token) (storage.Path, error) {
	if !owner.IsValid() {
		return "", fault.ErrInvalidPath
	}
	return ledgerRoot.Concat(owner.String(), tk.Hex())
}

// NoncePath - /nonce/<account>
func NoncePath(owner account.PublicKeyHash) (storage.Path, error) {
	if !owner.IsValid() {
		return "", fault.ErrInvalidPath
	}
	return nonceRoot.Concat(owner.String())
}

// ReadBalance - zero when absent
func (l *Ledger) ReadBalance(owner account.PublicKeyHash, tk token.Token) (token.Amount, error) {
	path, err := BalancePath(owner, tk)
	if nil != err {
		return token.Zero, err
	}
	value, err := l.store.Get(path)
	if nil != err {
		return token.Zero, err
	}
	if nil == value {
		return token.Zero, nil
	}
	return token.AmountFromBytes(value)
}

// StoreBalance - overwrite a balance
func (l *Ledger) StoreBalance(owner account.PublicKeyHash, tk token.Token, amount token.Amount) error {
	path, err := BalancePath(owner, tk)
	if nil != err {
		return err
	}
	return l.store.Put(path, amount.Bytes())
}

// ReadNonce - zero when absent
func (l *Ledger) ReadNonce(owner account.PublicKeyHash) (message.Nonce, error) {
	path, err := NoncePath(owner)
	if nil != err {
		return 0, err
	}
	value, err := l.store.Get(path)
	if nil != err {
		return 0, err
	}
	if nil == value {
		return 0, nil
	}
	return nonceFromBytes(value)
}

// StoreNonce - overwrite a nonce
func (l *Ledger) StoreNonce(owner account.PublicKeyHash, nonce message.Nonce) error {
	path, err := NoncePath(owner)
	if nil != err {
		return err
	}
	value := make([]byte, NonceSize)
	binary.BigEndian.PutUint64(value, uint64(nonce))
	return l.store.Put(path, value)
}

// Balances - call fn for each stored balance
//
// sees committed state only
func (l *Ledger) Balances(fn func(account.PublicKeyHash, token.Token, token.Amount) error) error {
	return l.store.Iterate(ledgerRoot, func(path storage.Path, value []byte) error {
		segments := strings.Split(strings.TrimPrefix(path.String(), ledgerRoot.String()+"/"), "/")
		if 2 != len(segments) {
			return fault.ErrStateDeserialization
		}
		owner, err := account.PublicKeyHashFromBase58(segments[0])
		if nil != err {
			return fault.ErrStateDeserialization
		}
		tk, err := token.FromHex(segments[1])
		if nil != err {
			return fault.ErrStateDeserialization
		}
		amount, err := token.AmountFromBytes(value)
		if nil != err {
			return err
		}
		return fn(owner, tk, amount)
	})
}

// Nonces - call fn for each stored nonce
//
// sees committed state only
func (l *Ledger) Nonces(fn func(account.PublicKeyHash, message.Nonce) error) error {
	return l.store.Iterate(nonceRoot, func(path storage.Path, value []byte) error {
		owner, err := account.PublicKeyHashFromBase58(strings.TrimPrefix(path.String(), nonceRoot.String()+"/"))
		if nil != err {
			return fault.ErrStateDeserialization
		}
		nonce, err := nonceFromBytes(value)
		if nil != err {
			return err
		}
		return fn(owner, nonce)
	})
}

func nonceFromBytes(value []byte) (message.Nonce, error) {
	if NonceSize != len(value) {
		return 0, fault.ErrStateDeserialization
	}
	return message.Nonce(binary.BigEndian.Uint64(value)), nil
}
