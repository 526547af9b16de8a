// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"github.com/bitmark-inc/tokenrollup/digest"
	"github.com/bitmark-inc/tokenrollup/fault"
	"github.com/bitmark-inc/tokenrollup/util"
	"golang.org/x/crypto/ed25519"
)

// PublicKey - base type for public keys
type PublicKey struct {
	PublicKeyInterface
}

// PublicKeyInterface - the methods of each key algorithm
type PublicKeyInterface interface {
	KeyType() int
	PublicKeyBytes() []byte
	Hash() PublicKeyHash
	String() string
}

// ED25519PublicKey - for ed25519 signatures
type ED25519PublicKey struct {
	PublicKey []byte
}

// PublicKeyFromBase58 - this converts a base58check encoded string
// and returns a public key
//
// one of the specific key types are returned using the base
// "PublicKeyInterface" interface type to allow individual methods to
// be called.
func PublicKeyFromBase58(s string) (*PublicKey, error) {
	publicKey, err := util.FromBase58Check(edpkPrefix, ed25519.PublicKeySize, s)
	if nil != err {
		return nil, err
	}
	return &PublicKey{
		PublicKeyInterface: &ED25519PublicKey{
			PublicKey: publicKey,
		},
	}, nil
}

// MarshalJSON - convert to the tagged JSON form: {"Ed25519":"edpk…"}
func (publicKey PublicKey) MarshalJSON() ([]byte, error) {
	if nil == publicKey.PublicKeyInterface {
		return nil, fault.ErrInvalidKeyType
	}
	switch publicKey.KeyType() {
	case ED25519:
		return marshalTagged(ed25519Tag, publicKey.String())
	default:
		return nil, fault.ErrInvalidKeyType
	}
}

// UnmarshalJSON - convert from the tagged JSON form
func (publicKey *PublicKey) UnmarshalJSON(data []byte) error {
	tag, value, err := unmarshalTagged(data)
	if nil != err {
		return err
	}
	switch tag {
	case ed25519Tag:
		p, err := PublicKeyFromBase58(value)
		if nil != err {
			return err
		}
		publicKey.PublicKeyInterface = p.PublicKeyInterface
		return nil
	default:
		return fault.ErrInvalidKeyType
	}
}

// ED25519
// -------

// KeyType - key type code (see enumeration above)
func (publicKey *ED25519PublicKey) KeyType() int {
	return ED25519
}

// PublicKeyBytes - fetch the public key as byte slice
func (publicKey *ED25519PublicKey) PublicKeyBytes() []byte {
	return publicKey.PublicKey[:]
}

// Hash - the account owning this key
func (publicKey *ED25519PublicKey) Hash() PublicKeyHash {
	return PublicKeyHash{
		algorithm: ED25519,
		hash:      digest.KeyHash(publicKey.PublicKey),
	}
}

// String - base58check encoding of the key, "edpk…"
func (publicKey *ED25519PublicKey) String() string {
	return util.ToBase58Check(edpkPrefix, publicKey.PublicKey)
}
