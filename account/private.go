// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"io"

	"github.com/bitmark-inc/tokenrollup/digest"
	"github.com/bitmark-inc/tokenrollup/fault"
	"github.com/bitmark-inc/tokenrollup/util"
	"golang.org/x/crypto/ed25519"
)

// PrivateKey - base type for private keys
type PrivateKey struct {
	PrivateKeyInterface
}

// PrivateKeyInterface - the methods of each key algorithm
type PrivateKeyInterface interface {
	KeyType() int
	PublicKey() *PublicKey
	PrivateKeyBytes() []byte
	Sign(message []byte) *Signature
	String() string
}

// ED25519PrivateKey - for ed25519 keys
type ED25519PrivateKey struct {
	PrivateKey ed25519.PrivateKey
}

// NewPrivateKey - create a fresh ed25519 key from a random source
func NewPrivateKey(random io.Reader) (*PrivateKey, error) {
	_, privateKey, err := ed25519.GenerateKey(random)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{
		PrivateKeyInterface: &ED25519PrivateKey{
			PrivateKey: privateKey,
		},
	}, nil
}

// PrivateKeyFromBase58 - this converts a base58check "edsk…" string
// and returns a private key
//
// both the 32 byte seed form and the 64 byte expanded form are
// accepted
func PrivateKeyFromBase58(s string) (*PrivateKey, error) {
	seed, err := util.FromBase58Check(edskSeedPrefix, ed25519.SeedSize, s)
	if nil == err {
		return &PrivateKey{
			PrivateKeyInterface: &ED25519PrivateKey{
				PrivateKey: ed25519.NewKeyFromSeed(seed),
			},
		}, nil
	}

	expanded, err2 := util.FromBase58Check(edskPrivatePrefix, ed25519.PrivateKeySize, s)
	if nil != err2 {
		return nil, err
	}
	privateKey := ed25519.NewKeyFromSeed(expanded[:ed25519.SeedSize])
	if string(privateKey) != string(expanded) {
		return nil, fault.ErrInvalidKeyType
	}
	return &PrivateKey{
		PrivateKeyInterface: &ED25519PrivateKey{
			PrivateKey: privateKey,
		},
	}, nil
}

// ED25519
// -------

// KeyType - key type code (see enumeration above)
func (privateKey *ED25519PrivateKey) KeyType() int {
	return ED25519
}

// PublicKey - the matching public key
func (privateKey *ED25519PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{
		PublicKeyInterface: &ED25519PublicKey{
			PublicKey: privateKey.PrivateKey[ed25519.SeedSize:],
		},
	}
}

// PrivateKeyBytes - the expanded 64 byte private key
func (privateKey *ED25519PrivateKey) PrivateKeyBytes() []byte {
	return privateKey.PrivateKey
}

// Sign - sign the blake2b-256 digest of message
func (privateKey *ED25519PrivateKey) Sign(message []byte) *Signature {
	hash := digest.NewDigest(message)
	return &Signature{
		SignatureInterface: &ED25519Signature{
			Signature: ed25519.Sign(privateKey.PrivateKey, hash[:]),
		},
	}
}

// String - base58check encoding of the seed, "edsk…"
func (privateKey *ED25519PrivateKey) String() string {
	return util.ToBase58Check(edskSeedPrefix, privateKey.PrivateKey.Seed())
}
