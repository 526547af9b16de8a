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

// Signature - base type for signatures
type Signature struct {
	SignatureInterface
}

// SignatureInterface - the methods of each signature algorithm
type SignatureInterface interface {
	KeyType() int
	SignatureBytes() []byte
	String() string
	Verify(publicKey *PublicKey, message []byte) error
}

// ED25519Signature - an ed25519 signature
type ED25519Signature struct {
	Signature []byte
}

// SignatureFromBase58 - decode an "edsig…" string
func SignatureFromBase58(s string) (*Signature, error) {
	signature, err := util.FromBase58Check(edsigPrefix, ed25519.SignatureSize, s)
	if nil != err {
		return nil, err
	}
	return &Signature{
		SignatureInterface: &ED25519Signature{
			Signature: signature,
		},
	}, nil
}

// Verify - check that the signature was made over message by the
// private key of publicKey
//
// the signature covers the blake2b-256 digest of the message, not
// the raw message bytes
func (signature Signature) Verify(publicKey *PublicKey, message []byte) error {
	if nil == signature.SignatureInterface {
		return fault.ErrInvalidKeyType
	}
	if nil == publicKey || nil == publicKey.PublicKeyInterface {
		return fault.ErrInvalidKeyType
	}
	return signature.SignatureInterface.Verify(publicKey, message)
}

// MarshalJSON - convert to the tagged JSON form: {"Ed25519":"edsig…"}
func (signature Signature) MarshalJSON() ([]byte, error) {
	if nil == signature.SignatureInterface {
		return nil, fault.ErrInvalidKeyType
	}
	switch signature.KeyType() {
	case ED25519:
		return marshalTagged(ed25519Tag, signature.String())
	default:
		return nil, fault.ErrInvalidKeyType
	}
}

// UnmarshalJSON - convert from the tagged JSON form
func (signature *Signature) UnmarshalJSON(data []byte) error {
	tag, value, err := unmarshalTagged(data)
	if nil != err {
		return err
	}
	switch tag {
	case ed25519Tag:
		s, err := SignatureFromBase58(value)
		if nil != err {
			return err
		}
		signature.SignatureInterface = s.SignatureInterface
		return nil
	default:
		return fault.ErrInvalidKeyType
	}
}

// ED25519
// -------

// KeyType - key type code (see enumeration above)
func (signature *ED25519Signature) KeyType() int {
	return ED25519
}

// SignatureBytes - the raw signature
func (signature *ED25519Signature) SignatureBytes() []byte {
	return signature.Signature
}

// String - base58check encoding, "edsig…"
func (signature *ED25519Signature) String() string {
	return util.ToBase58Check(edsigPrefix, signature.Signature)
}

// Verify - ed25519 check over the blake2b-256 digest of message
func (signature *ED25519Signature) Verify(publicKey *PublicKey, message []byte) error {
	key, ok := publicKey.PublicKeyInterface.(*ED25519PublicKey)
	if !ok {
		return fault.ErrSignatureKeyMismatch
	}
	if ed25519.PublicKeySize != len(key.PublicKey) {
		return fault.ErrInvalidKeyLength
	}
	if ed25519.SignatureSize != len(signature.Signature) {
		return fault.ErrInvalidSignatureLength
	}
	hash := digest.NewDigest(message)
	if !ed25519.Verify(key.PublicKey, hash[:], signature.Signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}
