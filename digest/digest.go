// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/bitmark-inc/tokenrollup/fault"
)

// number of bytes in the digest
const Length = blake2b.Size256

// number of bytes in a key hash
const KeyHashLength = 20

// Digest - type for a Blake2b-256 digest
//
// to convert to bytes just use d[:]
type Digest [Length]byte

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return blake2b.Sum256(record)
}

// KeyHash - the 160 bit Blake2b hash used to identify a public key
func KeyHash(key []byte) [KeyHashLength]byte {
	h, err := blake2b.New(KeyHashLength, nil)
	if nil != err {
		// only fails for an invalid size or oversized key
		fault.PanicIfError("blake2b.New", err)
	}
	h.Write(key)

	var result [KeyHashLength]byte
	copy(result[:], h.Sum(nil))
	return result
}

// convert a binary digest to hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// convert a binary digest to hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<Blake2b-256:" + hex.EncodeToString(digest[:]) + ">"
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(Length))
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if Length != hex.DecodedLen(len(s)) {
		return fault.ErrInvalidKeyLength
	}
	_, err := hex.Decode(digest[:], s)
	if nil != err {
		return fmt.Errorf("digest: %w", err)
	}
	return nil
}

// FromBytes - convert and validate a binary byte slice to a digest
func FromBytes(digest *Digest, buffer []byte) error {
	if Length != len(buffer) {
		return fault.ErrInvalidKeyLength
	}
	copy(digest[:], buffer)
	return nil
}
