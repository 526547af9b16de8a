// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"crypto/sha256"

	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/tokenrollup/fault"
)

// number of checksum bytes appended before base58 encoding
const checksumLength = 4

// compute the double SHA-256 checksum of a buffer
func checksum(buffer []byte) []byte {
	first := sha256.Sum256(buffer)
	second := sha256.Sum256(first[:])
	return second[:checksumLength]
}

// ToBase58Check - encode prefix ++ payload ++ checksum as base58
func ToBase58Check(prefix []byte, payload []byte) string {
	buffer := make([]byte, 0, len(prefix)+len(payload)+checksumLength)
	buffer = append(buffer, prefix...)
	buffer = append(buffer, payload...)
	buffer = append(buffer, checksum(buffer)...)
	return base58.Encode(buffer)
}

// FromBase58Check - decode a base58check string, verify the checksum
// and the prefix, then return the payload which must have the given
// length
func FromBase58Check(prefix []byte, payloadLength int, s string) ([]byte, error) {
	buffer, err := base58.Decode(s)
	if nil != err || 0 == len(buffer) {
		return nil, fault.ErrCannotDecodeBase58
	}

	if len(buffer) < len(prefix)+checksumLength {
		return nil, fault.ErrInvalidKeyLength
	}

	checksumStart := len(buffer) - checksumLength
	if !bytes.Equal(checksum(buffer[:checksumStart]), buffer[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	if !bytes.HasPrefix(buffer, prefix) {
		return nil, fault.ErrInvalidPrefix
	}

	payload := buffer[len(prefix):checksumStart]
	if payloadLength != len(payload) {
		return nil, fault.ErrInvalidKeyLength
	}
	return payload, nil
}
