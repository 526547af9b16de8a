// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"encoding/hex"
	"encoding/json"

	"github.com/bitmark-inc/tokenrollup/fault"
)

// Token - opaque identifier of a fungible asset class
//
// only byte equality and the hex rendering are meaningful
type Token []byte

// FromHex - parse the canonical hex form (an optional 0x is allowed)
func FromHex(s string) (Token, error) {
	if len(s) >= 2 && '0' == s[0] && ('x' == s[1] || 'X' == s[1]) {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if nil != err {
		return nil, err
	}
	return Token(b), nil
}

// Hex - lowercase hex without prefix
func (t Token) Hex() string {
	return hex.EncodeToString(t)
}

// String - for the fmt package (%s)
func (t Token) String() string {
	return t.Hex()
}

// GoString - for the fmt package (%#v)
func (t Token) GoString() string {
	return "<token:" + t.Hex() + ">"
}

// Equal - byte-for-byte equality
func (t Token) Equal(other Token) bool {
	return string(t) == string(other)
}

// MarshalJSON - an array of byte values
//
// a plain []byte would be base64 encoded by encoding/json
func (t Token) MarshalJSON() ([]byte, error) {
	values := make([]int, len(t))
	for i, b := range t {
		values[i] = int(b)
	}
	return json.Marshal(values)
}

// UnmarshalJSON - from an array of byte values
func (t *Token) UnmarshalJSON(data []byte) error {
	var values []uint16
	if err := json.Unmarshal(data, &values); nil != err {
		return err
	}
	if nil == values {
		return fault.ErrInvalidToken
	}
	b := make([]byte, len(values))
	for i, v := range values {
		if v > 0xff {
			return fault.ErrInvalidToken
		}
		b[i] = byte(v)
	}
	*t = b
	return nil
}
