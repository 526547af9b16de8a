// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"bytes"
	"encoding/json"
	"strings"

	"lukechampine.com/uint128"

	"github.com/bitmark-inc/tokenrollup/fault"
)

// AmountSize - bytes in the stored form of an amount
const AmountSize = 16

// maximum number of decimal digits in a 128 bit value
const maxDigits = 39

// Amount - unsigned 128 bit token quantity
type Amount struct {
	value uint128.Uint128
}

// Zero - the zero amount
var Zero = Amount{}

// NewAmount - amount from a 64 bit value
func NewAmount(n uint64) Amount {
	return Amount{value: uint128.From64(n)}
}

// AmountFromString - parse a plain decimal string
//
// signs, fractions, exponents, leading spaces and values that do not
// fit in 128 bits are rejected
func AmountFromString(s string) (Amount, error) {
	if 0 == len(s) {
		return Zero, fault.ErrInvalidAmount
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return Zero, fault.ErrInvalidAmount
		}
	}

	// a leading zero would select octal in the scanner
	s = strings.TrimLeft(s, "0")
	if 0 == len(s) {
		return Zero, nil
	}
	if len(s) > maxDigits {
		return Zero, fault.ErrInvalidAmount
	}
	v, err := uint128.FromString(s)
	if nil != err {
		return Zero, fault.ErrInvalidAmount
	}
	return Amount{value: v}, nil
}

// AmountFromBytes - decode the 16 byte big-endian stored form
func AmountFromBytes(b []byte) (Amount, error) {
	if AmountSize != len(b) {
		return Zero, fault.ErrStateDeserialization
	}
	return Amount{value: uint128.FromBytesBE(b)}, nil
}

// Bytes - 16 byte big-endian form
func (a Amount) Bytes() []byte {
	b := make([]byte, AmountSize)
	a.value.PutBytesBE(b)
	return b
}

// CheckedAdd - sum, false on overflow
func (a Amount) CheckedAdd(b Amount) (Amount, bool) {
	sum := a.value.AddWrap(b.value)
	if sum.Cmp(a.value) < 0 {
		return Zero, false
	}
	return Amount{value: sum}, true
}

// CheckedSub - difference, false on underflow
func (a Amount) CheckedSub(b Amount) (Amount, bool) {
	if a.value.Cmp(b.value) < 0 {
		return Zero, false
	}
	return Amount{value: a.value.Sub(b.value)}, true
}

// Cmp - compare: -1, 0 or +1
func (a Amount) Cmp(b Amount) int {
	return a.value.Cmp(b.value)
}

// Uint64 - the value if it fits in 64 bits
func (a Amount) Uint64() (uint64, bool) {
	if 0 != a.value.Hi {
		return 0, false
	}
	return a.value.Lo, true
}

// IsZero - true for zero
func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// String - decimal form
func (a Amount) String() string {
	return a.value.String()
}

// MarshalJSON - a bare decimal number
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.String()), nil
}

// UnmarshalJSON - accept either a bare number or a decimal string
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && '"' == data[0] {
		var s string
		if err := json.Unmarshal(data, &s); nil != err {
			return err
		}
		data = []byte(s)
	}
	v, err := AmountFromString(string(data))
	if nil != err {
		return err
	}
	*a = v
	return nil
}
