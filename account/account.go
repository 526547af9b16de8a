// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/json"

	"github.com/bitmark-inc/tokenrollup/digest"
	"github.com/bitmark-inc/tokenrollup/fault"
	"github.com/bitmark-inc/tokenrollup/util"
)

// enumeration of supported key algorithms
const (
	// list of valid algorithms
	Nothing = iota // zero value, never a valid key
	ED25519 = iota
	// end of list (one greater than last item)
	algorithmLimit = iota
)

// base58check prefixes of the textual forms
var (
	tz1Prefix         = []byte{0x06, 0xa1, 0x9f}             // tz1(36)
	kt1Prefix         = []byte{0x02, 0x5a, 0x79}             // KT1(36)
	edpkPrefix        = []byte{0x0d, 0x0f, 0x25, 0xd9}       // edpk(54)
	edsigPrefix       = []byte{0x09, 0xf5, 0xcd, 0x86, 0x12} // edsig(99)
	edskSeedPrefix    = []byte{0x0d, 0x0f, 0x3a, 0x07}       // edsk(54)
	edskPrivatePrefix = []byte{0x2b, 0xf6, 0x4e, 0x07}       // edsk(98)
)

// JSON variant tags
const (
	ed25519Tag = "Ed25519"
	tz1Tag     = "Tz1"
)

// PublicKeyHash - the account identifier, derived from a public key
//
// this is a value type so it can be compared and used as a map key
type PublicKeyHash struct {
	algorithm int
	hash      [digest.KeyHashLength]byte
}

// PublicKeyHashFromBase58 - decode a tz1 address
func PublicKeyHashFromBase58(s string) (PublicKeyHash, error) {
	payload, err := util.FromBase58Check(tz1Prefix, digest.KeyHashLength, s)
	if nil != err {
		return PublicKeyHash{}, err
	}
	pkh := PublicKeyHash{
		algorithm: ED25519,
	}
	copy(pkh.hash[:], payload)
	return pkh, nil
}

// KeyType - key type code (see enumeration above)
func (pkh PublicKeyHash) KeyType() int {
	return pkh.algorithm
}

// Bytes - the raw hash
func (pkh PublicKeyHash) Bytes() []byte {
	return pkh.hash[:]
}

// IsValid - false for the zero value
func (pkh PublicKeyHash) IsValid() bool {
	return Nothing != pkh.algorithm
}

// String - base58check encoding, "tz1…"
func (pkh PublicKeyHash) String() string {
	switch pkh.algorithm {
	case ED25519:
		return util.ToBase58Check(tz1Prefix, pkh.hash[:])
	default:
		return ""
	}
}

// MarshalJSON - convert to the tagged JSON form: {"Tz1":"tz1…"}
func (pkh PublicKeyHash) MarshalJSON() ([]byte, error) {
	if ED25519 != pkh.algorithm {
		return nil, fault.ErrInvalidKeyType
	}
	return marshalTagged(tz1Tag, pkh.String())
}

// UnmarshalJSON - convert from the tagged JSON form
func (pkh *PublicKeyHash) UnmarshalJSON(data []byte) error {
	tag, value, err := unmarshalTagged(data)
	if nil != err {
		return err
	}
	if tz1Tag != tag {
		return fault.ErrInvalidKeyType
	}
	p, err := PublicKeyHashFromBase58(value)
	if nil != err {
		return err
	}
	*pkh = p
	return nil
}

// IsContractAddress - check that a string is a valid KT1 address
func IsContractAddress(s string) bool {
	_, err := util.FromBase58Check(kt1Prefix, digest.KeyHashLength, s)
	return nil == err
}

// a tagged value is a JSON object with a single member
func marshalTagged(tag string, value string) ([]byte, error) {
	return json.Marshal(map[string]string{tag: value})
}

func unmarshalTagged(data []byte) (string, string, error) {
	var tagged map[string]string
	if err := json.Unmarshal(data, &tagged); nil != err {
		return "", "", err
	}
	if 1 != len(tagged) {
		return "", "", fault.ErrInvalidKeyType
	}
	for tag, value := range tagged {
		return tag, value, nil
	}
	return "", "", fault.ErrInvalidKeyType
}
