// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message

import (
	"encoding/json"

	"github.com/bitmark-inc/tokenrollup/fault"
)

// DefaultDiscriminator - first byte of an external message meant for
// the ledger
const DefaultDiscriminator = 0x55

// Marshal - the tagged JSON form: {"Bridge":{…}} or {"Transfer":{…}}
func Marshal(m Message) ([]byte, error) {
	switch tx := m.(type) {
	case *BridgeMessage:
		return json.Marshal(map[TagType]*BridgeMessage{BridgeTag: tx})
	case *TransferMessage:
		if nil == tx.PublicKey || nil == tx.Signature {
			return nil, fault.ErrMissingField
		}
		return json.Marshal(map[TagType]*TransferMessage{TransferTag: tx})
	default:
		return nil, fault.ErrUnknownMessageKind
	}
}

// Pack - external message bytes: discriminator followed by the JSON form
func Pack(m Message, discriminator byte) ([]byte, error) {
	b, err := Marshal(m)
	if nil != err {
		return nil, err
	}
	return append([]byte{discriminator}, b...), nil
}
