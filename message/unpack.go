// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message

import (
	"encoding/json"

	"github.com/bitmark-inc/tokenrollup/fault"
	"github.com/bitmark-inc/tokenrollup/util"
)

// Unmarshal - decode the tagged JSON form
//
// the object must have exactly one member naming the variant, every
// field of the variant must be present and non-null, unknown fields
// are ignored; member names are matched exactly and may not repeat
func Unmarshal(data []byte) (Message, error) {
	tagged, err := util.ObjectMembers(data)
	if nil != err {
		return nil, err
	}
	if 1 != len(tagged) {
		return nil, fault.ErrUnknownMessageKind
	}

	for tag, body := range tagged {
		switch TagType(tag) {
		case BridgeTag:
			bridge := &BridgeMessage{}
			if err := json.Unmarshal(body, bridge); nil != err {
				return nil, err
			}
			return bridge, nil

		case TransferTag:
			transfer := &TransferMessage{}
			if err := json.Unmarshal(body, transfer); nil != err {
				return nil, err
			}
			return transfer, nil
		}
	}
	return nil, fault.ErrUnknownMessageKind
}

// UnmarshalJSON - all fields required
func (bridge *BridgeMessage) UnmarshalJSON(data []byte) error {
	if err := util.RequireFields(data, "account", "token", "amount"); nil != err {
		return err
	}
	type plain BridgeMessage
	return json.Unmarshal(data, (*plain)(bridge))
}

// UnmarshalJSON - all fields required
func (transfer *TransferMessage) UnmarshalJSON(data []byte) error {
	if err := util.RequireFields(data, "pkey", "signature", "inner"); nil != err {
		return err
	}
	type plain TransferMessage
	return json.Unmarshal(data, (*plain)(transfer))
}

// UnmarshalJSON - all fields required
func (inner *Inner) UnmarshalJSON(data []byte) error {
	if err := util.RequireFields(data, "nonce", "content"); nil != err {
		return err
	}
	type plain Inner
	return json.Unmarshal(data, (*plain)(inner))
}

// UnmarshalJSON - all fields required
func (content *TransferContent) UnmarshalJSON(data []byte) error {
	if err := util.RequireFields(data, "token", "destination", "amount"); nil != err {
		return err
	}
	type plain TransferContent
	return json.Unmarshal(data, (*plain)(content))
}
