// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package inbox

import (
	"fmt"
	"unicode/utf8"

	"github.com/bitmark-inc/tokenrollup/account"
	"github.com/bitmark-inc/tokenrollup/fault"
	"github.com/bitmark-inc/tokenrollup/message"
	"github.com/bitmark-inc/tokenrollup/token"
)

// Decoder - origin check and decode of inbox records
type Decoder struct {
	BridgeContract string // KT1…: the only trusted internal sender
	Discriminator  byte   // first byte of external messages for this ledger
}

// NewDecoder - validate the bridge address
func NewDecoder(bridgeContract string, discriminator byte) (*Decoder, error) {
	if !account.IsContractAddress(bridgeContract) {
		return nil, fault.ErrInvalidContractAddress
	}
	return &Decoder{
		BridgeContract: bridgeContract,
		Discriminator:  discriminator,
	}, nil
}

// Decode - turn an inbox record into a message
//
// every error is a decode error: the record is dropped and the next
// one is read
func (d *Decoder) Decode(e *Envelope) (message.Message, error) {
	switch {
	case nil == e:
		return nil, fault.ErrInvalidEnvelope
	case nil != e.Internal && nil == e.External:
		return d.decodeInternal(e.Internal)
	case nil == e.Internal && nil != e.External:
		return d.decodeExternal(e.External)
	default:
		return nil, fault.ErrInvalidEnvelope
	}
}

func (d *Decoder) decodeInternal(internal *Internal) (message.Message, error) {
	if KindTransfer != internal.Kind {
		return nil, fault.ErrNotForKernel
	}
	if d.BridgeContract != internal.Sender {
		return nil, fault.ErrNotFromBridge
	}
	if nil == internal.Ticket {
		return nil, fault.ErrInvalidEnvelope
	}

	receiver, err := account.PublicKeyHashFromBase58(internal.Ticket.Receiver)
	if nil != err {
		return nil, fault.ErrInvalidBridgeReceiver
	}

	return &message.BridgeMessage{
		Account: receiver,
		Token:   token.Token(internal.Ticket.Contents),
		Amount:  internal.Ticket.Amount,
	}, nil
}

func (d *Decoder) decodeExternal(data []byte) (message.Message, error) {
	if 0 == len(data) || d.Discriminator != data[0] {
		return nil, fault.ErrNotForKernel
	}

	payload := data[1:]
	if !utf8.Valid(payload) {
		return nil, fault.ErrInvalidUTF8
	}

	m, err := message.Unmarshal(payload)
	if nil != err {
		return nil, fmt.Errorf("%w: %v", fault.ErrMalformedMessage, err)
	}

	// deposits are only trusted from the bridge contract
	if _, ok := m.(*message.BridgeMessage); ok {
		return nil, fault.ErrNotFromBridge
	}
	return m, nil
}
