// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package inbox

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/bitmark-inc/tokenrollup/fault"
	"github.com/bitmark-inc/tokenrollup/token"
	"github.com/bitmark-inc/tokenrollup/util"
)

// Kind - type of an internal inbox record
type Kind string

// kinds of internal record
const (
	KindTransfer     = Kind("transfer")       // ticket transfer from a layer one contract
	KindStartOfLevel = Kind("start_of_level") // framing
	KindInfoPerLevel = Kind("info_per_level") // framing
	KindEndOfLevel   = Kind("end_of_level")   // framing
)

// HexBytes - a byte slice carried as a hex string
type HexBytes []byte

// Envelope - one inbox record; exactly one field is set
type Envelope struct {
	Internal *Internal `json:"internal,omitempty"` // delivered by the rollup framework
	External HexBytes  `json:"external,omitempty"` // raw bytes submitted by anyone
}

// Internal - a framework delivered record
type Internal struct {
	Kind        Kind    `json:"kind"`                  // record type
	Sender      string  `json:"sender,omitempty"`      // KT1…: layer one contract
	Source      string  `json:"source,omitempty"`      // tz1…: originator of the operation
	Destination string  `json:"destination,omitempty"` // rollup address
	Ticket      *Ticket `json:"ticket,omitempty"`      // transfer payload
}

// Ticket - payload of an internal transfer
type Ticket struct {
	Contents HexBytes     `json:"contents"` // token identifier
	Amount   token.Amount `json:"amount"`   // quantity
	Receiver string       `json:"receiver"` // tz1…: layer two account
}

// UnmarshalJSON - all fields required
func (ticket *Ticket) UnmarshalJSON(data []byte) error {
	if err := util.RequireFields(data, "contents", "amount", "receiver"); nil != err {
		return err
	}
	type plain Ticket
	return json.Unmarshal(data, (*plain)(ticket))
}

// NewExternal - envelope for raw external bytes
func NewExternal(data []byte) *Envelope {
	return &Envelope{
		External: HexBytes(data),
	}
}

// NewDeposit - envelope for a bridge ticket transfer
func NewDeposit(bridge string, source string, tk token.Token, amount token.Amount, receiver string) *Envelope {
	return &Envelope{
		Internal: &Internal{
			Kind:   KindTransfer,
			Sender: bridge,
			Source: source,
			Ticket: &Ticket{
				Contents: HexBytes(tk),
				Amount:   amount,
				Receiver: receiver,
			},
		},
	}
}

// ParseEnvelope - decode one JSON inbox record
func ParseEnvelope(data []byte) (*Envelope, error) {
	e := &Envelope{}
	if err := json.Unmarshal(data, e); nil != err {
		return nil, fmt.Errorf("%w: %v", fault.ErrInvalidEnvelope, err)
	}
	if (nil == e.Internal) == (nil == e.External) {
		return nil, fault.ErrInvalidEnvelope
	}
	return e, nil
}

// MarshalText - hex encoding
func (h HexBytes) MarshalText() ([]byte, error) {
	b := make([]byte, hex.EncodedLen(len(h)))
	hex.Encode(b, h)
	return b, nil
}

// UnmarshalText - hex decoding; an empty string gives a non-nil empty slice
func (h *HexBytes) UnmarshalText(s []byte) error {
	b := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(b, s)
	if nil != err {
		return err
	}
	*h = b[:byteCount]
	return nil
}
