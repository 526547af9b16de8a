// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message

import (
	"math"

	"github.com/bitmark-inc/tokenrollup/account"
	"github.com/bitmark-inc/tokenrollup/fault"
	"github.com/bitmark-inc/tokenrollup/token"
)

// TagType - variant name of a message in its JSON form
type TagType string

// the message variants
const (
	BridgeTag   = TagType("Bridge")   // deposit delegated by the bridge contract
	TransferTag = TagType("Transfer") // user signed balance transfer
)

// Message - closed variant over *BridgeMessage and *TransferMessage
type Message interface {
	Tag() TagType
	isMessage()
}

// Nonce - per-account replay counter
type Nonce uint64

// Next - the only nonce acceptable after n
func (n Nonce) Next() (Nonce, error) {
	if math.MaxUint64 == uint64(n) {
		return 0, fault.ErrInvalidNonce
	}
	return n + 1, nil
}

// BridgeMessage - credit already authorised by the bridge contract
type BridgeMessage struct {
	Account account.PublicKeyHash `json:"account"` // {"Tz1":…}: receiver
	Token   token.Token           `json:"token"`   // byte array: ticket contents
	Amount  token.Amount          `json:"amount"`  // unsigned 128 bit
}

// TransferMessage - self authenticating transfer
type TransferMessage struct {
	PublicKey *account.PublicKey `json:"pkey"`      // {"Ed25519":"edpk…"}: signer
	Signature *account.Signature `json:"signature"` // {"Ed25519":"edsig…"}: over Inner.Digest()
	Inner     Inner              `json:"inner"`     // signed part
}

// Inner - the signed part of a transfer
type Inner struct {
	Nonce   Nonce           `json:"nonce"`   // must be the signer's stored nonce + 1
	Content TransferContent `json:"content"` // what to move
}

// TransferContent - what a transfer moves and where
type TransferContent struct {
	Token       token.Token           `json:"token"`       // byte array
	Destination account.PublicKeyHash `json:"destination"` // {"Tz1":…}
	Amount      token.Amount          `json:"amount"`      // unsigned 128 bit
}

// Tag - variant name
func (*BridgeMessage) Tag() TagType { return BridgeTag }
func (*BridgeMessage) isMessage()   {}

// Tag - variant name
func (*TransferMessage) Tag() TagType { return TransferTag }
func (*TransferMessage) isMessage()   {}

// Signer - the account owning the transfer's public key
func (transfer *TransferMessage) Signer() account.PublicKeyHash {
	return transfer.PublicKey.Hash()
}
