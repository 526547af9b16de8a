// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message

import (
	"strconv"
	"strings"

	"github.com/bitmark-inc/tokenrollup/account"
	"github.com/bitmark-inc/tokenrollup/digest"
	"github.com/bitmark-inc/tokenrollup/fault"
)

// Signable - the exact text covered by a transfer signature
//
// decimal nonce, hex token, tz1 destination and decimal amount,
// concatenated without separators; changing this invalidates every
// signature already issued by clients
func (inner *Inner) Signable() []byte {
	b := strings.Builder{}
	b.WriteString(strconv.FormatUint(uint64(inner.Nonce), 10))
	b.WriteString(inner.Content.Token.Hex())
	b.WriteString(inner.Content.Destination.String())
	b.WriteString(inner.Content.Amount.String())
	return []byte(b.String())
}

// Digest - Blake2b-256 of the signable text
func (inner *Inner) Digest() digest.Digest {
	return digest.NewDigest(inner.Signable())
}

// NewTransfer - sign content with the given nonce and build the message
func NewTransfer(privateKey *account.PrivateKey, nonce Nonce, content TransferContent) *TransferMessage {
	inner := Inner{
		Nonce:   nonce,
		Content: content,
	}
	d := inner.Digest()
	return &TransferMessage{
		PublicKey: privateKey.PublicKey(),
		Signature: privateKey.Sign(d[:]),
		Inner:     inner,
	}
}

// Verify - check the signature over the inner digest
func (transfer *TransferMessage) Verify() error {
	if nil == transfer.Signature || nil == transfer.PublicKey {
		return fault.ErrInvalidKeyType
	}
	d := transfer.Inner.Digest()
	return transfer.Signature.Verify(transfer.PublicKey, d[:])
}
