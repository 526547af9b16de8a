// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/tokenrollup/message"
)

type verifyResult struct {
	Account     string        `json:"account"`
	Nonce       message.Nonce `json:"nonce"`
	Digest      string        `json:"digest"`
	Token       string        `json:"token"`
	Destination string        `json:"destination"`
	Amount      string        `json:"amount"`
	Valid       bool          `json:"valid"`
}

func runVerify(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	data, err := verifyInput(c.String("message"), c.String("external"), m.discriminator)
	if nil != err {
		return err
	}

	decoded, err := message.Unmarshal(data)
	if nil != err {
		return err
	}

	transfer, ok := decoded.(*message.TransferMessage)
	if !ok {
		return ErrNotTransferMessage
	}

	err = transfer.Verify()
	if nil != err {
		return err
	}

	content := transfer.Inner.Content
	return printJson(m.w, verifyResult{
		Account:     transfer.Signer().String(),
		Nonce:       transfer.Inner.Nonce,
		Digest:      transfer.Inner.Digest().String(),
		Token:       content.Token.Hex(),
		Destination: content.Destination.String(),
		Amount:      content.Amount.String(),
		Valid:       true,
	})
}

// message JSON either given directly or taken from packed external bytes
func verifyInput(text string, external string, discriminator byte) ([]byte, error) {
	text = strings.TrimSpace(text)
	external = strings.TrimSpace(external)

	switch {
	case "" != text && "" != external:
		return nil, ErrAmbiguousInput

	case "" != text:
		return []byte(text), nil

	case "" != external:
		data, err := hex.DecodeString(external)
		if nil != err {
			return nil, err
		}
		if 0 == len(data) || discriminator != data[0] {
			return nil, ErrWrongDiscriminator
		}
		return data[1:], nil

	default:
		_, err := checkRequired("message", "")
		return nil, err
	}
}
