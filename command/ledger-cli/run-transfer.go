// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/tokenrollup/inbox"
	"github.com/bitmark-inc/tokenrollup/message"
)

type transferResult struct {
	Account  string          `json:"account"`
	Digest   string          `json:"digest"`
	Message  json.RawMessage `json:"message"`
	External string          `json:"external"`
	Envelope string          `json:"envelope"`
}

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	privateKey, err := checkPrivateKey(c.String("key"))
	if nil != err {
		return err
	}

	nonce := message.Nonce(c.Uint64("nonce"))
	if 0 == nonce {
		return fmt.Errorf("nonce: %w", ErrMissingArgument)
	}

	tk, err := checkToken(c.String("token"))
	if nil != err {
		return err
	}

	receiver, err := checkAccount("receiver", c.String("receiver"))
	if nil != err {
		return err
	}

	amount, err := checkAmount(c.String("amount"))
	if nil != err {
		return err
	}

	transfer := message.NewTransfer(privateKey, nonce, message.TransferContent{
		Token:       tk,
		Destination: receiver,
		Amount:      amount,
	})

	if m.verbose {
		fmt.Fprintf(m.e, "signable: %q\n", transfer.Inner.Signable())
	}

	packed, err := message.Marshal(transfer)
	if nil != err {
		return err
	}

	external, err := message.Pack(transfer, m.discriminator)
	if nil != err {
		return err
	}

	envelope, err := json.Marshal(inbox.NewExternal(external))
	if nil != err {
		return err
	}

	return printJson(m.w, transferResult{
		Account:  transfer.Signer().String(),
		Digest:   transfer.Inner.Digest().String(),
		Message:  packed,
		External: hex.EncodeToString(external),
		Envelope: string(envelope),
	})
}
