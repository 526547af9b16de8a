// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/tokenrollup/account"
)

type keyResult struct {
	PrivateKey string `json:"private_key,omitempty"`
	PublicKey  string `json:"public_key"`
	Account    string `json:"account"`
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	privateKey, err := account.NewPrivateKey(rand.Reader)
	if nil != err {
		return err
	}

	publicKey := privateKey.PublicKey()
	if m.verbose {
		fmt.Fprintf(m.e, "public key: %s\n", publicKey)
	}

	return printJson(m.w, keyResult{
		PrivateKey: privateKey.String(),
		PublicKey:  publicKey.String(),
		Account:    publicKey.Hash().String(),
	})
}
