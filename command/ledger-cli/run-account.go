// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runAccount(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	privateKey, err := checkPrivateKey(c.String("key"))
	if nil != err {
		return err
	}

	publicKey := privateKey.PublicKey()
	if m.verbose {
		fmt.Fprintf(m.e, "public key: %s\n", publicKey)
	}

	return printJson(m.w, keyResult{
		PublicKey: publicKey.String(),
		Account:   publicKey.Hash().String(),
	})
}
