// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/tokenrollup/account"
	"github.com/bitmark-inc/tokenrollup/fault"
	"github.com/bitmark-inc/tokenrollup/inbox"
)

// output is a single inbox line so it can be appended to an inbox file
func runDeposit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	bridge, err := checkRequired("bridge", c.String("bridge"))
	if nil != err {
		return err
	}
	if !account.IsContractAddress(bridge) {
		return fmt.Errorf("bridge: %q  error: %w", bridge, fault.ErrInvalidContractAddress)
	}

	tk, err := checkToken(c.String("token"))
	if nil != err {
		return err
	}

	receiver, err := checkAccount("receiver", c.String("receiver"))
	if nil != err {
		return err
	}

	source := receiver
	if "" != c.String("source") {
		source, err = checkAccount("source", c.String("source"))
		if nil != err {
			return err
		}
	}

	amount, err := checkAmount(c.String("amount"))
	if nil != err {
		return err
	}

	envelope := inbox.NewDeposit(bridge, source.String(), tk, amount, receiver.String())
	if m.verbose {
		fmt.Fprintf(m.e, "envelope: %#v\n", envelope.Internal)
	}

	b, err := json.Marshal(envelope)
	if nil != err {
		return err
	}
	fmt.Fprintf(m.w, "%s\n", b)
	return nil
}
