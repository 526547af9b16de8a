// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/tokenrollup/message"
)

type metadata struct {
	discriminator byte
	verbose       bool
	e             io.Writer
	w             io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "ledger-cli"
	app.Usage = "build and check token ledger rollup messages"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.IntFlag{
			Name:  "discriminator, d",
			Value: message.DefaultDiscriminator,
			Usage: " first byte of external messages `BYTE`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a new key pair",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "account",
			Usage:     "display the public key and account of a private key",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "key, k",
					Value:  "",
					Usage:  "*private key `EDSK`",
					EnvVar: "LEDGER_CLI_KEY",
				},
			},
			Action: runAccount,
		},
		{
			Name:      "transfer",
			Usage:     "sign a transfer and produce its inbox message",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "key, k",
					Value:  "",
					Usage:  "*sender private key `EDSK`",
					EnvVar: "LEDGER_CLI_KEY",
				},
				cli.Uint64Flag{
					Name:  "nonce, n",
					Value: 0,
					Usage: "*next nonce of the sender `NONCE`",
				},
				cli.StringFlag{
					Name:  "token, t",
					Value: "",
					Usage: "*token identifier `HEX`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*destination account `TZ1`",
				},
				cli.StringFlag{
					Name:  "amount, a",
					Value: "",
					Usage: "*quantity to transfer `AMOUNT`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "deposit",
			Usage:     "produce the inbox record of a bridge deposit",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "bridge, b",
					Value: "",
					Usage: "*bridge contract `KT1`",
				},
				cli.StringFlag{
					Name:  "source, s",
					Value: "",
					Usage: " layer one originator `TZ1` [default receiver]",
				},
				cli.StringFlag{
					Name:  "token, t",
					Value: "",
					Usage: "*token identifier `HEX`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*account to credit `TZ1`",
				},
				cli.StringFlag{
					Name:  "amount, a",
					Value: "",
					Usage: "*quantity to deposit `AMOUNT`",
				},
			},
			Action: runDeposit,
		},
		{
			Name:      "verify",
			Usage:     "check the signature of a transfer message",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "message, m",
					Value: "",
					Usage: "+transfer message `JSON`",
				},
				cli.StringFlag{
					Name:  "external, x",
					Value: "",
					Usage: "+external inbox message `HEX`",
				},
			},
			Action: runVerify,
		},
		{
			Name:  "version",
			Usage: "display ledger-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		discriminator := c.GlobalInt("discriminator")
		if discriminator < 0 || discriminator > 0xff {
			return fmt.Errorf("discriminator: %d is not a byte value", discriminator)
		}

		c.App.Metadata["config"] = &metadata{
			discriminator: byte(discriminator),
			verbose:       c.GlobalBool("verbose"),
			e:             c.App.ErrWriter,
			w:             c.App.Writer,
		}
		return nil
	}

	return app
}
