// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokenrollup/account"
	"github.com/bitmark-inc/tokenrollup/ledger"
	"github.com/bitmark-inc/tokenrollup/message"
	"github.com/bitmark-inc/tokenrollup/storage"
	"github.com/bitmark-inc/tokenrollup/token"
)

// setup command handler
//
// commands that run without any configuration file or database
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "balance", "nonce", "dump":
		return false // defer processing until database is opened

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  start                      (run)    - process the inbox, same as no arguments\n")
		fmt.Printf("                                        with inbox.watch set keep processing new files\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  balance TZ1 TOKEN                   - print the balance of a token (hex) for an account\n")
		fmt.Printf("\n")

		fmt.Printf("  nonce TZ1                           - print the last nonce used by an account\n")
		fmt.Printf("\n")

		fmt.Printf("  dump                                - print all balances and nonces as JSON\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and prefor normal exit from main
	return true
}

// configuration commands
//
// these only need the configuration
func processConfigCommand(arguments []string, options *Configuration) bool {

	if len(arguments) < 1 {
		return false
	}

	switch arguments[0] {
	case "config-test", "cfg":
		printJSON(os.Stdout, options)
		return true

	default:
		return false
	}
}

// data command handler
//
// the internal database is open but no inbox processing has run
func processDataCommand(log *logger.L, arguments []string, store storage.Store) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	l := ledger.New(store)

	switch command {

	case "balance":
		if len(arguments) != 2 {
			exitwithstatus.Message("usage: balance TZ1 TOKEN")
		}
		owner, err := account.PublicKeyHashFromBase58(arguments[0])
		if nil != err {
			exitwithstatus.Message("account: %q  error: %s", arguments[0], err)
		}
		tk, err := token.FromHex(arguments[1])
		if nil != err {
			exitwithstatus.Message("token: %q  error: %s", arguments[1], err)
		}
		amount, err := l.ReadBalance(owner, tk)
		if nil != err {
			log.Errorf("read balance error: %s", err)
			exitwithstatus.Message("read balance error: %s", err)
		}
		fmt.Printf("%s\n", amount)

	case "nonce":
		if len(arguments) != 1 {
			exitwithstatus.Message("usage: nonce TZ1")
		}
		owner, err := account.PublicKeyHashFromBase58(arguments[0])
		if nil != err {
			exitwithstatus.Message("account: %q  error: %s", arguments[0], err)
		}
		nonce, err := l.ReadNonce(owner)
		if nil != err {
			log.Errorf("read nonce error: %s", err)
			exitwithstatus.Message("read nonce error: %s", err)
		}
		fmt.Printf("%d\n", nonce)

	case "dump":
		d, err := dump(l)
		if nil != err {
			log.Errorf("dump error: %s", err)
			exitwithstatus.Message("dump error: %s", err)
		}
		printJSON(os.Stdout, d)

	default:
		return false
	}

	return true
}

type balanceEntry struct {
	Account string       `json:"account"`
	Token   string       `json:"token"`
	Amount  token.Amount `json:"amount"`
}

type nonceEntry struct {
	Account string        `json:"account"`
	Nonce   message.Nonce `json:"nonce"`
}

type ledgerDump struct {
	Balances []balanceEntry `json:"balances"`
	Nonces   []nonceEntry   `json:"nonces"`
}

// collect the committed ledger state in key order
func dump(l *ledger.Ledger) (*ledgerDump, error) {
	d := &ledgerDump{
		Balances: []balanceEntry{},
		Nonces:   []nonceEntry{},
	}

	err := l.Balances(func(owner account.PublicKeyHash, tk token.Token, amount token.Amount) error {
		d.Balances = append(d.Balances, balanceEntry{
			Account: owner.String(),
			Token:   tk.Hex(),
			Amount:  amount,
		})
		return nil
	})
	if nil != err {
		return nil, err
	}

	err = l.Nonces(func(owner account.PublicKeyHash, nonce message.Nonce) error {
		d.Nonces = append(d.Nonces, nonceEntry{
			Account: owner.String(),
			Nonce:   nonce,
		})
		return nil
	})
	if nil != err {
		return nil, err
	}
	return d, nil
}

// print out json
func printJSON(w io.Writer, item interface{}) {
	b, err := json.MarshalIndent(item, "", "  ")
	if nil != err {
		fmt.Fprintf(w, "error: %s\n", err)
		return
	}
	fmt.Fprintf(w, "%s\n", b)
}
