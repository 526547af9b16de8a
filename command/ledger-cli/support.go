// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/tokenrollup/account"
	"github.com/bitmark-inc/tokenrollup/token"
)

func checkRequired(name string, value string) (string, error) {
	value = strings.TrimSpace(value)
	if "" == value {
		return "", fmt.Errorf("%s: %w", name, ErrMissingArgument)
	}
	return value, nil
}

func checkPrivateKey(s string) (*account.PrivateKey, error) {
	s, err := checkRequired("key", s)
	if nil != err {
		return nil, err
	}
	return account.PrivateKeyFromBase58(s)
}

func checkAccount(name string, s string) (account.PublicKeyHash, error) {
	s, err := checkRequired(name, s)
	if nil != err {
		return account.PublicKeyHash{}, err
	}
	pkh, err := account.PublicKeyHashFromBase58(s)
	if nil != err {
		return account.PublicKeyHash{}, fmt.Errorf("%s: %q  error: %w", name, s, err)
	}
	return pkh, nil
}

func checkToken(s string) (token.Token, error) {
	s, err := checkRequired("token", s)
	if nil != err {
		return nil, err
	}
	return token.FromHex(s)
}

func checkAmount(s string) (token.Amount, error) {
	s, err := checkRequired("amount", s)
	if nil != err {
		return token.Amount{}, err
	}
	return token.AmountFromString(s)
}
