// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/tokenrollup/fault"
)

// common errors - keep in alphabetic order
const (
	ErrAmbiguousInput     = fault.InvalidError("only one of message or external may be given")
	ErrMissingArgument    = fault.NotFoundError("required argument is missing")
	ErrNotTransferMessage = fault.InvalidError("not a transfer message")
	ErrWrongDiscriminator = fault.InvalidError("external message has the wrong discriminator")
)
