// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger state
//
// a path-addressed key->value store on LevelDB (default) or BoltDB
//
// All writes happen inside a transaction: Begin, then Put, then
// Commit or Abort.  Pending writes are held in a cache overlay so that
// reads within the transaction see them; Commit writes them to the
// database atomically.
//
//
// Notes:
// 1. a path is "/" followed by "/" separated segments of [A-Za-z0-9._-]
// 2. account = tz1 base58check text (36 characters)
// 3. token   = lowercase hex of the token bytes
// 4. u128    = big endian unsigned integer (16 bytes)
// 5. u64     = big endian unsigned integer (8 bytes)
//
// Ledger:
//
//   /ledger/<account>/<token>  - balance
//                                data: u128
//
// Nonces:
//
//   /nonce/<account>           - last accepted transfer nonce
//                                data: u64
//
// Version:
//
//   0x00 ++ "VERSION"          - database format version
//                                data: big endian uint32 (4 bytes)
package storage
