// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Errors are grouped in classes so that a caller can decide how to
// react without knowing every instance:
//
//   DecodeError   - an inbox message was dropped before reaching the ledger
//   ProcessError  - a decoded message was rejected by the ledger rules
//   RecordError   - stored state could not be read back (corruption)
//   InvalidError  - malformed input value (key, path, amount…)
//   LengthError   - a fixed size value had the wrong length
package fault
