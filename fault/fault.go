// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type DecodeError GenericError
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised      = ExistsError("already initialised")
	ErrBalanceOverflow         = ProcessError("balance overflow")
	ErrCannotDecodeBase58      = InvalidError("cannot decode base58")
	ErrConfigurationNotTable   = InvalidError("configuration did not return a table")
	ErrChecksumMismatch        = InvalidError("checksum mismatch")
	ErrDatabaseVersion         = RecordError("incompatible database version")
	ErrDuplicateField          = InvalidError("duplicate field")
	ErrInvalidAmount           = InvalidError("invalid amount")
	ErrInvalidBridgeReceiver   = DecodeError("bridge receiver is not an account")
	ErrInvalidContractAddress  = InvalidError("invalid contract address")
	ErrInvalidEnvelope         = DecodeError("invalid inbox envelope")
	ErrInvalidKeyLength        = LengthError("invalid key length")
	ErrInvalidKeyType          = InvalidError("invalid key type")
	ErrInvalidLoggerChannel    = InvalidError("invalid logger channel")
	ErrInvalidNonce            = ProcessError("invalid nonce")
	ErrInvalidPath             = InvalidError("invalid path")
	ErrInvalidPrefix           = InvalidError("invalid prefix")
	ErrInvalidSignature        = ProcessError("invalid signature")
	ErrInvalidSignatureLength  = LengthError("invalid signature length")
	ErrInvalidStructPointer    = InvalidError("invalid struct pointer")
	ErrInvalidToken            = InvalidError("invalid token")
	ErrInvalidTransferAmount   = ProcessError("transferring more than the actual balance")
	ErrInvalidUTF8             = DecodeError("message is not valid utf-8")
	ErrMalformedMessage        = DecodeError("malformed message")
	ErrMissingField            = InvalidError("missing field")
	ErrNotForKernel            = DecodeError("message is not for the kernel")
	ErrNotFromBridge           = DecodeError("message has not come from the bridge")
	ErrNotInitialised          = NotFoundError("not initialised")
	ErrSignatureKeyMismatch    = ProcessError("signature and key algorithms differ")
	ErrStateDeserialization    = RecordError("state deserialization")
	ErrTransactionAlreadyInUse = ProcessError("transaction already in use")
	ErrTransactionNotInUse     = ProcessError("transaction not in use")
	ErrUnknownBackend          = InvalidError("unknown storage backend")
	ErrUnknownMessageKind      = InvalidError("unknown message kind")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e DecodeError) Error() string   { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
//
// wrapped errors (fmt.Errorf with %w) are unwrapped to find the class
func IsErrDecode(e error) bool   { var t DecodeError; return errors.As(e, &t) }
func IsErrExists(e error) bool   { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool  { var t InvalidError; return errors.As(e, &t) }
func IsErrLength(e error) bool   { var t LengthError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool  { var t ProcessError; return errors.As(e, &t) }
func IsErrRecord(e error) bool   { var t RecordError; return errors.As(e, &t) }
