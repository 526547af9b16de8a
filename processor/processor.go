// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokenrollup/fault"
	"github.com/bitmark-inc/tokenrollup/ledger"
	"github.com/bitmark-inc/tokenrollup/message"
)

// Processor - applies decoded messages to the ledger
type Processor struct {
	ledger *ledger.Ledger
	log    *logger.L
}

// New - processor writing to the given ledger
func New(l *ledger.Ledger, log *logger.L) *Processor {
	return &Processor{
		ledger: l,
		log:    log,
	}
}

// Process - apply one message
//
// a returned error means the message was rejected; a transfer rejected
// for insufficient balance or destination overflow has still consumed
// its nonce, any other rejection has written nothing
func (p *Processor) Process(m message.Message) error {
	switch tx := m.(type) {
	case *message.BridgeMessage:
		return p.ProcessBridge(tx)
	case *message.TransferMessage:
		return p.ProcessTransfer(tx)
	default:
		return fault.ErrUnknownMessageKind
	}
}

// ProcessBridge - credit a deposit
//
// the origin was checked during decode so there is nothing to verify
func (p *Processor) ProcessBridge(bridge *message.BridgeMessage) error {
	balance, err := p.ledger.ReadBalance(bridge.Account, bridge.Token)
	if nil != err {
		return err
	}

	total, ok := balance.CheckedAdd(bridge.Amount)
	if !ok {
		fault.Panicf("bridge credit overflow: account: %s  token: %s  balance: %s  amount: %s", bridge.Account, bridge.Token, balance, bridge.Amount)
	}

	err = p.ledger.StoreBalance(bridge.Account, bridge.Token, total)
	if nil != err {
		return err
	}

	p.log.Debugf("deposit: %s %s to: %s  balance: %s", bridge.Amount, bridge.Token, bridge.Account, total)
	return nil
}

// ProcessTransfer - verify and apply a signed transfer
func (p *Processor) ProcessTransfer(transfer *message.TransferMessage) error {
	err := transfer.Verify()
	if nil != err {
		return err
	}

	signer := transfer.Signer()
	inner := &transfer.Inner
	content := &inner.Content

	stored, err := p.ledger.ReadNonce(signer)
	if nil != err {
		return err
	}
	expected, err := stored.Next()
	if nil != err {
		return err
	}
	if expected != inner.Nonce {
		p.log.Debugf("account: %s  nonce: %d  expected: %d", signer, inner.Nonce, expected)
		return fault.ErrInvalidNonce
	}

	// the nonce is consumed even if the transfer fails below
	err = p.ledger.StoreNonce(signer, inner.Nonce)
	if nil != err {
		return err
	}

	sourceBalance, err := p.ledger.ReadBalance(signer, content.Token)
	if nil != err {
		return err
	}
	remaining, ok := sourceBalance.CheckedSub(content.Amount)
	if !ok {
		return fault.ErrInvalidTransferAmount
	}

	// moving to oneself leaves the balance as it is
	if signer == content.Destination {
		p.log.Debugf("transfer: %s %s  from: %s to itself", content.Amount, content.Token, signer)
		return nil
	}

	destinationBalance, err := p.ledger.ReadBalance(content.Destination, content.Token)
	if nil != err {
		return err
	}
	credited, ok := destinationBalance.CheckedAdd(content.Amount)
	if !ok {
		return fault.ErrBalanceOverflow
	}

	err = p.ledger.StoreBalance(signer, content.Token, remaining)
	if nil != err {
		return err
	}
	err = p.ledger.StoreBalance(content.Destination, content.Token, credited)
	if nil != err {
		return err
	}

	p.log.Debugf("transfer: %s %s  from: %s  to: %s  nonce: %d", content.Amount, content.Token, signer, content.Destination, inner.Nonce)
	return nil
}
