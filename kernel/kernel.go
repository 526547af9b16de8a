// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kernel

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokenrollup/inbox"
	"github.com/bitmark-inc/tokenrollup/message"
	"github.com/bitmark-inc/tokenrollup/storage"
)

// Decoder - turns inbox records into messages
type Decoder interface {
	Decode(*inbox.Envelope) (message.Message, error)
}

// Processor - applies messages to the ledger
type Processor interface {
	Process(message.Message) error
}

// Stats - counts for one execution step
type Stats struct {
	Received        int // records read from the source
	Skipped         int // records committed by an earlier attempt
	Decoded         int // records that became messages
	Applied         int // messages applied to the ledger
	DecodeRejected  int // records dropped by the decoder
	ProcessRejected int // messages rejected by the processor
}

// Add - accumulate counts
func (s *Stats) Add(other Stats) {
	s.Received += other.Received
	s.Skipped += other.Skipped
	s.Decoded += other.Decoded
	s.Applied += other.Applied
	s.DecodeRejected += other.DecodeRejected
	s.ProcessRejected += other.ProcessRejected
}

// Run - drain the source one message at a time
//
// each decoded message is processed inside its own store transaction,
// which is committed whether or not the processor accepted it; records
// that fail to decode open no transaction
//
// every commit also stores the cursor for step, so a rerun of the same
// step passes over the records that were already committed
//
// only a source read error or a store failure stops the loop early
func Run(step string, source inbox.Source, decoder Decoder, processor Processor, store storage.Store, log *logger.L) (Stats, error) {
	stats := Stats{}

	cursor, err := ReadCursor(store)
	if nil != err {
		log.Criticalf("read cursor error: %s", err)
		return stats, err
	}
	skip := cursor.skip(step)
	if skip > 0 {
		log.Infof("step: %q  resume after record: %d", step, skip)
	}

	record := uint64(0)
	for {
		envelope, ok, err := source.Next()
		if nil != err {
			log.Errorf("inbox read error: %s", err)
			return stats, err
		}
		if !ok {
			log.Debugf("end of inbox: %+v", stats)
			return stats, nil
		}
		stats.Received += 1
		record += 1

		if record <= skip {
			stats.Skipped += 1
			continue
		}

		m, err := decoder.Decode(envelope)
		if nil != err {
			stats.DecodeRejected += 1
			log.Warnf("record: %d dropped: %s", record, err)
			continue
		}
		stats.Decoded += 1

		err = store.Begin()
		if nil != err {
			log.Criticalf("begin transaction error: %s", err)
			return stats, err
		}

		err = processor.Process(m)
		if nil != err {
			stats.ProcessRejected += 1
			log.Infof("record: %d %s rejected: %s", record, m.Tag(), err)
		} else {
			stats.Applied += 1
		}

		err = store.Put(CursorPath, Cursor{Step: step, Record: record}.Bytes())
		if nil != err {
			store.Abort()
			log.Criticalf("write cursor error: %s", err)
			return stats, err
		}

		err = store.Commit()
		if nil != err {
			log.Criticalf("commit error: %s", err)
			return stats, err
		}
	}
}
