// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kernel

import (
	"encoding/binary"

	"github.com/bitmark-inc/tokenrollup/fault"
	"github.com/bitmark-inc/tokenrollup/storage"
)

// CursorPath - reserved path holding the resume position
const CursorPath = storage.Path("/kernel/cursor")

const recordCountSize = 8

// Cursor - the last record committed within a named execution step
type Cursor struct {
	Step   string
	Record uint64
}

// ReadCursor - zero cursor when absent
func ReadCursor(store storage.Store) (Cursor, error) {
	value, err := store.Get(CursorPath)
	if nil != err {
		return Cursor{}, err
	}
	if nil == value {
		return Cursor{}, nil
	}
	if len(value) < recordCountSize {
		return Cursor{}, fault.ErrStateDeserialization
	}
	return Cursor{
		Step:   string(value[recordCountSize:]),
		Record: binary.BigEndian.Uint64(value[:recordCountSize]),
	}, nil
}

// Bytes - record count (8 bytes big endian) followed by the step name
func (c Cursor) Bytes() []byte {
	b := make([]byte, recordCountSize, recordCountSize+len(c.Step))
	binary.BigEndian.PutUint64(b, c.Record)
	return append(b, c.Step...)
}

// records already committed for step
func (c Cursor) skip(step string) uint64 {
	if c.Step != step {
		return 0
	}
	return c.Record
}
