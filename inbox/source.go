// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package inbox

import (
	"bufio"
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bitmark-inc/logger"
)

// FileExtension - suffix of inbox files
//
// producers write under another name and rename when complete
const FileExtension = ".inbox"

// longest accepted inbox line
const maxLineLength = 1024 * 1024

// Source - ordered supply of inbox records
//
// end of stream is (nil, false, nil)
type Source interface {
	Next() (*Envelope, bool, error)
}

// MemorySource - records held in a slice
type MemorySource struct {
	envelopes []*Envelope
}

// NewMemorySource - source over the given records
func NewMemorySource(envelopes ...*Envelope) *MemorySource {
	return &MemorySource{
		envelopes: envelopes,
	}
}

// Next - the next record
func (m *MemorySource) Next() (*Envelope, bool, error) {
	if 0 == len(m.envelopes) {
		return nil, false, nil
	}
	e := m.envelopes[0]
	m.envelopes = m.envelopes[1:]
	return e, true, nil
}

// ReaderSource - newline delimited JSON records
type ReaderSource struct {
	log     *logger.L
	scanner *bufio.Scanner
	line    int
}

// NewReaderSource - source reading records from r
func NewReaderSource(r io.Reader, log *logger.L) *ReaderSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &ReaderSource{
		log:     log,
		scanner: scanner,
		line:    0,
	}
}

// Next - the next record; blank lines are skipped
//
// a line that is not a valid record is passed on as an empty envelope
// so the decoder counts and drops it
func (s *ReaderSource) Next() (*Envelope, bool, error) {
	for s.scanner.Scan() {
		s.line += 1
		line := bytes.TrimSpace(s.scanner.Bytes())
		if 0 == len(line) {
			continue
		}
		e, err := ParseEnvelope(line)
		if nil != err {
			s.log.Warnf("line: %d  error: %s", s.line, err)
			return &Envelope{}, true, nil
		}
		return e, true, nil
	}
	if err := s.scanner.Err(); nil != err {
		return nil, false, err
	}
	return nil, false, nil
}

// FileSource - one inbox file
type FileSource struct {
	*ReaderSource
	file *os.File
}

// OpenFile - source reading an inbox file
func OpenFile(name string, log *logger.L) (*FileSource, error) {
	f, err := os.Open(name)
	if nil != err {
		return nil, err
	}
	return &FileSource{
		ReaderSource: NewReaderSource(f, log),
		file:         f,
	}, nil
}

// Close - release the file
func (f *FileSource) Close() error {
	return f.file.Close()
}

// PendingFiles - inbox files in a directory, in name order
func PendingFiles(directory string) ([]string, error) {
	entries, err := ioutil.ReadDir(directory)
	if nil != err {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Mode().IsRegular() || !strings.HasSuffix(entry.Name(), FileExtension) {
			continue
		}
		names = append(names, filepath.Join(directory, entry.Name()))
	}
	sort.Strings(names)
	return names, nil
}
