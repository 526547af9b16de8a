// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"strings"

	"github.com/bitmark-inc/tokenrollup/fault"
)

// MaxPathLength - longest allowed path in bytes
const MaxPathLength = 250

// Path - a validated storage key
type Path string

// NewPath - validate a path
func NewPath(s string) (Path, error) {
	if !validPath(s) {
		return "", fault.ErrInvalidPath
	}
	return Path(s), nil
}

// Concat - append one or more segments
func (p Path) Concat(segments ...string) (Path, error) {
	b := strings.Builder{}
	b.WriteString(string(p))
	for _, s := range segments {
		if !validSegment(s) {
			return "", fault.ErrInvalidPath
		}
		b.WriteByte('/')
		b.WriteString(s)
	}
	return NewPath(b.String())
}

// String - for the fmt package
func (p Path) String() string {
	return string(p)
}

// key for the database
func (p Path) bytes() []byte {
	return []byte(p)
}

func validPath(s string) bool {
	if len(s) < 2 || len(s) > MaxPathLength || '/' != s[0] {
		return false
	}
	for _, segment := range strings.Split(s[1:], "/") {
		if !validSegment(segment) {
			return false
		}
	}
	return true
}

func validSegment(s string) bool {
	if 0 == len(s) {
		return false
	}
	for i := 0; i < len(s); i += 1 {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case '.' == c, '_' == c, '-' == c:
		default:
			return false
		}
	}
	return true
}
