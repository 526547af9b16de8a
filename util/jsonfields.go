// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bitmark-inc/tokenrollup/fault"
)

// ObjectMembers - top level members of a JSON object, nil for null
//
// a member name that occurs twice is rejected
func ObjectMembers(data []byte) (map[string]json.RawMessage, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); nil != err {
		return nil, err
	}
	if nil == members {
		return nil, nil
	}

	d := json.NewDecoder(bytes.NewReader(data))

	// opening brace
	if _, err := d.Token(); nil != err {
		return nil, err
	}

	seen := make(map[string]struct{}, len(members))
	for d.More() {
		t, err := d.Token()
		if nil != err {
			return nil, err
		}
		name, _ := t.(string)
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: %s", fault.ErrDuplicateField, name)
		}
		seen[name] = struct{}{}

		var value json.RawMessage
		if err := d.Decode(&value); nil != err {
			return nil, err
		}
	}
	return members, nil
}

// RequireFields - check that a JSON object has every named member with
// a non-null value
//
// member names are exact: a duplicate, or a name differing from one of
// the required names only in letter case, is rejected
func RequireFields(data []byte, names ...string) error {
	members, err := ObjectMembers(data)
	if nil != err {
		return err
	}
	if nil == members {
		return fault.ErrMissingField
	}
	for member := range members {
		for _, name := range names {
			if member != name && strings.EqualFold(member, name) {
				return fmt.Errorf("%w: %s", fault.ErrDuplicateField, member)
			}
		}
	}
	for _, name := range names {
		value, ok := members[name]
		if !ok || "null" == string(value) {
			return fmt.Errorf("%w: %s", fault.ErrMissingField, name)
		}
	}
	return nil
}
