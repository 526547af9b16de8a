// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sort"

	cache "github.com/patrickmn/go-cache"
)

// Cache - pending writes of the current transaction
type Cache interface {
	Get(string) ([]byte, bool)
	Set(string, []byte)
	Pending() []Element
	Clear()
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

type dbCache struct {
	cache *cache.Cache
}

// entries must survive until commit or abort
func newCache() Cache {
	return &dbCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (c *dbCache) Get(key string) ([]byte, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	return obj.([]byte), true
}

func (c *dbCache) Set(key string, value []byte) {
	stored := make([]byte, len(value))
	copy(stored, value)
	c.cache.Set(key, stored, cache.NoExpiration)
}

// Pending - all writes in key order
func (c *dbCache) Pending() []Element {
	items := c.cache.Items()
	elements := make([]Element, 0, len(items))
	for key, item := range items {
		elements = append(elements, Element{
			Key:   []byte(key),
			Value: item.Object.([]byte),
		})
	}
	sort.Slice(elements, func(i, j int) bool {
		return string(elements[i].Key) < string(elements[j].Key)
	})
	return elements
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
