// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"time"

	bolt "go.etcd.io/bbolt"
)

// all paths live in a single bucket
var boltBucket = []byte("state")

type boltDB struct {
	db *bolt.DB
}

func openBoltDB(name string, readOnly bool) (*boltDB, error) {
	db, err := bolt.Open(name, 0600, &bolt.Options{
		Timeout:  1 * time.Second,
		ReadOnly: readOnly,
	})
	if nil != err {
		return nil, err
	}

	if !readOnly {
		err = db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(boltBucket)
			return err
		})
		if nil != err {
			db.Close()
			return nil, err
		}
	}
	return &boltDB{db: db}, nil
}

func (b *boltDB) get(key []byte) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		if nil == bucket {
			return nil
		}
		// only valid for the life of the transaction
		if v := bucket.Get(key); nil != v {
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	return value, err
}

func (b *boltDB) has(key []byte) (bool, error) {
	value, err := b.get(key)
	return nil != value, err
}

func (b *boltDB) write(elements []Element) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(boltBucket)
		if nil != err {
			return err
		}
		for _, e := range elements {
			if err := bucket.Put(e.Key, e.Value); nil != err {
				return err
			}
		}
		return nil
	})
}

func (b *boltDB) iterate(prefix []byte, fn func([]byte, []byte) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		if nil == bucket {
			return nil
		}
		c := bucket.Cursor()
		for k, v := c.Seek(prefix); nil != k && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			key := make([]byte, len(k))
			copy(key, k)
			value := make([]byte, len(v))
			copy(value, v)
			if err := fn(key, value); nil != err {
				return err
			}
		}
		return nil
	})
}

func (b *boltDB) close() error {
	return b.db.Close()
}
