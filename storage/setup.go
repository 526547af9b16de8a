// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokenrollup/fault"
)

// supported backends
const (
	LevelDB = "leveldb"
	BoltDB  = "boltdb"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Open - open or create a database
//
// the backend name selects the file extension: name.leveldb or name.boltdb
func Open(backendName string, name string, readOnly bool, log *logger.L) (Store, error) {
	var b backend
	var err error

	switch strings.ToLower(backendName) {
	case "", LevelDB:
		b, err = openLevelDB(name+".leveldb", readOnly)
	case BoltDB:
		b, err = openBoltDB(name+".boltdb", readOnly)
	default:
		return nil, fault.ErrUnknownBackend
	}
	if nil != err {
		return nil, err
	}

	err = checkVersion(b, readOnly, log)
	if nil != err {
		b.close()
		return nil, err
	}

	log.Infof("opened %s database: %q", backendName, name)
	return newHandle(b, log), nil
}

// NewMemory - an empty store held in memory
func NewMemory(log *logger.L) (Store, error) {
	b, err := openMemoryDB()
	if nil != err {
		return nil, err
	}
	err = checkVersion(b, ReadWrite, log)
	if nil != err {
		b.close()
		return nil, err
	}
	return newHandle(b, log), nil
}

// ensure no database downgrade and tag an empty database
func checkVersion(b backend, readOnly bool, log *logger.L) error {
	version, err := getVersion(b)
	if nil != err {
		return err
	}

	switch {
	case 0 == version && readOnly:
		log.Criticalf("database has no version")
		return fault.ErrDatabaseVersion

	case 0 == version:
		// database was empty so tag as current version
		return putVersion(b, currentDBVersion)

	case currentDBVersion != version:
		log.Criticalf("database version: %d  current version: %d", version, currentDBVersion)
		return fault.ErrDatabaseVersion
	}
	return nil
}

func getVersion(b backend) (int, error) {
	versionValue, err := b.get(versionKey)
	if nil != err {
		return 0, err
	}
	if nil == versionValue {
		return 0, nil
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("%w: expected length: %d  actual: %d", fault.ErrDatabaseVersion, 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(b backend, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return b.write([]Element{{Key: versionKey, Value: currentVersion}})
}
