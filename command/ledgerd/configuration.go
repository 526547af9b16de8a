// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokenrollup/account"
	"github.com/bitmark-inc/tokenrollup/configuration"
	"github.com/bitmark-inc/tokenrollup/message"
	"github.com/bitmark-inc/tokenrollup/storage"
	"github.com/bitmark-inc/tokenrollup/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultDatabaseDirectory = "data"
	defaultDatabaseName      = "ledger"

	defaultInboxDirectory = "inbox"
	defaultDoneDirectory  = "done"

	defaultLogDirectory = "log"
	defaultLogFile      = "ledgerd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

type DatabaseType struct {
	Backend   string `gluamapper:"backend" json:"backend"`
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

type BridgeType struct {
	Contract      string `gluamapper:"contract" json:"contract"`
	Discriminator int    `gluamapper:"discriminator" json:"discriminator"`
}

type InboxType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Done      string `gluamapper:"done" json:"done"`
	Watch     bool   `gluamapper:"watch" json:"watch"`
}

type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string               `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Bridge        BridgeType           `gluamapper:"bridge" json:"bridge"`
	Inbox         InboxType            `gluamapper:"inbox" json:"inbox"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Backend:   storage.LevelDB,
			Directory: defaultDatabaseDirectory,
			Name:      defaultDatabaseName,
		},

		Bridge: BridgeType{
			Discriminator: message.DefaultDiscriminator,
		},

		Inbox: InboxType{
			Directory: defaultInboxDirectory,
			Done:      defaultDoneDirectory,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	options.Database.Backend = strings.ToLower(options.Database.Backend)
	switch options.Database.Backend {
	case storage.LevelDB, storage.BoltDB:
	default:
		return nil, fmt.Errorf("Database: backend %q is not supported", options.Database.Backend)
	}

	if !account.IsContractAddress(options.Bridge.Contract) {
		return nil, fmt.Errorf("Bridge: %q is not a contract address", options.Bridge.Contract)
	}
	if options.Bridge.Discriminator < 0 || options.Bridge.Discriminator > 0xff {
		return nil, fmt.Errorf("Bridge: discriminator %d is not a byte value", options.Bridge.Discriminator)
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator
	mustNotBePaths := []*string{
		&options.Database.Name,
		&options.Logging.File,
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Inbox.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// processed files are moved below the inbox unless an absolute path is given
	options.Inbox.Done = util.EnsureAbsolute(options.Inbox.Directory, options.Inbox.Done)
	if options.Inbox.Done == options.Inbox.Directory {
		return nil, fmt.Errorf("Inbox: done directory %q must differ from the inbox", options.Inbox.Done)
	}
	if err := os.MkdirAll(options.Inbox.Done, 0700); nil != err {
		return nil, err
	}

	// database file name including its directory, without the backend extension
	options.Database.Name = util.EnsureAbsolute(options.Database.Directory, options.Database.Name)

	// done
	return options, nil
}
