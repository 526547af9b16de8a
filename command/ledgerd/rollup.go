// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokenrollup/inbox"
	"github.com/bitmark-inc/tokenrollup/kernel"
	"github.com/bitmark-inc/tokenrollup/ledger"
	"github.com/bitmark-inc/tokenrollup/processor"
	"github.com/bitmark-inc/tokenrollup/storage"
)

// rollup - the pieces needed to run execution steps
type rollup struct {
	log       *logger.L
	kernelLog *logger.L
	store     storage.Store
	decoder   kernel.Decoder
	processor kernel.Processor
	inboxDir  string
	doneDir   string
}

func newRollup(theConfiguration *Configuration, store storage.Store, log *logger.L) (*rollup, error) {
	decoder, err := inbox.NewDecoder(theConfiguration.Bridge.Contract, byte(theConfiguration.Bridge.Discriminator))
	if nil != err {
		return nil, err
	}

	return &rollup{
		log:       log,
		kernelLog: logger.New("kernel"),
		store:     store,
		decoder:   decoder,
		processor: processor.New(ledger.New(store), logger.New("processor")),
		inboxDir:  theConfiguration.Inbox.Directory,
		doneDir:   theConfiguration.Inbox.Done,
	}, nil
}

// drain - run one execution step for every pending inbox file
//
// each file is moved to the done directory once its step has
// completed; a failed step leaves the file in place and stops, and the
// next drain resumes it after the last committed record
//
// the file's base name identifies the step, so names must not be reused
func (r *rollup) drain() (kernel.Stats, error) {
	total := kernel.Stats{}

	files, err := inbox.PendingFiles(r.inboxDir)
	if nil != err {
		return total, err
	}

	for _, name := range files {
		stats, err := r.step(name)
		total.Add(stats)
		if nil != err {
			r.log.Errorf("inbox: %q  error: %s", name, err)
			return total, err
		}

		done := filepath.Join(r.doneDir, filepath.Base(name))
		err = os.Rename(name, done)
		if nil != err {
			r.log.Errorf("move: %q to: %q  error: %s", name, done, err)
			return total, err
		}
		r.log.Infof("inbox: %q  stats: %+v", filepath.Base(name), stats)
	}
	return total, nil
}

func (r *rollup) step(name string) (kernel.Stats, error) {
	source, err := inbox.OpenFile(name, r.log)
	if nil != err {
		return kernel.Stats{}, err
	}
	defer source.Close()

	return kernel.Run(filepath.Base(name), source, r.decoder, r.processor, r.store, r.kernelLog)
}

// Run - background process draining the inbox as files arrive
func (r *rollup) Run(args interface{}, shutdown <-chan struct{}) error {
	return r.watch(shutdown)
}

// watch - drain whenever new files arrive until shutdown is closed
func (r *rollup) watch(shutdown <-chan struct{}) error {
	watcher, err := inbox.NewWatcher(r.inboxDir, logger.New("watcher"))
	if nil != err {
		return err
	}
	watcher.Start()
	defer watcher.Stop()

	// files that arrived before the watch started
	if _, err := r.drain(); nil != err {
		return err
	}

	for {
		select {
		case <-shutdown:
			return nil
		case <-watcher.Arrived():
			if _, err := r.drain(); nil != err {
				return err
			}
		}
	}
}
