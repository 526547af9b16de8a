// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package inbox

import (
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

// Watcher - signal when inbox files appear in a directory
//
// only the creation of a name ending in FileExtension counts, writes do
// not; producers must write the file under another name and then
// rename it into the directory so it is complete when it appears
type Watcher struct {
	log       *logger.L
	watcher   *fsnotify.Watcher
	directory string
	arrived   chan struct{}
	done      chan struct{}
}

// NewWatcher - watcher on an existing directory
func NewWatcher(directory string, log *logger.L) (*Watcher, error) {
	directory, err := filepath.Abs(filepath.Clean(directory))
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	err = watcher.Add(directory)
	if nil != err {
		watcher.Close()
		return nil, err
	}

	return &Watcher{
		log:       log,
		watcher:   watcher,
		directory: directory,
		arrived:   make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start - begin forwarding events
func (w *Watcher) Start() {
	go w.run()
}

// Arrived - receives a value after one or more inbox files appear
func (w *Watcher) Arrived() <-chan struct{} {
	return w.arrived
}

// Stop - end the watch
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isArrival(event) {
				continue
			}
			w.log.Debugf("file event: %v", event)
			w.sendEvent()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Errorf("watcher error: %s", err)
		}
	}
}

// coalesce: one pending signal covers any number of files
func (w *Watcher) sendEvent() {
	select {
	case w.arrived <- struct{}{}:
	default:
		w.log.Debug("arrival already signalled")
	}
}

// a rename into the directory is reported as a create
func isArrival(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, FileExtension) {
		return false
	}
	return event.Op&fsnotify.Create == fsnotify.Create
}
