// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run long lived tasks until shutdown
package background

import (
	"sync"
)

// Process - a long running task
//
// Run must return soon after shutdown is closed; a non-nil error
// ends the task early and is reported through Failed
type Process interface {
	Run(args interface{}, shutdown <-chan struct{}) error
}

// Processes - list of processes to start
type Processes []Process

// T - handle for a set of running processes
type T struct {
	shutdown chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	failed   chan error
	errors   []error
	lock     sync.Mutex
}

// Start - start up a set of background processes
func Start(processes Processes, args interface{}) *T {

	t := &T{
		shutdown: make(chan struct{}),
		failed:   make(chan error, 1),
	}

	for _, p := range processes {
		t.wg.Add(1)
		go t.run(p, args)
	}
	return t
}

func (t *T) run(p Process, args interface{}) {
	defer t.wg.Done()

	err := p.Run(args, t.shutdown)
	if nil == err {
		return
	}

	t.lock.Lock()
	t.errors = append(t.errors, err)
	t.lock.Unlock()

	// only the first failure is signalled
	select {
	case t.failed <- err:
	default:
	}
}

// Failed - receives the first error returned by any process
func (t *T) Failed() <-chan error {
	return t.failed
}

// Stop - signal shutdown, wait for every process to finish and
// return the first error that any of them reported
func (t *T) Stop() error {
	t.stopOnce.Do(func() {
		close(t.shutdown)
	})
	t.wg.Wait()

	t.lock.Lock()
	defer t.lock.Unlock()
	if len(t.errors) > 0 {
		return t.errors[0]
	}
	return nil
}
