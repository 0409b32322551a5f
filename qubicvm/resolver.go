// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/ids"
)

// resolver owns every terminal transition. Issued transactions are
// scheduled on a timer which hands the ID to a single goroutine, so
// resolutions never run concurrently with each other.
type resolver struct {
	queue   chan ids.ID
	resolve func(txID ids.ID)

	closing   chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newResolver(size int, resolve func(ids.ID)) *resolver {
	return &resolver{
		queue:   make(chan ids.ID, size),
		resolve: resolve,
		closing: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (r *resolver) start() {
	go r.run()
}

func (r *resolver) run() {
	defer close(r.done)
	for {
		select {
		case txID := <-r.queue:
			r.resolve(txID)
		case <-r.closing:
			return
		}
	}
}

// schedule queues [txID] for resolution once [delay] has passed
func (r *resolver) schedule(txID ids.ID, delay time.Duration) {
	time.AfterFunc(delay, func() {
		select {
		case r.queue <- txID:
		case <-r.closing:
		}
	})
}

// stop halts resolution. Transactions that haven't resolved yet stay pending.
func (r *resolver) stop() {
	r.closeOnce.Do(func() {
		close(r.closing)
	})
	<-r.done
}
