// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dispatch delivers events to handlers in the order they are sent.
package dispatch

import (
	"context"

	"golang.org/x/sync/errgroup"
	"znkr.io/sorteddiff/internal/config"
)

// queueSize bounds the number of undelivered events in fire-and-forget mode. The sender blocks
// when the queue is full.
const queueSize = 256

// Dispatcher hands events to a deliver function, either inline or from a separate goroutine.
type Dispatcher[E any] struct {
	deliver func(E) error

	// Only set in fire-and-forget mode.
	queue  chan E
	g      *errgroup.Group
	gctx   context.Context
	closed bool
}

// New returns a dispatcher for the given mode. Close must be called once no more events are sent.
func New[E any](ctx context.Context, mode config.DeliveryMode, deliver func(E) error) *Dispatcher[E] {
	d := &Dispatcher[E]{deliver: deliver}
	if mode != config.DeliveryFireAndForget {
		return d
	}
	d.queue = make(chan E, queueSize)
	d.g, d.gctx = errgroup.WithContext(ctx)
	d.g.Go(func() error {
		for e := range d.queue {
			if err := d.gctx.Err(); err != nil {
				return err
			}
			if err := deliver(e); err != nil {
				return err
			}
		}
		return nil
	})
	return d
}

// Send delivers e. In awaited mode, Send returns after e was delivered and returns the error of
// the deliver function. In fire-and-forget mode, Send only waits if the queue is full. It returns
// an error if delivering a previous event failed.
func (d *Dispatcher[E]) Send(e E) error {
	if d.queue == nil {
		return d.deliver(e)
	}
	select {
	case d.queue <- e:
		return nil
	case <-d.gctx.Done():
		return context.Cause(d.gctx)
	}
}

// Close waits until all queued events are delivered and returns the first delivery error. It's
// safe to call Close multiple times.
func (d *Dispatcher[E]) Close() error {
	if d.queue == nil {
		return nil
	}
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	return d.g.Wait()
}
