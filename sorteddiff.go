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

package sorteddiff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"sync"

	"znkr.io/sorteddiff/internal/config"
	"znkr.io/sorteddiff/internal/cursor"
	"znkr.io/sorteddiff/internal/dispatch"
	"znkr.io/sorteddiff/source"
)

// Handler handles an event. Returning an error aborts the run that produced the event.
type Handler func(Event) error

// Differ compares two sorted inputs line by line and notifies handlers about every step.
//
// Handlers are registered with [Differ.OnCompared], [Differ.OnAdded] and [Differ.OnRemoved].
// Handlers registered while a run is in progress only see events of later runs.
//
// A Differ can be used for multiple runs, also concurrently, as long as the comparison function
// and the handlers are safe for concurrent use.
type Differ struct {
	cfg config.Config

	mu       sync.Mutex
	handlers [3][]Handler // indexed by Kind
}

// New creates a Differ. It returns an error if an option has an invalid value.
func New(opts ...Option) (*Differ, error) {
	cfg, err := config.FromOptions(opts, config.All)
	if err != nil {
		return nil, err
	}
	return &Differ{cfg: cfg}, nil
}

// OnCompared registers a handler that's called for every comparison step.
func (d *Differ) OnCompared(h Handler) { d.on(Compared, h) }

// OnAdded registers a handler that's called for every line only present in the second input.
func (d *Differ) OnAdded(h Handler) { d.on(Added, h) }

// OnRemoved registers a handler that's called for every line only present in the first input.
func (d *Differ) OnRemoved(h Handler) { d.on(Removed, h) }

func (d *Differ) on(kind Kind, h Handler) {
	if h == nil {
		panic("sorteddiff: nil handler")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = append(d.handlers[kind], h)
}

// Diff compares the files name1 and name2. Both files are opened before any comparison, a
// missing file is reported without sending any event.
func (d *Differ) Diff(ctx context.Context, name1, name2 string) error {
	f1, err := source.Open(name1, d.cfg.Encoding)
	if err != nil {
		return err
	}
	defer f1.Close()
	f2, err := source.Open(name2, d.cfg.Encoding)
	if err != nil {
		return err
	}
	defer f2.Close()
	return d.DiffSources(ctx, f1, f2)
}

// DiffReaders compares the lines read from r1 and r2. The caller owns both readers, they are
// not closed.
func (d *Differ) DiffReaders(ctx context.Context, r1, r2 io.Reader) error {
	s1, err := source.NewReader(r1, d.cfg.Encoding)
	if err != nil {
		return err
	}
	s2, err := source.NewReader(r2, d.cfg.Encoding)
	if err != nil {
		return err
	}
	return d.DiffSources(ctx, s1, s2)
}

// DiffSources compares the lines produced by s1 and s2. Sources implementing io.Closer are closed
// once they are exhausted or when the run ends.
//
// The first error returned by a source, a handler or the context aborts the run and is returned.
func (d *Differ) DiffSources(ctx context.Context, s1, s2 source.Source) error {
	d.mu.Lock()
	var handlers [3][]Handler
	for i := range handlers {
		handlers[i] = slices.Clone(d.handlers[i])
	}
	d.mu.Unlock()

	disp := dispatch.New(ctx, d.cfg.Delivery, func(e Event) error {
		for _, h := range handlers[e.Kind] {
			if err := h(e); err != nil {
				return err
			}
		}
		return nil
	})
	err := d.run(ctx, s1, s2, disp.Send)
	if cerr := disp.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

var errStop = errors.New("stop iteration")

// Events returns an iterator over all events of a comparison of s1 and s2, in the order they
// occur. Registered handlers are not called. The iteration stops after the first error, which is
// yielded together with a zero Event. Stopping the iteration early stops the comparison.
func (d *Differ) Events(ctx context.Context, s1, s2 source.Source) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		err := d.run(ctx, s1, s2, func(e Event) error {
			if !yield(e, nil) {
				return errStop
			}
			return nil
		})
		if err != nil && err != errStop {
			yield(Event{}, err)
		}
	}
}

// Collect collects all events from seq. It returns the events collected so far and the first
// error.
func Collect(seq iter.Seq2[Event, error]) ([]Event, error) {
	var events []Event
	for e, err := range seq {
		if err != nil {
			return events, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (d *Differ) run(ctx context.Context, s1, s2 source.Source, emit func(Event) error) error {
	c1, err := cursor.New(ctx, s1)
	if err != nil {
		closeSource(s2)
		return fmt.Errorf("reading first input: %w", err)
	}
	defer c1.Close()
	c2, err := cursor.New(ctx, s2)
	if err != nil {
		return fmt.Errorf("reading second input: %w", err)
	}
	defer c2.Close()

	w := walker{c1: c1, c2: c2, cmp: d.cfg.Compare, logf: d.cfg.Logf, emit: emit}
	if d.cfg.SkipHeader {
		if err := w.advance(ctx, true, true); err != nil {
			return err
		}
	}

	// A cursor's exhaustion counter reaches 1 when its current line moves past the end of the
	// input and 2 one step later. The last line of the longer input is compared against the
	// sentinel of the shorter input before the shorter one reaches 2.
	for c1.Exhaustion() < 2 && c2.Exhaustion() < 2 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.step(ctx); err != nil {
			return err
		}
	}
	return nil
}

func closeSource(s source.Source) {
	if c, ok := s.(io.Closer); ok {
		c.Close()
	}
}

// walker walks two cursors in lockstep.
type walker struct {
	c1, c2 *cursor.Cursor
	cmp    func(a, b string) int
	logf   func(format string, args ...any)
	emit   func(Event) error
}

func (w *walker) step(ctx context.Context) error {
	line1, line2 := w.c1.Current(), w.c2.Current()
	cmp := w.cmp(line1, line2)
	w.logf("compare %q %q = %d [next %q %q, exhaustion %d %d]",
		line1, line2, cmp, w.c1.Lookahead(), w.c2.Lookahead(), w.c1.Exhaustion(), w.c2.Exhaustion())

	e := Event{
		Kind:    Compared,
		Line1:   line1,
		Line2:   line2,
		Cmp:     cmp,
		Cursor1: w.c1.Snapshot(),
		Cursor2: w.c2.Snapshot(),
	}
	if err := w.emit(e); err != nil {
		return err
	}

	switch {
	case cmp == 0:
		return w.advance(ctx, true, true)

	case cmp > 0:
		// line1 > line2: the second input has a line the first one doesn't have, unless the
		// second input ran out first, then the first input has a line the second one lost.
		if cmp == 1 {
			if w.c2.Exhaustion() > w.c1.Exhaustion() {
				e.Kind, e.Line = Removed, line1
			} else {
				e.Kind, e.Line = Added, line2
			}
			if err := w.emit(e); err != nil {
				return err
			}
		}
		return w.advance(ctx, false, true)

	default:
		// line1 < line2: the first input has a line the second one doesn't have, unless the
		// first input ran out first, then the second input has a new line.
		if cmp == -1 {
			if w.c1.Exhaustion() > w.c2.Exhaustion() {
				e.Kind, e.Line = Added, line2
			} else {
				e.Kind, e.Line = Removed, line1
			}
			if err := w.emit(e); err != nil {
				return err
			}
		}
		return w.advance(ctx, true, false)
	}
}

func (w *walker) advance(ctx context.Context, first, second bool) error {
	if first {
		if _, err := w.c1.Advance(ctx); err != nil {
			return fmt.Errorf("reading first input: %w", err)
		}
	}
	if second {
		if _, err := w.c2.Advance(ctx); err != nil {
			return fmt.Errorf("reading second input: %w", err)
		}
	}
	return nil
}
