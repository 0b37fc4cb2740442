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

// Package cursor implements a two-slot lookahead over a line source.
//
// A cursor tracks the line at the current read position and the line after it. Once the source is
// exhausted, both slots are filled with the empty string. Because the empty string is also a valid
// line, the cursor counts how often it advanced past the end of the input. The counter, not the
// content of a slot, tells if a line is real:
//
//	-1  the source hasn't reported the end of input yet
//	 0  the lookahead reached the end, current holds the last line
//	≥1  current is past the end of the input
package cursor

import (
	"context"
	"io"

	"znkr.io/sorteddiff/source"
)

// State is a readable view on the exhaustion counter.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=State
type State int

const (
	HasData       State = iota // The lookahead holds a real line.
	JustExhausted              // The lookahead reached the end, current is the last line.
	PastEnd                    // Current is past the end of the input.
)

// Cursor is a two-slot lookahead buffer over a source.
type Cursor struct {
	src        source.Source
	current    string
	lookahead  string
	index      int
	exhaustion int
	closed     bool
}

// New returns a cursor reading from src. The cursor is primed with two advances, after that
// current holds the first line of src and the lookahead the second.
func New(ctx context.Context, src source.Source) (*Cursor, error) {
	c := &Cursor{src: src, index: -1, exhaustion: -1}
	for range 2 {
		if _, err := c.Advance(ctx); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

// Advance shifts the lookahead into current and reads the next line into the lookahead. It
// returns the new current line.
//
// Once current is past the end, the source isn't read anymore. Advance still counts.
func (c *Cursor) Advance(ctx context.Context) (string, error) {
	c.current = c.lookahead
	if c.exhaustion >= 0 {
		c.lookahead = ""
		c.exhaustion++
		c.index++
		return c.current, nil
	}
	line, err := c.src.Next(ctx)
	switch {
	case err == io.EOF:
		c.lookahead = ""
		c.exhaustion++
		if err := c.Close(); err != nil {
			return "", err
		}
	case err != nil:
		return "", err
	default:
		c.lookahead = line
	}
	c.index++
	return c.current, nil
}

// Close releases the source if it implements io.Closer. It's safe to call Close multiple times.
func (c *Cursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if cl, ok := c.src.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

// Current returns the line at the current read position.
func (c *Cursor) Current() string { return c.current }

// Lookahead returns the line after the current line.
func (c *Cursor) Lookahead() string { return c.lookahead }

// Index returns the number of advances performed, starting at -1.
func (c *Cursor) Index() int { return c.index }

// Exhaustion returns the exhaustion counter, see the package documentation.
func (c *Cursor) Exhaustion() int { return c.exhaustion }

// State maps the exhaustion counter to a State.
func (c *Cursor) State() State {
	switch {
	case c.exhaustion < 0:
		return HasData
	case c.exhaustion == 0:
		return JustExhausted
	default:
		return PastEnd
	}
}

// Snapshot is an immutable copy of a cursor's position.
type Snapshot struct {
	Index      int    // Number of advances performed.
	Exhaustion int    // Exhaustion counter, see the package documentation.
	State      State  // Readable form of Exhaustion.
	Current    string // Line at the current read position.
	Lookahead  string // Line after Current.
}

// Snapshot returns the current position of c.
func (c *Cursor) Snapshot() Snapshot {
	return Snapshot{
		Index:      c.index,
		Exhaustion: c.exhaustion,
		State:      c.State(),
		Current:    c.current,
		Lookahead:  c.lookahead,
	}
}
