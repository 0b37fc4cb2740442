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

// Package render writes comparison events as text, one line per event.
//
// Added lines are prefixed with "+", removed lines with "-". If enabled, comparison steps are
// written as "=line1|line2".
package render

import (
	"io"
	"sync"

	"znkr.io/sorteddiff"
	"znkr.io/sorteddiff/internal/config"
	"znkr.io/sorteddiff/render/color"
)

const (
	prefixAdded    = "+"
	prefixRemoved  = "-"
	prefixCompared = "="
)

// Option configures a [Writer].
type Option func(*Writer)

// Colors enables ANSI colors. Without options, the default colors are used, options override
// individual colors.
func Colors(opts ...color.Option) Option {
	return func(w *Writer) {
		cc := config.DefaultColors
		for _, opt := range opts {
			opt(&cc)
		}
		w.colors = &cc
	}
}

// Compared enables writing comparison steps.
func Compared() Option {
	return func(w *Writer) {
		w.compared = true
	}
}

// Writer writes events to an io.Writer. It's safe for concurrent use.
type Writer struct {
	colors   *config.ColorConfig
	compared bool

	mu      sync.Mutex
	w       io.Writer
	buf     []byte
	changes int
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	rw := &Writer{w: w}
	for _, opt := range opts {
		opt(rw)
	}
	return rw
}

// Attach registers the writer's handlers on d.
func (w *Writer) Attach(d *sorteddiff.Differ) {
	d.OnAdded(w.Handle)
	d.OnRemoved(w.Handle)
	if w.compared {
		d.OnCompared(w.Handle)
	}
}

// Handle writes e. Comparison steps are ignored unless enabled with [Compared].
func (w *Writer) Handle(e sorteddiff.Event) error {
	var prefix, code string
	switch e.Kind {
	case sorteddiff.Added:
		prefix = prefixAdded
		if w.colors != nil {
			code = w.colors.Added
		}
	case sorteddiff.Removed:
		prefix = prefixRemoved
		if w.colors != nil {
			code = w.colors.Removed
		}
	case sorteddiff.Compared:
		if !w.compared {
			return nil
		}
		prefix = prefixCompared
		if w.colors != nil {
			code = w.colors.Compared
		}
	default:
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	b := w.buf[:0]
	b = append(b, code...)
	b = append(b, prefix...)
	if e.Kind == sorteddiff.Compared {
		b = append(b, e.Line1...)
		b = append(b, '|')
		b = append(b, e.Line2...)
	} else {
		b = append(b, e.Line...)
		w.changes++
	}
	if code != "" {
		b = append(b, config.ResetColor...)
	}
	b = append(b, '\n')
	w.buf = b
	_, err := w.w.Write(b)
	return err
}

// Changes returns the number of added and removed lines written so far.
func (w *Writer) Changes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.changes
}
