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

// Package benchmarks compares the streaming comparison of sorted inputs with in-memory line diff
// libraries.
//
// All implementations write one line per change, prefixed with "+" or "-". Some also write
// matching lines prefixed with " ".
package benchmarks

import (
	"bytes"
	"context"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/diff"
	"znkr.io/diff/textdiff"
	"znkr.io/sorteddiff"
	"znkr.io/sorteddiff/render"
)

type Impl struct {
	Name string
	Diff func(x, y []byte) []byte
}

var Impls = []Impl{
	{
		Name: "sorteddiff",
		Diff: func(x, y []byte) []byte {
			return sorted(x, y, sorteddiff.Awaited)
		},
	},
	{
		Name: "sorteddiff-fire-and-forget",
		Diff: func(x, y []byte) []byte {
			return sorted(x, y, sorteddiff.FireAndForget)
		},
	},
	{
		Name: "znkr",
		Diff: func(x, y []byte) []byte {
			return textdiff.Unified(x, y)
		},
	},
	{
		Name: "znkr-lines",
		Diff: func(x, y []byte) []byte {
			// Only the changes, closer to what sorteddiff reports.
			var buf bytes.Buffer
			for _, edit := range diff.Edits(strings.SplitAfter(string(x), "\n"), strings.SplitAfter(string(y), "\n")) {
				switch edit.Op {
				case diff.Delete:
					buf.WriteString("-")
					buf.WriteString(edit.X)
				case diff.Insert:
					buf.WriteString("+")
					buf.WriteString(edit.Y)
				}
			}
			return buf.Bytes()
		},
	},
	{
		Name: "go-internal",
		Diff: func(x, y []byte) []byte {
			return gointernal.Diff("x", x, "y", y)
		},
	},
	{
		Name: "diffmatchpatch",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			dmp := diffmatchpatch.New()
			rx, ry, lines := dmp.DiffLinesToRunes(string(x), string(y))
			diffs := dmp.DiffMainRunes(rx, ry, false)
			diffs = dmp.DiffCharsToLines(diffs, lines)

			var buf bytes.Buffer
			for _, diff := range diffs {
				var prefix string
				switch diff.Type {
				case diffmatchpatch.DiffInsert:
					prefix = "+"
				case diffmatchpatch.DiffDelete:
					prefix = "-"
				case diffmatchpatch.DiffEqual:
					prefix = " "
				}
				for _, line := range strings.SplitAfter(diff.Text, "\n") {
					if line == "" {
						continue
					}
					buf.WriteString(prefix)
					buf.WriteString(line)
				}
			}
			return buf.Bytes()
		},
	},
	{
		Name: "godebug",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			return []byte(godebug.Diff(string(x), string(y)))
		},
	},
	{
		Name: "mb0",
		Diff: func(x, y []byte) []byte {
			// This function is not exactly creating a unified diff, but it's close enough to be
			// comparable.
			d := mb0lines{
				x: bytes.SplitAfter(x, []byte("\n")),
				y: bytes.SplitAfter(y, []byte("\n")),
			}
			changes := mb0.Diff(len(d.x), len(d.y), d)
			var buf bytes.Buffer
			for _, ch := range changes {
				for i := range ch.Del {
					buf.WriteString("-")
					buf.Write(d.x[ch.A+i])
				}
				for i := range ch.Ins {
					buf.WriteString("+")
					buf.Write(d.y[ch.B+i])
				}
			}
			return buf.Bytes()
		},
	},
	{
		Name: "udiff",
		Diff: func(x, y []byte) []byte {
			return []byte(udiff.Unified("x", "y", string(x), string(y)))
		},
	},
}

func sorted(x, y []byte, delivery sorteddiff.Delivery) []byte {
	d, err := sorteddiff.New(sorteddiff.WithDelivery(delivery))
	if err != nil {
		panic(err)
	}
	var buf bytes.Buffer
	render.NewWriter(&buf).Attach(d)
	if err := d.DiffReaders(context.Background(), bytes.NewReader(x), bytes.NewReader(y)); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

type mb0lines struct {
	x [][]byte
	y [][]byte
}

func (d mb0lines) Equal(i, j int) bool { return bytes.Equal(d.x[i], d.y[j]) }
