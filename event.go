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
	"fmt"

	"znkr.io/sorteddiff/internal/cursor"
)

// Kind describes the kind of an event.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Kind
type Kind int

const (
	Compared Kind = iota // Two lines were compared, sent for every step
	Added                // A line is only present in the second input
	Removed              // A line is only present in the first input
)

// CursorState describes the position of the cursor over one input at the time of an event.
type CursorState = cursor.Snapshot

// Cursor states, see [CursorState].
const (
	HasData       = cursor.HasData       // There's at least one more line after the current one.
	JustExhausted = cursor.JustExhausted // The current line is the last line.
	PastEnd       = cursor.PastEnd       // The current line is past the end of the input.
)

// Event describes a single comparison step or its outcome.
//
//   - For Compared, Line1 and Line2 are the compared lines and Cmp is the result of the comparison.
//   - For Added, Line is the line from the second input that's missing in the first.
//   - For Removed, Line is the line from the first input that's missing in the second.
//
// Line1, Line2 and Cmp are set for all kinds. Cursor1 and Cursor2 describe the state of both
// inputs before the cursors advanced.
type Event struct {
	Kind             Kind
	Line             string
	Line1, Line2     string
	Cmp              int
	Cursor1, Cursor2 CursorState
}

// String formats the event like a line of diff output: "+line" for added lines, "-line" for
// removed lines and "=line1|line2" for comparisons.
func (e Event) String() string {
	switch e.Kind {
	case Added:
		return "+" + e.Line
	case Removed:
		return "-" + e.Line
	case Compared:
		return "=" + e.Line1 + "|" + e.Line2
	default:
		return fmt.Sprintf("%v(%q)", e.Kind, e.Line)
	}
}
