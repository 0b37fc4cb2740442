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

// Package sorteddiff compares two sorted inputs line by line, similar to the Unix comm command line
// tool, but reporting the result as a stream of events.
//
// Both inputs are read in lockstep and only the current and the next line of each input are held
// in memory. This makes it possible to compare files that are much larger than the available
// memory. The price is that both inputs must be sorted by the same order that's used to compare
// lines, [strings.Compare] by default. If they are not, the result is undefined. There is no
// alignment of moved lines or minimal edit script like with a classic diff, see
// [znkr.io/diff] for that.
//
// The main type is [Differ]. Handlers registered on a Differ are notified about every comparison
// step ([Compared]) and about lines that are only present in the first ([Removed]) or the second
// ([Added]) input. Alternatively, [Differ.Events] returns the events as an iterator.
//
// Inputs are files ([Differ.Diff]), readers ([Differ.DiffReaders]) or any [source.Source]
// ([Differ.DiffSources]). Sources decide if reading a line blocks or waits for another goroutine,
// the comparison is the same in both cases.
//
// [znkr.io/diff]: https://pkg.go.dev/znkr.io/diff
package sorteddiff
