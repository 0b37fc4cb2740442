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

package benchmarks

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
	"znkr.io/sorteddiff"
)

type testdata struct {
	name string
	x, y []byte
}

// loadTestdata loads the inputs of the golden tests of the main module.
func loadTestdata(t testing.TB) []testdata {
	t.Helper()
	testFiles, err := filepath.Glob("../../testdata/*.test")
	if err != nil {
		t.Fatalf("Failed to read testdata: %v", err)
	}
	var tests []testdata
	for _, filename := range testFiles {
		ar, err := txtar.ParseFile(filename)
		if err != nil {
			t.Fatalf("failed to parse test case: %v", err)
		}
		test := testdata{
			name: filepath.Base(filename),
		}
		for _, f := range ar.Files {
			switch f.Name {
			case "x":
				test.x = f.Data
			case "y":
				test.y = f.Data
			}
		}
		tests = append(tests, test)
	}
	return tests
}

// generate creates two sorted inputs with n lines each where roughly one in every k lines
// differs.
func generate(n, k int) testdata {
	rng := rand.New(rand.NewPCG(uint64(n), uint64(k)))
	var x, y []string
	for i := range n {
		line := fmt.Sprintf("%08d,%x", i, rng.Uint32())
		switch rng.IntN(k) {
		case 0:
			x = append(x, line)
		case 1:
			y = append(y, line)
		default:
			x = append(x, line)
			y = append(y, line)
		}
	}
	// A common last line, both inputs end at the same time.
	x = append(x, "~")
	y = append(y, "~")
	slices.Sort(x)
	slices.Sort(y)
	return testdata{
		name: fmt.Sprintf("generated-n%d-k%d", n, k),
		x:    []byte(strings.Join(x, "\n") + "\n"),
		y:    []byte(strings.Join(y, "\n") + "\n"),
	}
}

func benchmarkInputs(b *testing.B) []testdata {
	tds := loadTestdata(b)
	for _, n := range []int{1_000, 10_000} {
		for _, k := range []int{10, 1000} {
			tds = append(tds, generate(n, k))
		}
	}
	return tds
}

func BenchmarkDiffs(b *testing.B) {
	for _, impl := range Impls {
		b.Run("impl="+impl.Name, func(b *testing.B) {
			for _, td := range benchmarkInputs(b) {
				b.Run("name="+td.name, func(b *testing.B) {
					for b.Loop() {
						_ = impl.Diff(td.x, td.y)
					}
					b.StopTimer()

					out := impl.Diff(td.x, td.y)
					edits := 0
					for _, line := range bytes.Split(out, []byte("\n")) {
						if bytes.HasPrefix(line, []byte{'+'}) || bytes.HasPrefix(line, []byte{'-'}) {
							edits++
						}
					}
					b.ReportMetric(float64(edits), "edits")
				})
			}
		})
	}
}

// On sorted inputs with a common last line, sorteddiff agrees with an optimal line diff on the
// number of changes.
func TestSameChanges(t *testing.T) {
	td := generate(500, 10)
	count := func(out []byte) int {
		n := 0
		for _, line := range bytes.Split(out, []byte("\n")) {
			if bytes.HasPrefix(line, []byte{'+'}) || bytes.HasPrefix(line, []byte{'-'}) {
				n++
			}
		}
		return n
	}
	want := count(sorted(td.x, td.y, sorteddiff.Awaited))
	for _, impl := range Impls {
		switch impl.Name {
		case "sorteddiff-fire-and-forget", "mb0":
		default:
			// Unified formats with headers or heuristics, not comparable line by line.
			continue
		}
		if got := count(impl.Diff(td.x, td.y)); got != want {
			t.Errorf("%s reports %d changes, sorteddiff reports %d", impl.Name, got, want)
		}
	}
}
