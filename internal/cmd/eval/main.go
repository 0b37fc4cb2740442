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

// eval provides a way to validate the comparison against an optimal diff and, optionally, the
// unix comm tool.
//
// Inputs are either file changes from a git repository (-repo) or random inputs (-random). The
// lines of both versions are sorted before they are compared. Every input is evaluated in two
// variants:
//
//   - "sorted": the sorted lines as they are.
//   - "trailer": the sorted lines with a common last line appended.
//
// The added and removed lines must match the optimal diff for the "trailer" variant, a mismatch
// is reported. Mismatches in the "sorted" variant are only counted, a stream that ends in
// different lines can lose lines from the longer input.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"znkr.io/diff"
	"znkr.io/sorteddiff"
	"znkr.io/sorteddiff/internal/cmd/eval/internal/git"
	"znkr.io/sorteddiff/internal/unixcomm"
	"znkr.io/sorteddiff/source"
)

type config struct {
	repo     string
	sample   int
	random   int
	parallel int
	stats    string
	validate bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.repo, "repo", "", "repository to use for evaluation")
	flag.IntVar(&cfg.sample, "sample", 0, "if >0, sample commits to the value of the flag")
	flag.IntVar(&cfg.random, "random", 10000, "number of random inputs to evaluate if no repository is used")
	flag.IntVar(&cfg.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	flag.StringVar(&cfg.stats, "stats", "", "file to store stats in")
	flag.BoolVar(&cfg.validate, "validate", false, "if validation with the unix comm tool should be performed")
	flag.Parse()

	if len(flag.CommandLine.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected command line arguments: %v\n", flag.CommandLine.Args())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var bars = []string{
	" ",
	"▏",
	"▎",
	"▍",
	"▌",
	"▋",
	"▊",
	"▉",
	"█",
}

// trailer sorts after every valid UTF-8 line.
const trailer = "\xff\xff\xff\xff"

type note struct {
	prefix string
	msg    string
}

type input struct {
	id       string
	file     string
	old, new string
}

type result struct {
	id       string
	file     string
	variant  string
	N, M     int
	D        int // changed lines in the optimal diff
	E        int // added and removed events
	match    bool
	duration time.Duration
}

func run(ctx context.Context, cfg *config) error {
	start := time.Now()
	notes := make(chan note)
	done := make(chan struct{})
	var total, produced, processed, mismatches atomic.Int64

	var stats *os.File
	if cfg.stats != "" {
		var err error
		stats, err = os.Create(cfg.stats)
		if err != nil {
			return fmt.Errorf("creating stats file: %v", err)
		}
		defer stats.Close()
	}

	d, err := sorteddiff.New()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	inputs := make(chan input)

	// Produce inputs.
	if cfg.repo != "" {
		repo, err := git.Open(ctx, cfg.repo)
		if err != nil {
			return fmt.Errorf("opening git repository: %v", err)
		}
		commitIDs, err := repo.RevList(ctx)
		if err != nil {
			repo.Close()
			return fmt.Errorf("reading rev-list: %v", err)
		}
		commitIDs = sample(commitIDs, cfg.sample)
		total.Store(int64(len(commitIDs)))
		g.Go(func() error {
			defer repo.Close()
			defer close(inputs)
			for _, commitID := range commitIDs {
				changes, err := repo.DiffTree(ctx, commitID)
				if err != nil {
					notes <- note{prefix: commitID, msg: fmt.Sprintf("error processing commit: %v", err)}
					continue
				}
				for _, change := range changes {
					old, err := repo.Blob(change.OldID)
					if err != nil {
						return err
					}
					new, err := repo.Blob(change.NewID)
					if err != nil {
						return err
					}
					select {
					case inputs <- input{id: commitID, file: change.Name, old: old, new: new}:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
				produced.Add(1)
			}
			return nil
		})
	} else {
		total.Store(int64(cfg.random))
		g.Go(func() error {
			defer close(inputs)
			rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
			for i := range cfg.random {
				in := input{id: fmt.Sprint(i), file: "random", old: randomText(rng), new: randomText(rng)}
				select {
				case inputs <- in:
				case <-ctx.Done():
					return ctx.Err()
				}
				produced.Add(1)
			}
			return nil
		})
	}

	// Process inputs.
	var results chan result
	if stats != nil {
		results = make(chan result)
	}
	for range cfg.parallel {
		g.Go(func() error {
			for in := range inputs {
				xs, ys := sortedLines(in.old), sortedLines(in.new)
				variants := map[string][2][]string{
					"sorted": {xs, ys},
				}
				if (len(xs) == 0 || xs[len(xs)-1] < trailer) && (len(ys) == 0 || ys[len(ys)-1] < trailer) {
					variants["trailer"] = [2][]string{append(slices.Clip(xs), trailer), append(slices.Clip(ys), trailer)}
				}
				for variant, xy := range variants {
					x, y := xy[0], xy[1]
					prefix := in.id + ":" + in.file + ":" + variant
					start := time.Now()
					removed, added, err := events(ctx, d, x, y)
					duration := time.Since(start)
					if err != nil {
						return err
					}
					wantRemoved, wantAdded := optimal(x, y)
					match := slices.Equal(removed, wantRemoved) && slices.Equal(added, wantAdded)
					if !match && variant == "trailer" {
						mismatches.Add(1)
						notes <- note{
							prefix: prefix,
							msg:    fmt.Sprintf("different from optimal diff: removed %q, want %q; added %q, want %q", removed, wantRemoved, added, wantAdded),
						}
					}
					if cfg.validate {
						only1, only2, err := unixcomm.Comm(join(x), join(y))
						if err != nil {
							notes <- note{prefix: prefix, msg: fmt.Sprintf("failed to run comm: %v", err)}
						} else if variant == "trailer" && (!slices.Equal(only1, removed) || !slices.Equal(only2, added)) {
							notes <- note{
								prefix: prefix,
								msg:    fmt.Sprintf("different from comm: removed %q, want %q; added %q, want %q", removed, only1, added, only2),
							}
						}
					}
					if results != nil {
						results <- result{
							id:       in.id,
							file:     in.file,
							variant:  variant,
							N:        len(x),
							M:        len(y),
							D:        len(wantRemoved) + len(wantAdded),
							E:        len(removed) + len(added),
							match:    match,
							duration: duration,
						}
					}
				}
				processed.Add(1)
			}
			return nil
		})
	}

	// Render progress
	var ioWG sync.WaitGroup
	render := func() {
		const width = 60
		n := max(total.Load(), 1)
		produced := produced.Load()
		processed := processed.Load()
		progress := float64(produced) / float64(n)
		whole := int(progress * width)
		remainder := math.Mod(progress*width, 1)
		last := bars[max(0, min(len(bars)-1, int(remainder*float64(len(bars)))))]
		if width-whole < 1 {
			last = ""
		}
		bar := strings.Repeat(bars[len(bars)-1], whole) + last
		var procPerSec int
		if processed > 0 {
			procPerSec = int((time.Duration(processed) * time.Second) / time.Since(start))
		}
		fmt.Printf("\r[%-*s] % 3.1f%% (%d evals/s, %d mismatches) ", width, bar, 100*progress, procPerSec, mismatches.Load())
	}
	ioWG.Add(1)
	go func() {
		defer ioWG.Done()
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case note := <-notes:
				fmt.Printf("\r%s: %s\n", note.prefix, note.msg)
				render()

			case <-ticker.C:
				render()

			case <-done:
				render()
				fmt.Printf("\n")
				return
			}
		}
	}()
	var statsErr error
	if results != nil {
		ioWG.Add(1)
		go func() {
			defer ioWG.Done()
			w := bufio.NewWriter(stats)
			w.WriteString("id,file,variant,N,M,D,E,match,duration_ns\n")
			for r := range results {
				if statsErr != nil {
					continue
				}
				_, statsErr = fmt.Fprintf(w, "%s,%s,%s,%d,%d,%d,%d,%t,%d\n", r.id, r.file, r.variant, r.N, r.M, r.D, r.E, r.match, r.duration.Nanoseconds())
			}
			if err := w.Flush(); statsErr == nil {
				statsErr = err
			}
		}()
	}

	// Shutdown
	err = g.Wait()
	close(done)
	if results != nil {
		close(results)
	}
	ioWG.Wait()

	switch {
	case err != nil:
		return err
	case statsErr != nil:
		return fmt.Errorf("writing stats: %v", statsErr)
	case mismatches.Load() > 0:
		return fmt.Errorf("found %d mismatches", mismatches.Load())
	}
	return nil
}

func sample(ids []string, n int) []string {
	if n <= 0 || n >= len(ids) {
		return ids
	}
	picked := make(map[int]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		i := rand.IntN(len(ids))
		if _, ok := picked[i]; ok {
			continue
		}
		out = append(out, ids[i])
		picked[i] = struct{}{}
	}
	return out
}

func randomText(rng *rand.Rand) string {
	const alphabet = "abcdefghij"
	var sb strings.Builder
	for range rng.IntN(50) {
		for range 1 + rng.IntN(2) {
			sb.WriteByte(alphabet[rng.IntN(len(alphabet))])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func sortedLines(s string) []string {
	var lines []string
	for line := range strings.Lines(s) {
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		lines = append(lines, line)
	}
	slices.Sort(lines)
	return lines
}

func join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// events returns the sorted removed and added lines reported for x and y.
func events(ctx context.Context, d *sorteddiff.Differ, x, y []string) (removed, added []string, err error) {
	for e, err := range d.Events(ctx, source.Lines(x...), source.Lines(y...)) {
		if err != nil {
			return nil, nil, err
		}
		switch e.Kind {
		case sorteddiff.Removed:
			removed = append(removed, e.Line)
		case sorteddiff.Added:
			added = append(added, e.Line)
		}
	}
	slices.Sort(removed)
	slices.Sort(added)
	return removed, added, nil
}

// optimal returns the sorted deleted and inserted lines of a diff of x and y. The diff is only
// guaranteed to be optimal below the size where znkr.io/diff starts to apply heuristics, use
// -validate for large inputs.
func optimal(x, y []string) (removed, added []string) {
	for _, edit := range diff.Edits(x, y) {
		switch edit.Op {
		case diff.Delete:
			removed = append(removed, edit.X)
		case diff.Insert:
			added = append(added, edit.Y)
		}
	}
	slices.Sort(removed)
	slices.Sort(added)
	return removed, added
}
