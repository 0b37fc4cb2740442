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

// sorteddiff compares two sorted files line by line and prints lines only present in the first
// file prefixed with "-" and lines only present in the second file prefixed with "+".
//
// Usage:
//
//	sorteddiff [flags] FILE1 FILE2
//
// Either file can be "-" to read from stdin. Exit status is 0 if the comparison succeeded, 2 if
// there was an error, and with --exit-code 1 if the inputs differ.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, errDiffer):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "sorteddiff: %v\n", err)
		os.Exit(2)
	}
}

// errDiffer is returned if the inputs differ and the exit code was requested.
var errDiffer = errors.New("inputs differ")

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "sorteddiff [flags] FILE1 FILE2",
		Short:         "Compare two sorted files line by line",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0], args[1])
		},
	}
	fs := cmd.Flags()
	fs.BoolVar(&f.skipHeader, "skip-header", false, "ignore the first line of both files")
	fs.StringVar(&f.encoding, "encoding", "utf-8", "text encoding of both files")
	fs.StringVar(&f.color, "color", "auto", "color the output: auto, always or never")
	fs.BoolVar(&f.trace, "trace", false, "print every comparison step")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log a debug trace to stderr")
	fs.BoolVar(&f.exitCode, "exit-code", false, "exit with status 1 if the files differ")
	return cmd
}
