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

package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"znkr.io/sorteddiff"
	"znkr.io/sorteddiff/render"
	"znkr.io/sorteddiff/source"
)

const stdin = "-"

type flags struct {
	skipHeader bool
	encoding   string
	color      string
	trace      bool
	verbose    bool
	exitCode   bool
}

func run(cmd *cobra.Command, f flags, name1, name2 string) error {
	enc, err := source.ParseEncoding(f.encoding)
	if err != nil {
		return err
	}
	if name1 == stdin && name2 == stdin {
		return fmt.Errorf("only one file can be read from stdin")
	}

	opts := []sorteddiff.Option{sorteddiff.WithEncoding(enc)}
	if f.skipHeader {
		opts = append(opts, sorteddiff.SkipHeader())
	}
	var logger *log.Logger
	if f.verbose {
		logger = log.New(cmd.ErrOrStderr(), "", log.Lmicroseconds)
		opts = append(opts, sorteddiff.Logf(logger.Printf))
	}
	d, err := sorteddiff.New(opts...)
	if err != nil {
		return err
	}

	var ropts []render.Option
	colors, err := useColors(f.color, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if colors {
		ropts = append(ropts, render.Colors())
	}
	if f.trace {
		ropts = append(ropts, render.Compared())
	}
	out := bufio.NewWriter(cmd.OutOrStdout())
	w := render.NewWriter(out, ropts...)
	w.Attach(d)

	inputs, err := openInputs(cmd, enc, name1, name2)
	if err != nil {
		return err
	}
	err = d.DiffSources(cmd.Context(), inputs[0], inputs[1])
	if logger != nil {
		for _, in := range inputs {
			logger.Printf("%s: read %d lines", in.name, in.Lines())
			if in.MissingNewline() {
				logger.Printf("%s: no newline at end of file", in.name)
			}
		}
	}
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		return err
	}
	if f.exitCode && w.Changes() > 0 {
		return errDiffer
	}
	return nil
}

// useColors reports if the output should be colored. With "auto", the output is colored if it's
// written to a terminal.
func useColors(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid --color value %q, want auto, always or never", mode)
	}
}

// input is a line source that keeps track of what it read.
type input struct {
	name string
	reader
}

type reader interface {
	source.Source
	Lines() int
	MissingNewline() bool
}

// openInputs opens both inputs. "-" reads from stdin.
func openInputs(cmd *cobra.Command, enc source.Encoding, name1, name2 string) ([2]input, error) {
	var inputs [2]input
	for i, name := range []string{name1, name2} {
		var r reader
		var err error
		if name == stdin {
			r, err = source.NewReader(cmd.InOrStdin(), enc)
		} else {
			r, err = source.Open(name, enc)
		}
		if err != nil {
			if c, ok := inputs[0].reader.(io.Closer); ok {
				c.Close()
			}
			return inputs, err
		}
		inputs[i] = input{name: name, reader: r}
	}
	return inputs, nil
}
