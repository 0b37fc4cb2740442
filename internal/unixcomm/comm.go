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

// Package unixcomm provides a simple wrapper around the unix comm tool.
//
// This package is only for testing.
package unixcomm

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Comm runs comm on x and y and returns the lines only present in x and the lines only present
// in y. Both inputs must be sorted bytewise.
func Comm(x, y string) (only1, only2 []string, err error) {
	dir, err := os.MkdirTemp("", "comm-*")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temporary directory: %v", err)
	}
	defer os.RemoveAll(dir)

	xfile := filepath.Join(dir, "x")
	yfile := filepath.Join(dir, "y")

	if err := os.WriteFile(xfile, []byte(x), 0o644); err != nil {
		return nil, nil, fmt.Errorf("failed to write x file: %v", err)
	}
	if err := os.WriteFile(yfile, []byte(y), 0o644); err != nil {
		return nil, nil, fmt.Errorf("failed to write y file: %v", err)
	}

	if only1, err = comm("-23", xfile, yfile); err != nil {
		return nil, nil, err
	}
	if only2, err = comm("-13", xfile, yfile); err != nil {
		return nil, nil, err
	}
	return only1, only2, nil
}

func comm(flag, xfile, yfile string) ([]string, error) {
	cmd := exec.Command("comm", flag, xfile, yfile)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to run comm command: %s: %v", strings.Join(cmd.Args, " "), err)
	}
	var lines []string
	for line := range strings.Lines(string(out)) {
		lines = append(lines, strings.TrimSuffix(line, "\n"))
	}
	return lines, nil
}
