// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package git provides a simplified git interface for reading file versions from a repository
// for evaluations.
package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

const nullID = "0000000000000000000000000000000000000000"

// Repo is a git repository. All methods are safe for concurrent use.
type Repo struct {
	dir string

	mu   sync.Mutex // guards the cat-file process
	cmd  *exec.Cmd
	in   io.WriteCloser
	out  *bufio.Reader
	werr bytes.Buffer
}

// Open opens the repository in dir. It starts a long running git process that's used to read
// blobs, Close must be called to stop it.
func Open(ctx context.Context, dir string) (*Repo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	r := &Repo{dir: dir}
	r.cmd = exec.CommandContext(ctx, "git", "-C", dir, "cat-file", "--batch")
	in, err := r.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("connecting stdin: %v", err)
	}
	out, err := r.cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("connecting stdout: %v", err)
	}
	r.cmd.Stderr = &r.werr
	if err := r.cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting git cat-file: %v", err)
	}
	r.in, r.out = in, bufio.NewReader(out)
	return r, nil
}

// Close stops the blob reader.
func (r *Repo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.in.Close()
	if err := r.cmd.Wait(); err != nil {
		return fmt.Errorf("git cat-file: %v\n%s", err, r.werr.String())
	}
	return nil
}

// RevList returns the ids of all non-merge commits reachable from HEAD.
func (r *Repo) RevList(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "rev-list", "--no-merges", "HEAD")
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// Change describes a file changed by a commit. OldID is empty for added files, NewID is empty
// for deleted files.
type Change struct {
	Name  string
	OldID string
	NewID string
}

// DiffTree returns all files changed by commit.
func (r *Repo) DiffTree(ctx context.Context, commit string) ([]Change, error) {
	out, err := r.git(ctx, "diff-tree", "-r", commit)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(out, "\n")[1:]
	ret := make([]Change, 0, len(lines))
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		if line[0] != ':' {
			return nil, fmt.Errorf("diff-tree file not starting with ':': %q", line)
		}
		fields := strings.Fields(line[1:])
		if len(fields) < 6 {
			return nil, fmt.Errorf("diff-tree line with %d fields, expected at least 6: %q", len(fields), line)
		}
		c := Change{Name: fields[5], OldID: fields[2], NewID: fields[3]}
		if c.OldID == nullID {
			c.OldID = ""
		}
		if c.NewID == nullID {
			c.NewID = ""
		}
		ret = append(ret, c)
	}
	return ret, nil
}

// Blob returns the contents of the blob with the given id. The empty id is an empty blob.
func (r *Repo) Blob(id string) (string, error) {
	if id == "" {
		return "", nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := fmt.Fprintf(r.in, "%s\n", id); err != nil {
		return "", fmt.Errorf("writing to git cat-file: %v", err)
	}
	header, err := r.out.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading from git cat-file: %v", err)
	}
	fields := strings.Fields(header)
	if len(fields) == 2 && fields[1] == "missing" {
		return "", fmt.Errorf("blob %s is missing", id)
	}
	if len(fields) != 3 {
		return "", fmt.Errorf("found %v fields, expected 3: %q", len(fields), header)
	}
	if fields[0] != id {
		return "", fmt.Errorf("ids don't match %s vs %s", fields[0], id)
	}
	n, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return "", fmt.Errorf("parsing blob size: %v", err)
	}
	// Contents are followed by a newline.
	buf := make([]byte, n+1)
	if _, err := io.ReadFull(r.out, buf); err != nil {
		return "", fmt.Errorf("reading blob %s: %v", id, err)
	}
	return string(buf[:n]), nil
}

func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	var wout, werr strings.Builder
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.dir}, args...)...)
	cmd.Stdout = &wout
	cmd.Stderr = &werr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running git command %v: %v\n%s", cmd, err, werr.String())
	}
	return wout.String(), nil
}
