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

// Package source provides line sources for sorteddiff.
//
// A [Source] produces decoded lines one at a time. Sources over files and byte streams decode
// their input with an [Encoding] and strip line terminators. In-memory sources over slices,
// iterators and channels are useful for tests and for feeding data that is produced by another
// goroutine.
package source

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"sync"

	"golang.org/x/text/transform"
	"znkr.io/sorteddiff/internal/lineio"
)

// Source produces lines.
//
// Next returns the next line without its line terminator, or io.EOF once the input is exhausted.
// Next may block until a line is available. Sources that wait for other goroutines must return
// when ctx is done.
//
// Sources that hold resources also implement io.Closer. Consumers close them once Next returned
// io.EOF or when they stop reading early.
type Source interface {
	Next(ctx context.Context) (string, error)
}

// Reader is a Source reading from an io.Reader.
type Reader struct {
	lr *lineio.Reader
}

// NewReader returns a source that decodes r with enc and splits it into lines. The caller owns r,
// the returned source never closes it.
func NewReader(r io.Reader, enc Encoding) (*Reader, error) {
	if err := enc.Validate(); err != nil {
		return nil, err
	}
	return &Reader{lr: lineio.NewReader(transform.NewReader(r, enc.encoding().NewDecoder()))}, nil
}

// Next implements Source.
func (r *Reader) Next(context.Context) (string, error) {
	return r.lr.ReadLine()
}

// Lines returns the number of lines read so far.
func (r *Reader) Lines() int { return r.lr.Lines() }

// MissingNewline reports if the last line read was not terminated by a newline.
func (r *Reader) MissingNewline() bool { return r.lr.MissingNewline() }

// File is a Source reading from a file it opened itself. The file is closed when the end of the
// input is reached or Close is called.
type File struct {
	*Reader
	name string
	f    *os.File
	dec  io.Closer // decompressor, if any
	once sync.Once
	cerr error
}

// Open opens the named file for reading. Errors opening the file are returned immediately and
// wrap the *fs.PathError from the os package.
//
// Files ending in ".gz" or ".zst" are decompressed before they are decoded.
func Open(name string, enc Encoding) (*File, error) {
	if err := enc.Validate(); err != nil {
		return nil, err
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	in, dec, err := decompress(name, f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening source %s: %w", name, err)
	}
	r, err := NewReader(in, enc)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &File{Reader: r, name: name, f: f, dec: dec}, nil
}

// Name returns the name of the file as passed to Open.
func (f *File) Name() string { return f.name }

// Next implements Source.
func (f *File) Next(ctx context.Context) (string, error) {
	line, err := f.Reader.Next(ctx)
	if err == io.EOF {
		if cerr := f.Close(); cerr != nil {
			return "", cerr
		}
		return "", io.EOF
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.name, err)
	}
	return line, nil
}

// Close closes the underlying file. It's safe to call Close multiple times.
func (f *File) Close() error {
	f.once.Do(func() {
		if f.dec != nil {
			f.cerr = f.dec.Close()
		}
		if err := f.f.Close(); f.cerr == nil {
			f.cerr = err
		}
	})
	return f.cerr
}

// Lines returns a source producing the given lines.
func Lines(lines ...string) Source {
	return &slice{lines: lines}
}

type slice struct {
	lines []string
}

func (s *slice) Next(context.Context) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

// Seq returns a source producing the values of seq. The source must be closed if it's not
// read until io.EOF to release the iterator.
func Seq(seq iter.Seq[string]) *SeqSource {
	next, stop := iter.Pull(seq)
	return &SeqSource{next: next, stop: stop}
}

// SeqSource is a Source over an iterator, see [Seq].
type SeqSource struct {
	next func() (string, bool)
	stop func()
}

// Next implements Source.
func (s *SeqSource) Next(context.Context) (string, error) {
	line, ok := s.next()
	if !ok {
		return "", io.EOF
	}
	return line, nil
}

// Close stops the underlying iterator.
func (s *SeqSource) Close() error {
	s.stop()
	return nil
}

// Chan returns a source receiving lines from ch. The input is exhausted when ch is closed. Next
// suspends until a line is received or ctx is done.
func Chan(ch <-chan string) Source {
	return chanSource(ch)
}

type chanSource <-chan string

func (c chanSource) Next(ctx context.Context) (string, error) {
	select {
	case line, ok := <-c:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
