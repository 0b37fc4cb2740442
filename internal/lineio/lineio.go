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

// Package lineio splits a byte stream into lines without holding more than one line in memory.
package lineio

import (
	"bufio"
	"io"
)

// Reader reads lines from an underlying reader.
//
// Lines are returned without their terminator, both "\n" and "\r\n" are recognized. A last line
// that isn't terminated is still returned, MissingNewline reports if that happened. There is no
// limit on the length of a line.
type Reader struct {
	br             *bufio.Reader
	n              int
	missingNewline bool
	err            error
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// ReadLine returns the next line. At the end of input, it returns io.EOF. Any other error is
// sticky, all subsequent calls return it again.
func (r *Reader) ReadLine() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	var long []byte // only used for lines that exceed the buffer size
	for {
		b, err := r.br.ReadSlice('\n')
		switch err {
		case nil:
			if long != nil {
				b = append(long, b...)
			}
			r.n++
			return string(trimNewline(b)), nil
		case bufio.ErrBufferFull:
			long = append(long, b...)
		case io.EOF:
			if long != nil {
				b = append(long, b...)
			}
			r.err = io.EOF
			if len(b) == 0 {
				return "", io.EOF
			}
			r.n++
			r.missingNewline = true
			return string(b), nil
		default:
			r.err = err
			return "", err
		}
	}
}

// Lines returns the number of lines read so far.
func (r *Reader) Lines() int { return r.n }

// MissingNewline reports if the last line returned was not terminated by a newline character.
func (r *Reader) MissingNewline() bool { return r.missingNewline }

func trimNewline(b []byte) []byte {
	b = b[:len(b)-1] // drop '\n'
	if len(b) > 0 && b[len(b)-1] == '\r' {
		b = b[:len(b)-1]
	}
	return b
}
