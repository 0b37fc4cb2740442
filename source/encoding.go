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

package source

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is the text encoding of a byte oriented source.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Encoding
type Encoding int

const (
	UTF8        Encoding = iota // UTF-8, a leading byte order mark is dropped
	UTF16LE                     // UTF-16 little endian unless a byte order mark says otherwise
	UTF16BE                     // UTF-16 big endian unless a byte order mark says otherwise
	Latin1                      // ISO 8859-1
	Windows1252                 // Windows code page 1252

	numEncodings
)

var encodingNames = map[string]Encoding{
	"utf8":         UTF8,
	"utf-8":        UTF8,
	"utf16le":      UTF16LE,
	"utf-16le":     UTF16LE,
	"ucs2":         UTF16LE,
	"ucs-2":        UTF16LE,
	"utf16be":      UTF16BE,
	"utf-16be":     UTF16BE,
	"latin1":       Latin1,
	"iso-8859-1":   Latin1,
	"iso8859-1":    Latin1,
	"binary":       Latin1,
	"windows-1252": Windows1252,
	"cp1252":       Windows1252,
}

// ParseEncoding returns the encoding with the given name. Names are matched case insensitively
// and include common aliases like "utf8", "latin1" or "cp1252".
func ParseEncoding(name string) (Encoding, error) {
	enc, ok := encodingNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown encoding %q", name)
	}
	return enc, nil
}

// Validate returns an error if e is not one of the defined encodings.
func (e Encoding) Validate() error {
	if e < 0 || e >= numEncodings {
		return fmt.Errorf("invalid encoding %v", e)
	}
	return nil
}

func (e Encoding) encoding() encoding.Encoding {
	switch e {
	case UTF8:
		// Invalid sequences are replaced by U+FFFD.
		return unicode.UTF8BOM
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case Latin1:
		return charmap.ISO8859_1
	case Windows1252:
		return charmap.Windows1252
	default:
		panic("never reached")
	}
}
