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

// Package color provides configuration for coloring rendered events using ANSI escape sequences.
//
// Specifying colors uses [Select Graphic Rendition parameters]. For example the code below
// presents removed lines in bold red:
//
//	Removed(1, 31)
//
// This is equivalent to the following raw ANSI sequence: \033[1;31m.
//
// It's the responsibility of the caller to ensure that the parameters are correct and supported
// by the underlying terminal.
//
// [Select Graphic Rendition parameters]: https://en.wikipedia.org/wiki/ANSI_escape_code#SGR
package color

import (
	"strconv"
	"strings"

	"znkr.io/sorteddiff/internal/config"
)

// An Option makes it possible to configure custom colors in [render.Colors].
//
// [render.Colors]: https://pkg.go.dev/znkr.io/sorteddiff/render#Colors
type Option func(*config.ColorConfig)

// Added colors lines only present in the second input.
func Added(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Added = code
	}
}

// Removed colors lines only present in the first input.
func Removed(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Removed = code
	}
}

// Compared colors comparison steps.
func Compared(params ...int) Option {
	code := format(params)
	return func(cc *config.ColorConfig) {
		cc.Compared = code
	}
}

func format(params []int) string {
	if len(params) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\033[")
	for i, v := range params {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte('m')
	return sb.String()
}
