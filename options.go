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

package sorteddiff

import (
	"znkr.io/sorteddiff/internal/config"
	"znkr.io/sorteddiff/source"
)

// Option configures the behavior of a [Differ].
type Option = config.Option

// Delivery describes how events are handed to handlers.
type Delivery = config.DeliveryMode

const (
	// Awaited runs handlers inline. The comparison loop doesn't advance until all handlers for
	// an event returned, event handling is serialized with the comparison.
	Awaited Delivery = config.DeliveryAwaited

	// FireAndForget runs handlers on a separate goroutine. Handlers still see events one at a
	// time and in order, but the comparison loop runs ahead of them. A run returns once all
	// events were handled.
	FireAndForget Delivery = config.DeliveryFireAndForget
)

// SkipHeader discards the first line of both inputs before comparing, for example to ignore the
// header of CSV files.
func SkipHeader() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.SkipHeader = true
		return config.SkipHeader
	}
}

// WithEncoding sets the encoding used to decode files and readers. The default is
// [source.UTF8]. It has no effect on sources that already produce decoded lines.
func WithEncoding(enc source.Encoding) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Encoding = enc
		return config.Encoding
	}
}

// CompareFunc sets the order both inputs are sorted by. The default is [strings.Compare], which
// orders lines by their UTF-8 bytes, the same as by code points. This is not the order of UTF-16
// code units: lines mixing characters above U+FFFF with characters in U+E000 to U+FFFF sort
// differently, so inputs sorted by UTF-16 code units need a matching comparison function.
//
// Only results of exactly -1 and +1 classify lines as removed or added. Other non-zero results
// advance the comparison without an added or removed event. This allows comparison functions to
// skip over lines without reporting them.
func CompareFunc(cmp func(a, b string) int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Compare = cmp
		return config.Compare
	}
}

// WithDelivery sets how events are handed to handlers. The default is [Awaited].
func WithDelivery(d Delivery) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Delivery = d
		return config.Delivery
	}
}

// Logf sets a function that receives a trace of every comparison step.
func Logf(logf func(format string, args ...any)) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Logf = logf
		return config.Logf
	}
}
