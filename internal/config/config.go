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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// sorteddiff.Option.
package config

import (
	"fmt"
	"strings"

	"znkr.io/sorteddiff/source"
)

// DeliveryMode describes how events are handed to handlers.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=DeliveryMode -trimprefix=Delivery
type DeliveryMode int

const (
	// Handlers run inline, the comparison loop waits for every handler before advancing.
	DeliveryAwaited DeliveryMode = iota

	// Handlers run on a separate goroutine in event order, the comparison loop doesn't wait.
	DeliveryFireAndForget
)

// Config collects all configurable parameters for a comparison run.
type Config struct {
	// If set, the first line of both inputs is discarded before comparing.
	SkipHeader bool

	// Encoding used to decode byte oriented sources.
	Encoding source.Encoding

	// Compare imposes the order on lines that both inputs are sorted by.
	Compare func(a, b string) int

	// Delivery mode for events.
	Delivery DeliveryMode

	// Logf receives a trace of every comparison step. Never nil after FromOptions.
	Logf func(format string, args ...any)
}

// Default is the default configuration.
var Default = Config{
	SkipHeader: false,
	Encoding:   source.UTF8,
	Compare:    strings.Compare,
	Delivery:   DeliveryAwaited,
	Logf:       Discard,
}

// Discard is a Logf that drops everything.
func Discard(string, ...any) {}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not allowed in a given context.
type Flag int

const (
	SkipHeader Flag = 1 << iota
	Encoding
	Compare
	Delivery
	Logf
)

// All is the set of all flags.
const All = SkipHeader | Encoding | Compare | Delivery | Logf

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
//
// Options outside of allowed are a programming error and panic. Invalid values are reported as
// errors, they may originate from user input.
func FromOptions(opts []Option, allowed Flag) (Config, error) {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	if err := cfg.Encoding.Validate(); err != nil {
		return Config{}, err
	}
	switch cfg.Delivery {
	case DeliveryAwaited, DeliveryFireAndForget:
	default:
		return Config{}, fmt.Errorf("invalid delivery mode %d", int(cfg.Delivery))
	}
	if cfg.Compare == nil {
		cfg.Compare = Default.Compare
	}
	if cfg.Logf == nil {
		cfg.Logf = Discard
	}
	return cfg, nil
}

func printFlag(flag Flag) string {
	switch flag {
	case SkipHeader:
		return "sorteddiff.SkipHeader"
	case Encoding:
		return "sorteddiff.WithEncoding"
	case Compare:
		return "sorteddiff.CompareFunc"
	case Delivery:
		return "sorteddiff.WithDelivery"
	case Logf:
		return "sorteddiff.Logf"
	default:
		panic("never reached")
	}
}

// ColorConfig holds the ANSI escape sequences used to color rendered events. An empty sequence
// leaves the line uncolored.
type ColorConfig struct {
	Added    string
	Removed  string
	Compared string
}

// DefaultColors colors removed lines red, added lines green, and comparisons in a faint gray.
var DefaultColors = ColorConfig{
	Added:    "\033[32m",
	Removed:  "\033[31m",
	Compared: "\033[90m",
}

// ResetColor resets all SGR parameters.
const ResetColor = "\033[0m"
