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

package config_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"znkr.io/sorteddiff"
	"znkr.io/sorteddiff/internal/config"
	"znkr.io/sorteddiff/source"
)

// Functions can't be compared, they are checked separately.
var ignoreFuncs = cmpopts.IgnoreFields(config.Config{}, "Compare", "Logf")

func TestFromOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []config.Option
		want config.Config
	}{
		{
			name: "default",
			opts: nil,
			want: config.Default,
		},
		{
			name: "skip-header",
			opts: []config.Option{
				sorteddiff.SkipHeader(),
			},
			want: config.Config{
				SkipHeader: true,
				Encoding:   config.Default.Encoding,
				Delivery:   config.Default.Delivery,
			},
		},
		{
			name: "encoding",
			opts: []config.Option{
				sorteddiff.WithEncoding(source.Latin1),
			},
			want: config.Config{
				Encoding: source.Latin1,
				Delivery: config.Default.Delivery,
			},
		},
		{
			name: "encoding-override",
			opts: []config.Option{
				sorteddiff.WithEncoding(source.Latin1),
				sorteddiff.SkipHeader(),
				sorteddiff.WithEncoding(source.UTF16BE),
			},
			want: config.Config{
				SkipHeader: true,
				Encoding:   source.UTF16BE,
				Delivery:   config.Default.Delivery,
			},
		},
		{
			name: "everything",
			opts: []config.Option{
				sorteddiff.SkipHeader(),
				sorteddiff.WithEncoding(source.Windows1252),
				sorteddiff.WithDelivery(sorteddiff.FireAndForget),
				sorteddiff.CompareFunc(strings.Compare),
				sorteddiff.Logf(t.Logf),
			},
			want: config.Config{
				SkipHeader: true,
				Encoding:   source.Windows1252,
				Delivery:   config.DeliveryFireAndForget,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.FromOptions(tt.opts, config.All)
			if err != nil {
				t.Fatalf("FromOptions(...) failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, ignoreFuncs); diff != "" {
				t.Errorf("FromOptions(...) result are different [-want,+got]:\n%s", diff)
			}
			if got.Compare == nil || got.Logf == nil {
				t.Errorf("FromOptions(...) left Compare or Logf unset")
			}
		})
	}
}

func TestFromOptionsNilFuncs(t *testing.T) {
	got, err := config.FromOptions([]config.Option{sorteddiff.CompareFunc(nil), sorteddiff.Logf(nil)}, config.All)
	if err != nil {
		t.Fatalf("FromOptions(...) failed: %v", err)
	}
	if got.Compare("a", "b") != -1 {
		t.Errorf("nil CompareFunc didn't fall back to the default")
	}
	got.Logf("must not panic %d", 1)
}

func TestFromOptionsInvalid(t *testing.T) {
	for _, opt := range []config.Option{
		sorteddiff.WithEncoding(source.Encoding(-1)),
		sorteddiff.WithDelivery(sorteddiff.Delivery(7)),
	} {
		if _, err := config.FromOptions([]config.Option{opt}, config.All); err == nil {
			t.Errorf("FromOptions(...) succeeded, want error")
		}
	}
}

func TestFromOptionsNotAllowed(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("FromOptions(...) didn't panic")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "sorteddiff.WithDelivery") {
			t.Errorf("FromOptions(...) panicked with %q, want a message naming the option", r)
		}
	}()
	config.FromOptions([]config.Option{sorteddiff.WithDelivery(sorteddiff.FireAndForget)}, config.All&^config.Delivery)
}
