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

package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/sorteddiff"
	"znkr.io/sorteddiff/render/color"
	"znkr.io/sorteddiff/source"
)

func TestWriter(t *testing.T) {
	x := []string{"a", "b", "d", "~"}
	y := []string{"b", "c", "d", "~"}

	tests := []struct {
		name        string
		opts        []Option
		want        string
		wantChanges int
	}{
		{
			name:        "plain",
			want:        "-a\n+c\n",
			wantChanges: 2,
		},
		{
			name:        "colors",
			opts:        []Option{Colors()},
			want:        "\033[31m-a\033[0m\n\033[32m+c\033[0m\n",
			wantChanges: 2,
		},
		{
			name:        "custom-colors",
			opts:        []Option{Colors(color.Removed(1, 31), color.Added())},
			want:        "\033[1;31m-a\033[0m\n+c\n",
			wantChanges: 2,
		},
		{
			name:        "compared",
			opts:        []Option{Compared()},
			want:        "=a|b\n-a\n=b|b\n=d|c\n+c\n=d|d\n=~|~\n=|\n",
			wantChanges: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := sorteddiff.New()
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			var sb strings.Builder
			w := NewWriter(&sb, tt.opts...)
			w.Attach(d)
			if err := d.DiffSources(t.Context(), source.Lines(x...), source.Lines(y...)); err != nil {
				t.Fatalf("DiffSources(...) failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, sb.String()); diff != "" {
				t.Errorf("output is different [-want,+got]:\n%s", diff)
			}
			if got := w.Changes(); got != tt.wantChanges {
				t.Errorf("Changes() = %d, want %d", got, tt.wantChanges)
			}
		})
	}
}

type errWriter struct{ err error }

func (w errWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriterError(t *testing.T) {
	errWrite := errors.New("write failed")
	d, err := sorteddiff.New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	NewWriter(errWriter{errWrite}).Attach(d)
	err = d.DiffSources(t.Context(), source.Lines("a", "~"), source.Lines("~"))
	if !errors.Is(err, errWrite) {
		t.Errorf("DiffSources(...) error = %v, want %v", err, errWrite)
	}
}
