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

package render_test

import (
	"context"
	"log"
	"os"

	"znkr.io/sorteddiff"
	"znkr.io/sorteddiff/render"
	"znkr.io/sorteddiff/source"
)

func ExampleWriter() {
	d, err := sorteddiff.New()
	if err != nil {
		log.Fatal(err)
	}
	render.NewWriter(os.Stdout).Attach(d)

	err = d.DiffSources(context.Background(), source.Lines("a", "b", "d", "~"), source.Lines("b", "c", "d", "~"))
	if err != nil {
		log.Fatal(err)
	}
	// Output:
	// -a
	// +c
}
