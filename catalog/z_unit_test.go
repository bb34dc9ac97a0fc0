// Copyright 2025 Zintix Labs
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

package catalog

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/zintix-labs/sudoduel/configs"
)

func TestLoadEmbeddedBands(t *testing.T) {
	c, err := Load(configs.FS, configs.BandsFile)
	if err != nil {
		t.Fatalf("load embedded config: %v", err)
	}
	for _, name := range []string{"easy", "medium", "hard", "expert", "evil"} {
		if _, ok := c.Lookup(name); !ok {
			t.Fatalf("band %q missing", name)
		}
	}
	if c.Default() != "medium" {
		t.Fatalf("default band = %q", c.Default())
	}
	if n := len(c.Bands()); n != 5 {
		t.Fatalf("bands = %d", n)
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	c, err := Load(configs.FS, configs.BandsFile)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	bs := c.Resolve("nightmare")
	if bs == nil || bs.Band() != c.Default() {
		t.Fatalf("unknown band did not fall back to default")
	}
	if got := c.Resolve("evil"); got == nil || got.Band() != "evil" {
		t.Fatalf("known band resolved wrong")
	}
}

func TestLoadRejectsDuplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"bands.yaml": &fstest.MapFile{Data: []byte(`
default: easy
bands:
  - {name: easy, min_clues: 38, max_clues: 45, pace_base_ms: 7000, pace_var_ms: 2500, mistake_prob: 0.16}
  - {name: EASY, min_clues: 30, max_clues: 40, pace_base_ms: 5000, pace_var_ms: 1000, mistake_prob: 0.1}
`)},
	}
	if _, err := Load(fsys, "bands.yaml"); !errors.Is(err, ErrDupBand) {
		t.Fatalf("duplicate band accepted: %v", err)
	}
}

func TestLoadRejectsMissingDefault(t *testing.T) {
	fsys := fstest.MapFS{
		"bands.yaml": &fstest.MapFile{Data: []byte(`
default: nope
bands:
  - {name: easy, min_clues: 38, max_clues: 45, pace_base_ms: 7000, pace_var_ms: 2500, mistake_prob: 0.16}
`)},
	}
	if _, err := Load(fsys, "bands.yaml"); err == nil {
		t.Fatalf("missing default accepted")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(fstest.MapFS{}, "bands.yaml"); err == nil {
		t.Fatalf("missing file accepted")
	}
}
