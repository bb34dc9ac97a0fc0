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

// Package catalog 載入並持有難度分級目錄（Single Source of Truth）。
//
// 目錄不綁定任何「檔案路徑」概念：設定來源一律以 fs.FS 注入——
// 可以用 go:embed 把 configs 編進 binary，也可以用 os.DirFS 讀本機目錄。
package catalog

import (
	"io/fs"
	"sort"

	"github.com/zintix-labs/sudoduel/errs"
	"github.com/zintix-labs/sudoduel/spec"
	"gopkg.in/yaml.v3"
)

var ErrDupBand = errs.NewFatal("duplicate band name")

// bandFile 是 YAML 檔的頂層形狀。
type bandFile struct {
	Default string             `yaml:"default"`
	Bands   []spec.BandSetting `yaml:"bands"`
}

// Catalog 是載入完成、已驗證的難度目錄。載入後唯讀。
type Catalog struct {
	byName map[spec.Band]*spec.BandSetting
	names  []spec.Band // 穩定排序，供列舉
	def    spec.Band
}

// Load 從 fsys 讀取 name 指定的 YAML 檔並建立目錄。
// 每個 band 會經過 BandSetting.Init() 驗證；重複名稱直接失敗。
func Load(fsys fs.FS, name string) (*Catalog, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errs.Wrap(err, "read band config failed")
	}
	var file bandFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errs.Wrap(err, "parse band config failed")
	}
	if len(file.Bands) == 0 {
		return nil, errs.NewFatal("band config has no bands")
	}

	c := &Catalog{
		byName: make(map[spec.Band]*spec.BandSetting, len(file.Bands)),
		names:  make([]spec.Band, 0, len(file.Bands)),
	}
	for i := range file.Bands {
		bs := &file.Bands[i]
		if err := bs.Init(); err != nil {
			return nil, err
		}
		key := bs.Band()
		if _, ok := c.byName[key]; ok {
			return nil, ErrDupBand
		}
		c.byName[key] = bs
		c.names = append(c.names, key)
	}
	sort.Slice(c.names, func(i, j int) bool { return c.names[i] < c.names[j] })

	c.def = spec.Band(file.Default)
	if _, ok := c.byName[c.def]; !ok {
		return nil, errs.Fatalf("default band %q not in catalog", file.Default)
	}
	return c, nil
}

// Lookup 回傳指名的 band；不存在時 ok 為 false。
func (c *Catalog) Lookup(name string) (*spec.BandSetting, bool) {
	bs, ok := c.byName[spec.Band(name)]
	return bs, ok
}

// Resolve 回傳指名的 band，不認得的名稱回落到預設 band（不視為錯誤）。
func (c *Catalog) Resolve(name string) *spec.BandSetting {
	if bs, ok := c.byName[spec.Band(name)]; ok {
		return bs
	}
	return c.byName[c.def]
}

// Default 回傳預設 band 名稱。
func (c *Catalog) Default() spec.Band {
	return c.def
}

// Bands 以穩定順序回傳所有 band 設定（副本，防呼叫端改寫目錄）。
func (c *Catalog) Bands() []spec.BandSetting {
	out := make([]spec.BandSetting, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, *c.byName[n])
	}
	return out
}
