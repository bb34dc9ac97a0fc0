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

package corefmt

import "testing"

func TestShareCodeRoundTrip(t *testing.T) {
	code := ShareCode("Medium", 12345)
	if code != "medium:12345" {
		t.Fatalf("code = %q", code)
	}
	band, seed, err := ParseShareCode(code)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if band != "medium" || seed != 12345 {
		t.Fatalf("round trip: %q %d", band, seed)
	}
}

func TestParseShareCodeRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "medium", ":5", "medium:", "medium:abc", "medium:-3", "medium:99999999999"} {
		if _, _, err := ParseShareCode(bad); err == nil {
			t.Fatalf("accepted %q", bad)
		}
	}
}

func TestPadCellDisplayWidth(t *testing.T) {
	if got := PadCell("ab", 4); got != "ab  " {
		t.Fatalf("PadCell = %q", got)
	}
	// 全形字寬度 2
	if got := PadCell("難度", 6); got != "難度  " {
		t.Fatalf("PadCell cjk = %q", got)
	}
	if got := PadLeft("7", 3); got != "  7" {
		t.Fatalf("PadLeft = %q", got)
	}
	if got := PadCell("abcdef", 3); got != "abcdef" {
		t.Fatalf("overlong cell must pass through, got %q", got)
	}
}
