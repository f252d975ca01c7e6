/*
MIT License

# Copyright (c) 2025 OcomSoft

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/
package filter

import "testing"

func TestExcluded(t *testing.T) {
	f := New([]string{"tmp_*", "!tmp_keep", "legacy_report"})

	tests := []struct {
		name     string
		excluded bool
	}{
		{"tmp_cleanup", true},
		{"tmp_keep", false},
		{"legacy_report", true},
		{"calc_total", false},
	}

	for _, tt := range tests {
		if got := f.Excluded(tt.name); got != tt.excluded {
			t.Errorf("Excluded(%q) = %v, want %v", tt.name, got, tt.excluded)
		}
	}
}

func TestNoPatterns(t *testing.T) {
	if New(nil).Excluded("anything") {
		t.Error("empty filter should not exclude")
	}
	var f *Filter
	if f.Excluded("anything") {
		t.Error("nil filter should not exclude")
	}
}
