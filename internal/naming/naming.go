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
package naming

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
)

const (
	// DatetimePlaceholder is replaced with the migration timestamp in filename patterns
	DatetimePlaceholder = "[datetime]"
	// NamePlaceholder is replaced with the object name in filename patterns
	NamePlaceholder = "[name]"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

// Helper derives migration class names and file paths.
// A base is either a plain word ("procedures") or a pattern such as
// "[datetime]_create_[name]_proc.sql".
type Helper struct {
	dir string
	ext string
}

// New creates a helper writing into dir with the given default file extension
func New(dir, ext string) *Helper {
	return &Helper{
		dir: dir,
		ext: strings.TrimPrefix(ext, "."),
	}
}

// MakeClassName derives the migration identifier from base and object name.
// Distinct sanitized names always give distinct identifiers for one base.
func (h *Helper) MakeClassName(base, name string) string {
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name = SanitizeName(name)

	if !isPattern(base) {
		return camel(base) + classToken(name)
	}

	base = strings.ReplaceAll(base, DatetimePlaceholder, "")
	prefix, suffix, found := strings.Cut(base, NamePlaceholder)
	if !found {
		return camel(base)
	}
	suffix = strings.ReplaceAll(suffix, NamePlaceholder, name)

	return camel(prefix) + classToken(name) + camel(suffix)
}

// classToken camel-cases name when the result converts back to it. Other
// names keep their exact spelling behind an underscore, which camel-cased
// tokens never contain.
func classToken(name string) string {
	token := strcase.ToCamel(name)
	if strcase.ToSnake(token) == name {
		return token
	}
	return "_" + name
}

func camel(s string) string {
	return strcase.ToCamel(strings.Trim(s, "_"))
}

// MakeFilename derives the migration file path from base, timestamp and object name
func (h *Helper) MakeFilename(base, timestamp, name string) string {
	name = SanitizeName(name)

	var filename string
	if isPattern(base) {
		filename = base
		if !strings.Contains(filename, DatetimePlaceholder) {
			filename = DatetimePlaceholder + "_" + filename
		}
		filename = strings.ReplaceAll(filename, DatetimePlaceholder, timestamp)
		filename = strings.ReplaceAll(filename, NamePlaceholder, name)
	} else {
		filename = strings.Join([]string{timestamp, base, name}, "_")
	}

	if filepath.Ext(filename) == "" && h.ext != "" {
		filename += "." + h.ext
	}

	return filepath.Join(h.dir, filename)
}

// SanitizeName replaces characters that are unsafe in filenames and identifiers
func SanitizeName(name string) string {
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "unnamed"
	}
	return name
}

func isPattern(base string) bool {
	return strings.Contains(base, NamePlaceholder)
}
