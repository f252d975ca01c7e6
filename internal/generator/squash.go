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
package generator

import (
	"github.com/ocomsoft/db2migrations/internal/config"
)

// SquashFlusher consolidates staged statements into one migration file
type SquashFlusher interface {
	SquashMigrations(path, stubPath, className string) error
}

// WriteSquashed flushes the squash buffer into a single migration named
// after name and returns its path. The migration is stamped with the
// reference date.
func WriteSquashed(names NameHelper, flusher SquashFlusher, settings *config.Settings, name string) (string, error) {
	path := names.MakeFilename(
		settings.SquashFilename,
		settings.Date.Format(settings.TimestampFormat),
		name,
	)

	if err := flusher.SquashMigrations(path, settings.StubPath, names.MakeClassName(settings.SquashFilename, name)); err != nil {
		return "", err
	}
	return path, nil
}
