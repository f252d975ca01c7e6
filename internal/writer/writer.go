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
package writer

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/ocomsoft/db2migrations/internal/blueprint"
	"github.com/ocomsoft/db2migrations/internal/errors"
	"github.com/ocomsoft/db2migrations/internal/version"
)

// Writer renders migration stubs and persists them
type Writer struct {
	fs      afero.Fs
	format  string
	pkg     string
	verbose bool
}

// New creates a writer for the given output format ("sql" or "go").
// pkg is the Go package name used by go format stubs.
func New(fs afero.Fs, format, pkg string, verbose bool) *Writer {
	return &Writer{
		fs:      fs,
		format:  format,
		pkg:     pkg,
		verbose: verbose,
	}
}

// WriteTo renders a migration with the stub found at stubPath and writes it to path.
// An existing file at path is never overwritten.
func (w *Writer) WriteTo(path, stubPath, className string, up, down []blueprint.Blueprint, kind MigrationFileType) error {
	exists, err := afero.Exists(w.fs, path)
	if err != nil {
		return fmt.Errorf("failed to check migration path: %w", err)
	}
	if exists {
		return errors.NewMigrationExistsError(path)
	}

	content, err := w.Render(stubPath, className, up, down, kind)
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := w.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := afero.WriteFile(w.fs, path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write migration file: %w", err)
	}

	if w.verbose {
		fmt.Printf("Written %s migration to: %s\n", kind, path)
	}

	return nil
}

// Render returns the migration content without writing it
func (w *Writer) Render(stubPath, className string, up, down []blueprint.Blueprint, kind MigrationFileType) (string, error) {
	tpl, err := loadStub(w.fs, stubPath, kind, w.format)
	if err != nil {
		return "", err
	}

	data := stubData{
		ClassName: className,
		Kind:      kind.String(),
		Generator: version.GetDisplayVersion(),
		Package:   w.pkg,
		Up:        blueprint.Render(up, w.format),
		Down:      blueprint.Render(down, w.format),
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", errors.NewStubError(tpl.Name(), fmt.Sprintf("failed to render stub: %v", err))
	}

	return buf.String(), nil
}

// Format returns the output format of the writer
func (w *Writer) Format() string {
	return w.format
}
