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
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/afero"

	"github.com/ocomsoft/db2migrations/internal/errors"
)

//go:embed stubs/*.stub
var defaultStubs embed.FS

// MigrationFileType tags a migration with the kind of object it holds.
// The kind selects the stub used to render the file.
type MigrationFileType string

const (
	MigrationFileTypeView      MigrationFileType = "view"
	MigrationFileTypeProcedure MigrationFileType = "procedure"
	MigrationFileTypeSquash    MigrationFileType = "squash"
)

func (t MigrationFileType) String() string {
	return string(t)
}

// stubData is the template context of every stub
type stubData struct {
	ClassName string
	Kind      string
	Generator string
	Package   string
	Up        []string
	Down      []string
}

// DefaultStub returns the built-in stub for a format
func DefaultStub(format string) (string, error) {
	data, err := defaultStubs.ReadFile("stubs/migration." + format + ".stub")
	if err != nil {
		return "", errors.NewStubError("", fmt.Sprintf("no built-in stub for format %q", format))
	}
	return string(data), nil
}

// loadStub resolves the stub for kind and format.
//
// stubPath may name a stub file, or a directory searched for
// "<kind>.<format>.stub" then "migration.<format>.stub". An empty
// stubPath, or a directory without a matching file, uses the built-in stub.
func loadStub(fs afero.Fs, stubPath string, kind MigrationFileType, format string) (*template.Template, error) {
	name := "builtin:" + format
	var source string

	if stubPath != "" {
		info, err := fs.Stat(stubPath)
		if err != nil {
			return nil, errors.NewStubError(stubPath, fmt.Sprintf("cannot access stub path: %v", err))
		}

		candidates := []string{stubPath}
		if info.IsDir() {
			candidates = []string{
				filepath.Join(stubPath, fmt.Sprintf("%s.%s.stub", kind, format)),
				filepath.Join(stubPath, fmt.Sprintf("migration.%s.stub", format)),
			}
		}

		for _, candidate := range candidates {
			exists, err := afero.Exists(fs, candidate)
			if err != nil {
				return nil, errors.NewStubError(candidate, err.Error())
			}
			if !exists {
				continue
			}
			data, err := afero.ReadFile(fs, candidate)
			if err != nil {
				return nil, errors.NewStubError(candidate, fmt.Sprintf("failed to read stub: %v", err))
			}
			name, source = candidate, string(data)
			break
		}
	}

	if source == "" {
		builtin, err := DefaultStub(format)
		if err != nil {
			return nil, err
		}
		source = builtin
	}

	tpl, err := template.New(name).Option("missingkey=error").Parse(source)
	if err != nil {
		return nil, errors.NewStubError(strings.TrimPrefix(name, "builtin:"), fmt.Sprintf("failed to parse stub: %v", err))
	}
	return tpl, nil
}
