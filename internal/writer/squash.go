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
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"

	"github.com/ocomsoft/db2migrations/internal/blueprint"
)

// TempFilename is the squash buffer kept in the migrations directory during a run
const TempFilename = ".db2migrations_squash.yaml"

// ErrEmptySquash is returned when squashing without any staged statements
var ErrEmptySquash = stderrors.New("nothing to squash: no statements were staged")

const statementTypeUnprepared = "unprepared"

// squashEntry is one staged up/down pair, stored as a YAML document
type squashEntry struct {
	Up   []tempStatement `yaml:"up"`
	Down []tempStatement `yaml:"down"`
}

type tempStatement struct {
	Type      string `yaml:"type"`
	Statement string `yaml:"statement"`
}

// Squash accumulates statement sets in a temporary buffer and consolidates
// them into a single migration. Calls must be serialized by the caller.
type Squash struct {
	fs      afero.Fs
	writer  *Writer
	dir     string
	verbose bool
}

// NewSquash creates a squash writer buffering into dir
func NewSquash(fs afero.Fs, writer *Writer, dir string, verbose bool) *Squash {
	return &Squash{
		fs:      fs,
		writer:  writer,
		dir:     dir,
		verbose: verbose,
	}
}

// TempPath returns the location of the squash buffer
func (s *Squash) TempPath() string {
	return filepath.Join(s.dir, TempFilename)
}

// CleanTemps removes a buffer left over from an earlier run
func (s *Squash) CleanTemps() error {
	err := s.fs.Remove(s.TempPath())
	if err != nil && !os.IsNotExist(err) && !os.IsPermission(err) {
		return fmt.Errorf("failed to remove squash buffer: %w", err)
	}

	// a read-only base layer keeps the file visible; shadow it with an empty buffer
	exists, existsErr := afero.Exists(s.fs, s.TempPath())
	if existsErr != nil {
		return fmt.Errorf("failed to check squash buffer: %w", existsErr)
	}
	if !exists {
		return nil
	}
	if err := afero.WriteFile(s.fs, s.TempPath(), nil, 0644); err != nil {
		return fmt.Errorf("failed to reset squash buffer: %w", err)
	}
	return nil
}

// WriteToTemp appends one up set and one down set to the buffer
func (s *Squash) WriteToTemp(up, down []blueprint.Blueprint) error {
	entry := squashEntry{}
	var err error
	if entry.Up, err = encodeStatements(up); err != nil {
		return err
	}
	if entry.Down, err = encodeStatements(down); err != nil {
		return err
	}

	data, err := yaml.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode squash entry: %w", err)
	}

	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := s.fs.OpenFile(s.TempPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open squash buffer: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append([]byte("---\n"), data...)); err != nil {
		return fmt.Errorf("failed to append to squash buffer: %w", err)
	}

	if s.verbose {
		fmt.Printf("Staged %d up / %d down statement(s) for squash\n", len(up), len(down))
	}

	return nil
}

// Staged reads back the buffered statements. Up statements keep insertion
// order; down statements are returned in reverse entry order so objects
// staged last are dropped first.
func (s *Squash) Staged() (up, down []blueprint.Blueprint, err error) {
	entries, err := s.readEntries()
	if err != nil {
		return nil, nil, err
	}

	for _, entry := range entries {
		stmts, err := decodeStatements(entry.Up)
		if err != nil {
			return nil, nil, err
		}
		up = append(up, stmts...)
	}

	for i := len(entries) - 1; i >= 0; i-- {
		stmts, err := decodeStatements(entries[i].Down)
		if err != nil {
			return nil, nil, err
		}
		down = append(down, stmts...)
	}

	return up, down, nil
}

// SquashMigrations renders every staged statement into one migration at path
// and removes the buffer.
func (s *Squash) SquashMigrations(path, stubPath, className string) error {
	up, down, err := s.Staged()
	if err != nil {
		return err
	}
	if len(up) == 0 && len(down) == 0 {
		return ErrEmptySquash
	}

	if err := s.writer.WriteTo(path, stubPath, className, up, down, MigrationFileTypeSquash); err != nil {
		return err
	}

	return s.CleanTemps()
}

func (s *Squash) readEntries() ([]squashEntry, error) {
	data, err := afero.ReadFile(s.fs, s.TempPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read squash buffer: %w", err)
	}

	var entries []squashEntry
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var entry squashEntry
		if err := decoder.Decode(&entry); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to decode squash buffer: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func encodeStatements(blueprints []blueprint.Blueprint) ([]tempStatement, error) {
	out := make([]tempStatement, 0, len(blueprints))
	for _, b := range blueprints {
		switch v := b.(type) {
		case blueprint.DBUnprepared:
			out = append(out, tempStatement{Type: statementTypeUnprepared, Statement: v.Statement})
		case *blueprint.DBUnprepared:
			out = append(out, tempStatement{Type: statementTypeUnprepared, Statement: v.Statement})
		default:
			return nil, fmt.Errorf("cannot stage blueprint of type %T", b)
		}
	}
	return out, nil
}

func decodeStatements(stmts []tempStatement) ([]blueprint.Blueprint, error) {
	out := make([]blueprint.Blueprint, 0, len(stmts))
	for _, stmt := range stmts {
		if stmt.Type != statementTypeUnprepared {
			return nil, fmt.Errorf("unknown staged statement type %q", stmt.Type)
		}
		out = append(out, blueprint.NewDBUnprepared(stmt.Statement))
	}
	return out, nil
}
