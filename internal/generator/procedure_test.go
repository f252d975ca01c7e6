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
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/ocomsoft/db2migrations/internal/blueprint"
	"github.com/ocomsoft/db2migrations/internal/config"
	"github.com/ocomsoft/db2migrations/internal/naming"
	"github.com/ocomsoft/db2migrations/internal/schema"
	"github.com/ocomsoft/db2migrations/internal/writer"
)

type writeCall struct {
	path, stubPath, className string
	up, down                  []blueprint.Blueprint
	kind                      writer.MigrationFileType
}

type fakeWriter struct {
	calls []writeCall
	err   error
}

func (f *fakeWriter) WriteTo(path, stubPath, className string, up, down []blueprint.Blueprint, kind writer.MigrationFileType) error {
	f.calls = append(f.calls, writeCall{path, stubPath, className, up, down, kind})
	return f.err
}

type fakeSquash struct {
	ups, downs [][]blueprint.Blueprint
	err        error
}

func (f *fakeSquash) WriteToTemp(up, down []blueprint.Blueprint) error {
	f.ups = append(f.ups, up)
	f.downs = append(f.downs, down)
	return f.err
}

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Migration.Date = "2023_01_01_000000"
	cfg.Migration.StubPath = "stubs"
	settings, err := cfg.Settings()
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	return settings
}

var calcTotal = schema.NewProcedure(
	"calc_total",
	"CREATE PROCEDURE calc_total() ...",
	"DROP PROCEDURE calc_total",
)

func TestProcedureWrite(t *testing.T) {
	settings := testSettings(t)
	names := naming.New(settings.Path, settings.Format)
	w := &fakeWriter{}
	sq := &fakeSquash{}

	m := NewProcedureMigration(names, w, settings, sq)
	path, err := m.Write(calcTotal)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	expectedPath := names.MakeFilename("procedures", "2023_01_01_000001", "calc_total")
	if path != expectedPath {
		t.Errorf("path = %q, want %q", path, expectedPath)
	}
	if !strings.Contains(path, "2023_01_01_000001") || !strings.Contains(path, "procedures") {
		t.Errorf("path %q should contain the offset timestamp and base", path)
	}

	if len(w.calls) != 1 {
		t.Fatalf("expected exactly one writer call, got %d", len(w.calls))
	}
	call := w.calls[0]

	if call.path != path {
		t.Errorf("writer path = %q, want %q", call.path, path)
	}
	if call.stubPath != "stubs" {
		t.Errorf("stub path = %q, want stubs", call.stubPath)
	}
	if call.className != "ProceduresCalcTotal" {
		t.Errorf("class name = %q, want ProceduresCalcTotal", call.className)
	}
	if call.kind != writer.MigrationFileTypeProcedure {
		t.Errorf("kind = %q, want procedure", call.kind)
	}
	if len(call.up) != 1 || call.up[0] != blueprint.NewDBUnprepared(calcTotal.Definition) {
		t.Errorf("unexpected up set %v", call.up)
	}
	if len(call.down) != 1 || call.down[0] != blueprint.NewDBUnprepared(calcTotal.DropDefinition) {
		t.Errorf("unexpected down set %v", call.down)
	}
	if len(sq.ups) != 0 {
		t.Error("Write must not touch the squash buffer")
	}
}

func TestProcedureWritePropagatesWriterError(t *testing.T) {
	settings := testSettings(t)
	boom := stderrors.New("disk full")
	m := NewProcedureMigration(naming.New(settings.Path, "sql"), &fakeWriter{err: boom}, settings, &fakeSquash{})

	path, err := m.Write(calcTotal)
	if !stderrors.Is(err, boom) {
		t.Errorf("expected writer error to propagate unchanged, got %v", err)
	}
	if path != "" {
		t.Errorf("expected empty path on error, got %q", path)
	}
}

func TestProcedureWriteToTemp(t *testing.T) {
	settings := testSettings(t)
	w := &fakeWriter{}
	sq := &fakeSquash{}
	m := NewProcedureMigration(naming.New(settings.Path, "sql"), w, settings, sq)

	if err := m.WriteToTemp(calcTotal); err != nil {
		t.Fatalf("WriteToTemp() error: %v", err)
	}

	if len(w.calls) != 0 {
		t.Error("WriteToTemp must not call the migration writer")
	}
	if len(sq.ups) != 1 || len(sq.downs) != 1 {
		t.Fatalf("expected one staged up and down set, got %d/%d", len(sq.ups), len(sq.downs))
	}
	if len(sq.ups[0]) != 1 || sq.ups[0][0].ToSQL() != calcTotal.Definition {
		t.Errorf("unexpected staged up %v", sq.ups[0])
	}
	if len(sq.downs[0]) != 1 || sq.downs[0][0].ToSQL() != calcTotal.DropDefinition {
		t.Errorf("unexpected staged down %v", sq.downs[0])
	}
}

func TestProcedureUpDownAreVerbatimAndIdempotent(t *testing.T) {
	settings := testSettings(t)
	m := NewProcedureMigration(naming.New(settings.Path, "sql"), &fakeWriter{}, settings, &fakeSquash{})

	p := schema.NewProcedure("odd", "  CREATE PROCEDURE odd() SELECT '\"x\"';\n", "")
	if m.up(p) != m.up(p) || m.down(p) != m.down(p) {
		t.Error("up/down should be value-equal across calls")
	}
	if m.up(p).ToSQL() != p.Definition {
		t.Errorf("up changed the definition: %q", m.up(p).ToSQL())
	}
	if m.down(p).ToSQL() != "" {
		t.Errorf("empty drop definition should pass through, got %q", m.down(p).ToSQL())
	}
}

func TestTwoProceduresSameDate(t *testing.T) {
	settings := testSettings(t)
	date := settings.Date
	w := &fakeWriter{}
	m := NewProcedureMigration(naming.New(settings.Path, "sql"), w, settings, &fakeSquash{})

	p1, err := m.Write(calcTotal)
	if err != nil {
		t.Fatalf("Write(p1) error: %v", err)
	}
	p2, err := m.Write(schema.NewProcedure("calc_tax", "CREATE PROCEDURE calc_tax() ...", "DROP PROCEDURE calc_tax"))
	if err != nil {
		t.Fatalf("Write(p2) error: %v", err)
	}

	if p1 == p2 {
		t.Fatalf("distinct procedures produced the same path %q", p1)
	}
	for _, p := range []string{p1, p2} {
		if !strings.HasPrefix(filepath.Base(p), "2023_01_01_000001_") {
			t.Errorf("%q should be stamped one second after the reference date", p)
		}
	}
	if !settings.Date.Equal(date) {
		t.Error("settings date must not be advanced by Write")
	}
}

func TestProcedureWriteEndToEnd(t *testing.T) {
	settings := testSettings(t)
	settings.StubPath = ""
	fs := afero.NewMemMapFs()
	names := naming.New(settings.Path, settings.Format)
	w := writer.New(fs, settings.Format, settings.Package, false)
	m := NewProcedureMigration(names, w, settings, writer.NewSquash(fs, w, settings.Path, false))

	path, err := m.Write(calcTotal)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if path != filepath.Join("migrations", "2023_01_01_000001_procedures_calc_total.sql") {
		t.Errorf("unexpected path %q", path)
	}

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read migration: %v", err)
	}
	got := string(content)

	upIdx := strings.Index(got, "-- +goose Up")
	downIdx := strings.Index(got, "-- +goose Down")
	if upIdx < 0 || downIdx < upIdx {
		t.Fatalf("migration missing up/down sections:\n%s", got)
	}
	if !strings.Contains(got[upIdx:downIdx], "\nCREATE PROCEDURE calc_total() ...\n") {
		t.Errorf("up phase should execute the definition verbatim:\n%s", got)
	}
	if !strings.Contains(got[downIdx:], "\nDROP PROCEDURE calc_total\n") {
		t.Errorf("down phase should execute the drop verbatim:\n%s", got)
	}

	// A second write of the same procedure collides and must not overwrite.
	if _, err := m.Write(calcTotal); err == nil {
		t.Error("expected collision error on second write")
	}
}

func TestProcedureOffsetCrossesMinute(t *testing.T) {
	settings := testSettings(t)
	settings.Date = time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)
	w := &fakeWriter{}
	m := NewProcedureMigration(naming.New("", "sql"), w, settings, &fakeSquash{})

	path, err := m.Write(calcTotal)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if path != "2024_01_01_000000_procedures_calc_total.sql" {
		t.Errorf("unexpected path %q", path)
	}
}
