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
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ocomsoft/db2migrations/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Migration.ProcedureFilename != "procedures" {
		t.Errorf("expected procedures base, got %q", cfg.Migration.ProcedureFilename)
	}
	if cfg.Migration.TimestampFormat != DefaultTimestampFormat {
		t.Errorf("expected default timestamp format, got %q", cfg.Migration.TimestampFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if cfg.IsGooseCompatible() {
		t.Error("default underscore timestamps are not goose compatible")
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{
		"2023_01_01_000000",
		"20230101000000",
		"2023-01-01T00:00:00Z",
		"2023-01-01 00:00:00",
		"2023-01-01",
	} {
		got, err := ParseDate(input)
		if err != nil {
			t.Errorf("ParseDate(%q) returned error: %v", input, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", input, got, want)
		}
	}

	if got, err := ParseDate(""); err != nil || !got.IsZero() {
		t.Errorf("empty date should give zero time, got %v, %v", got, err)
	}

	if _, err := ParseDate("yesterday"); !errors.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Migration.Date = "2023_01_01_000000"
	cfg.Migration.StubPath = "stubs"

	settings, err := cfg.Settings()
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}

	if settings.StubPath != "stubs" || settings.Path != "migrations" {
		t.Errorf("unexpected paths: %+v", settings)
	}
	if settings.Date.Format(settings.TimestampFormat) != "2023_01_01_000000" {
		t.Errorf("unexpected date: %v", settings.Date)
	}
}

func TestSettingsDefaultsToNow(t *testing.T) {
	before := time.Now().UTC().Add(-time.Second)
	settings, err := DefaultConfig().Settings()
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if settings.Date.Before(before) {
		t.Errorf("expected date close to now, got %v", settings.Date)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"unknown format", func(c *Config) { c.Migration.Format = "xml" }, "migration.format"},
		{"empty directory", func(c *Config) { c.Migration.Directory = "" }, "migration.directory"},
		{"go format with underscore timestamps", func(c *Config) { c.Migration.Format = FormatGo }, "migration.timestamp_format"},
		{"empty procedure filename", func(c *Config) { c.Migration.ProcedureFilename = "" }, "migration.procedure_filename"},
		{"blank view filename", func(c *Config) { c.Migration.ViewFilename = "__" }, "migration.view_filename"},
		{"empty squash filename", func(c *Config) { c.Migration.SquashFilename = " " }, "migration.squash_filename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			var validationErr errors.ValidationError
			if !stderrors.As(err, &validationErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if validationErr.Field != tt.field {
				t.Errorf("field = %q, want %q", validationErr.Field, tt.field)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Migration.Format = FormatGo
	cfg.Migration.TimestampFormat = CompactTimestampFormat
	if err := cfg.Validate(); err != nil {
		t.Errorf("go format with numeric timestamps should validate, got %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "migrations", "db2migrations.config.yaml")

	cfg := DefaultConfig()
	cfg.Database.Type = "mysql"
	cfg.Migration.Date = "2023_01_01_000000"
	cfg.Migration.ProcedureFilename = "[datetime]_create_[name]_proc"
	cfg.Filter.Exclude = []string{"tmp_*"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}
	if len(data) == 0 || data[0] != '#' {
		t.Error("expected saved config to start with header comment")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if loaded.Database.Type != "mysql" {
		t.Errorf("expected mysql, got %q", loaded.Database.Type)
	}
	if loaded.Migration.ProcedureFilename != "[datetime]_create_[name]_proc" {
		t.Errorf("unexpected procedure filename %q", loaded.Migration.ProcedureFilename)
	}
	if len(loaded.Filter.Exclude) != 1 || loaded.Filter.Exclude[0] != "tmp_*" {
		t.Errorf("unexpected exclude patterns %v", loaded.Filter.Exclude)
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db2migrations.config.yaml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	t.Setenv("DB2MIGRATIONS_MIGRATION_DATE", "2024_02_03_040506")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Migration.Date != "2024_02_03_040506" {
		t.Errorf("expected env override, got %q", loaded.Migration.Date)
	}
}

func TestLoadRejectsBadDate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db2migrations.config.yaml")
	cfg := DefaultConfig()
	cfg.Migration.Date = "not a date"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if _, err := Load(path); !errors.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if got := LoadOrDefault(path); got.Migration.Date != "" {
		t.Errorf("LoadOrDefault should fall back to defaults, got date %q", got.Migration.Date)
	}
}
