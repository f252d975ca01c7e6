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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	yaml "gopkg.in/yaml.v3"

	"github.com/ocomsoft/db2migrations/internal/errors"
)

const (
	// DefaultTimestampFormat is the Go layout for YYYY_MM_DD_HHmmss
	DefaultTimestampFormat = "2006_01_02_150405"
	// CompactTimestampFormat is the goose-compatible numeric layout
	CompactTimestampFormat = "20060102150405"

	FormatSQL = "sql"
	FormatGo  = "go"
)

// dateLayouts lists the accepted layouts for migration.date
var dateLayouts = []string{
	DefaultTimestampFormat,
	CompactTimestampFormat,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Config represents the db2migrations configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`

	// Migration settings
	Migration MigrationConfig `yaml:"migration" mapstructure:"migration"`

	// Object filtering
	Filter FilterConfig `yaml:"filter" mapstructure:"filter"`

	// Output settings
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// DatabaseConfig contains database-related settings
type DatabaseConfig struct {
	Type string `yaml:"type" mapstructure:"type"` // postgresql, mysql, sqlserver, sqlite
	DSN  string `yaml:"dsn" mapstructure:"dsn"`   // Connection string for the source database
}

// MigrationConfig contains migration-related settings
type MigrationConfig struct {
	Directory         string `yaml:"directory" mapstructure:"directory"`                   // Directory for migration files
	StubPath          string `yaml:"stub_path" mapstructure:"stub_path"`                   // Directory holding custom stubs; empty uses built-in stubs
	Format            string `yaml:"format" mapstructure:"format"`                         // sql or go
	Package           string `yaml:"package" mapstructure:"package"`                       // Go package name for go format
	TimestampFormat   string `yaml:"timestamp_format" mapstructure:"timestamp_format"`     // Go layout used in filenames
	Date              string `yaml:"date" mapstructure:"date"`                             // Reference date; empty means now (UTC)
	ProcedureFilename string `yaml:"procedure_filename" mapstructure:"procedure_filename"` // Base filename for procedure migrations
	ViewFilename      string `yaml:"view_filename" mapstructure:"view_filename"`           // Base filename for view migrations
	SquashFilename    string `yaml:"squash_filename" mapstructure:"squash_filename"`       // Base filename for squashed migrations
}

// FilterConfig contains gitignore-style object name patterns
type FilterConfig struct {
	Exclude []string `yaml:"exclude" mapstructure:"exclude"` // Patterns of object names to skip
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Verbose      bool `yaml:"verbose" mapstructure:"verbose"`             // Enable verbose output
	ColorEnabled bool `yaml:"color_enabled" mapstructure:"color_enabled"` // Enable colored output
}

// Settings is the read-only view of the configuration consumed by the generators
type Settings struct {
	StubPath          string
	Path              string
	Format            string
	Package           string
	TimestampFormat   string
	Date              time.Time
	ProcedureFilename string
	ViewFilename      string
	SquashFilename    string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Type: "postgresql",
			DSN:  "",
		},
		Migration: MigrationConfig{
			Directory:         "migrations",
			StubPath:          "",
			Format:            FormatSQL,
			Package:           "migrations",
			TimestampFormat:   DefaultTimestampFormat,
			Date:              "",
			ProcedureFilename: "procedures",
			ViewFilename:      "views",
			SquashFilename:    "squashed",
		},
		Filter: FilterConfig{
			Exclude: []string{},
		},
		Output: OutputConfig{
			Verbose:      false,
			ColorEnabled: true,
		},
	}
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set up environment variable binding
	v.SetEnvPrefix("DB2MIGRATIONS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in migrations directory
		v.SetConfigName("db2migrations.config")
		v.SetConfigType("yaml")
		v.AddConfigPath("migrations")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault loads configuration or returns default if not found
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// Validate checks the values that cannot be defaulted silently
func (c *Config) Validate() error {
	switch c.Migration.Format {
	case FormatSQL, FormatGo:
	default:
		return errors.NewValidationError("migration.format", fmt.Sprintf("unsupported format %q (use sql or go)", c.Migration.Format))
	}
	if c.Migration.Directory == "" {
		return errors.NewValidationError("migration.directory", "must not be empty")
	}
	if c.Migration.TimestampFormat == "" {
		return errors.NewValidationError("migration.timestamp_format", "must not be empty")
	}
	// goose takes the version from the filename up to the first underscore
	if c.Migration.Format == FormatGo && strings.Contains(c.Migration.TimestampFormat, "_") {
		return errors.NewValidationError("migration.timestamp_format",
			fmt.Sprintf("go migrations register with goose and need a timestamp without underscores such as %q", CompactTimestampFormat))
	}
	for field, value := range map[string]string{
		"migration.procedure_filename": c.Migration.ProcedureFilename,
		"migration.view_filename":      c.Migration.ViewFilename,
		"migration.squash_filename":    c.Migration.SquashFilename,
	} {
		if strings.Trim(value, "_ ") == "" {
			return errors.NewValidationError(field, "must not be empty")
		}
	}
	if _, err := ParseDate(c.Migration.Date); err != nil {
		return err
	}
	return nil
}

// Settings builds the generator settings. An empty date resolves to now (UTC).
func (c *Config) Settings() (*Settings, error) {
	date, err := ParseDate(c.Migration.Date)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = time.Now().UTC().Truncate(time.Second)
	}

	return &Settings{
		StubPath:          c.Migration.StubPath,
		Path:              c.Migration.Directory,
		Format:            c.Migration.Format,
		Package:           c.Migration.Package,
		TimestampFormat:   c.Migration.TimestampFormat,
		Date:              date,
		ProcedureFilename: c.Migration.ProcedureFilename,
		ViewFilename:      c.Migration.ViewFilename,
		SquashFilename:    c.Migration.SquashFilename,
	}, nil
}

// IsGooseCompatible reports whether generated filenames carry a numeric goose version
func (c *Config) IsGooseCompatible() bool {
	return c.Migration.Format == FormatSQL && c.Migration.TimestampFormat == CompactTimestampFormat
}

// ParseDate parses a reference date. The empty string yields the zero time.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.NewValidationError("migration.date", fmt.Sprintf("cannot parse %q", value))
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := `# db2migrations Configuration File
#
# All settings can be overridden using environment variables with the prefix DB2MIGRATIONS_
# For example: DB2MIGRATIONS_DATABASE_TYPE=mysql
#
# For nested values, use underscores: DB2MIGRATIONS_MIGRATION_DATE=2023_01_01_000000
#
# Filename bases may be plain words ("procedures") or patterns using the
# [datetime] and [name] placeholders, e.g. "[datetime]_create_[name]_proc".
#
# Use timestamp_format "20060102150405" with format "sql" to apply the
# generated files with the goose subcommand.
#

`

	fullContent := []byte(header + string(data))
	if err := os.WriteFile(path, fullContent, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("database.type", cfg.Database.Type)
	v.SetDefault("database.dsn", cfg.Database.DSN)

	v.SetDefault("migration.directory", cfg.Migration.Directory)
	v.SetDefault("migration.stub_path", cfg.Migration.StubPath)
	v.SetDefault("migration.format", cfg.Migration.Format)
	v.SetDefault("migration.package", cfg.Migration.Package)
	v.SetDefault("migration.timestamp_format", cfg.Migration.TimestampFormat)
	v.SetDefault("migration.date", cfg.Migration.Date)
	v.SetDefault("migration.procedure_filename", cfg.Migration.ProcedureFilename)
	v.SetDefault("migration.view_filename", cfg.Migration.ViewFilename)
	v.SetDefault("migration.squash_filename", cfg.Migration.SquashFilename)

	v.SetDefault("filter.exclude", cfg.Filter.Exclude)

	v.SetDefault("output.verbose", cfg.Output.Verbose)
	v.SetDefault("output.color_enabled", cfg.Output.ColorEnabled)
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	return filepath.Join("migrations", "db2migrations.config.yaml")
}

// ConfigExists checks if a config file exists
func ConfigExists() bool {
	_, err := os.Stat(GetConfigPath())
	return err == nil
}
