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
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ocomsoft/db2migrations/internal/config"
	"github.com/ocomsoft/db2migrations/internal/errors"
	"github.com/ocomsoft/db2migrations/internal/providers"
	"github.com/ocomsoft/db2migrations/internal/writer"
)

var (
	initDatabaseType string
	initFormat       string
	initGoose        bool
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize migrations directory, config file and stubs",
	Long: `Initialize the migrations directory structure for db2migrations.

This command:
- Creates the migrations/ directory if it doesn't exist
- Writes migrations/db2migrations.config.yaml with default settings
- Copies the built-in stubs to migrations/stubs for customisation

Existing files are left untouched, so init can be re-run safely.

Use --goose to configure numeric timestamps that the goose subcommand can apply.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initDatabaseType, "database", "postgresql",
		"Source database type (postgresql, mysql, sqlserver, sqlite)")
	initCmd.Flags().StringVar(&initFormat, "format", config.FormatSQL, "Migration format (sql, go)")
	initCmd.Flags().BoolVar(&initGoose, "goose", false, "Use goose compatible timestamps")
}

func runInit(_ *cobra.Command, _ []string) error {
	if verbose {
		color.Cyan("Initializing db2migrations")
		color.Cyan("==========================")
	}

	dbType, err := providers.ParseDatabaseType(initDatabaseType)
	if err != nil {
		return errors.NewValidationError("database", err.Error())
	}

	cfg := config.DefaultConfig()
	cfg.Database.Type = string(dbType)
	cfg.Migration.Format = initFormat
	cfg.Migration.StubPath = filepath.Join(cfg.Migration.Directory, "stubs")
	cfg.Output.Verbose = verbose
	if initGoose || initFormat == config.FormatGo {
		cfg.Migration.TimestampFormat = config.CompactTimestampFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	configPath := config.GetConfigPath()
	if config.ConfigExists() {
		color.Yellow("Config file already exists: %s", configPath)
	} else {
		if err := cfg.Save(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		color.Green("Created config file: %s", configPath)
	}

	written, err := writeDefaultStubs(afero.NewOsFs(), cfg.Migration.StubPath)
	if err != nil {
		return err
	}
	for _, path := range written {
		color.Green("Created stub: %s", path)
	}

	if verbose {
		color.Yellow("Database type: %s", dbType)
		color.Yellow("Migration format: %s", cfg.Migration.Format)
	}

	color.Blue("\nNext steps:")
	color.White("  1. Set database.dsn in %s (or DB2MIGRATIONS_DATABASE_DSN)", configPath)
	color.White("  2. Adjust the stubs in %s if needed", cfg.Migration.StubPath)
	color.White("  3. Run '%s generate'", rootCmd.Name())

	return nil
}

// writeDefaultStubs copies the built-in stubs into dir, keeping existing files
func writeDefaultStubs(fs afero.Fs, dir string) ([]string, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create stub directory: %w", err)
	}

	var written []string
	for _, format := range []string{config.FormatSQL, config.FormatGo} {
		stub, err := writer.DefaultStub(format)
		if err != nil {
			return nil, err
		}

		path := filepath.Join(dir, fmt.Sprintf("migration.%s.stub", format))
		exists, err := afero.Exists(fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", path, err)
		}
		if exists {
			continue
		}

		if err := afero.WriteFile(fs, path, []byte(stub), 0644); err != nil {
			return nil, fmt.Errorf("failed to write stub: %w", err)
		}
		written = append(written, path)
	}
	return written, nil
}
