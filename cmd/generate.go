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
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ocomsoft/db2migrations/internal/config"
	"github.com/ocomsoft/db2migrations/internal/errors"
	"github.com/ocomsoft/db2migrations/internal/filter"
	"github.com/ocomsoft/db2migrations/internal/generator"
	"github.com/ocomsoft/db2migrations/internal/naming"
	"github.com/ocomsoft/db2migrations/internal/providers"
	"github.com/ocomsoft/db2migrations/internal/schema"
	"github.com/ocomsoft/db2migrations/internal/writer"
)

// generateOptions holds the generate flags
type generateOptions struct {
	database   string
	dsn        string
	format     string
	date       string
	squash     bool
	squashName string
	views      bool
	procedures bool
	dryRun     bool
}

var genOpts generateOptions

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate migrations for the procedures and views of a database",
	Long: `Connect to the configured database, read its stored procedures and views
and write one migration per object.

Views are stamped with the reference date and procedures one second later,
so a migration runner creates views before the procedures that use them.
An existing migration file is never overwritten.

With --squash all objects are buffered and written as a single migration.
With --dry-run nothing is written to disk; the rendered files are printed.

Examples:
  db2migrations generate --database mysql --dsn 'user:pass@tcp(localhost:3306)/app'
  db2migrations generate --squash --name initial_routines
  db2migrations generate --procedures=false --date 2024-01-31`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addGenerateFlags(generateCmd)
}

func addGenerateFlags(c *cobra.Command) {
	c.Flags().StringVar(&genOpts.database, "database", "", "Source database type (postgresql, mysql, sqlserver, sqlite)")
	c.Flags().StringVar(&genOpts.dsn, "dsn", "", "Source database connection string")
	c.Flags().StringVar(&genOpts.format, "format", "", "Migration format (sql, go)")
	c.Flags().StringVar(&genOpts.date, "date", "", "Reference date for migration timestamps (default: now)")
	c.Flags().BoolVar(&genOpts.squash, "squash", false, "Write all objects into a single migration")
	c.Flags().StringVar(&genOpts.squashName, "name", "routines", "Object name used for the squashed migration")
	c.Flags().BoolVar(&genOpts.views, "views", true, "Generate view migrations")
	c.Flags().BoolVar(&genOpts.procedures, "procedures", true, "Generate procedure migrations")
	c.Flags().BoolVar(&genOpts.dryRun, "dry-run", false, "Show what would be generated without creating files")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := genOpts.apply(cfg); err != nil {
		return err
	}
	if !cfg.Output.ColorEnabled {
		color.NoColor = true
	}

	if cfg.Output.Verbose {
		color.Cyan("Generating migrations from %s database", cfg.Database.Type)
		color.Cyan("===========================================")
	}

	var fs afero.Fs = afero.NewOsFs()
	if genOpts.dryRun {
		// reads fall through to disk, writes stay in memory
		fs = afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(fs), afero.NewMemMapFs())
	}

	paths, err := executeGenerate(cmd.Context(), cfg, fs, genOpts)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		color.Yellow("No procedures or views found. Nothing to generate.")
		return nil
	}

	if genOpts.dryRun {
		return printMigrations(cmd, fs, paths)
	}

	color.Green("✓ Generated %d migration(s):", len(paths))
	for _, path := range paths {
		fmt.Printf("  %s\n", cyan(path))
	}
	return nil
}

// apply overrides the loaded configuration with explicitly set flags
func (o generateOptions) apply(cfg *config.Config) error {
	if o.database != "" {
		cfg.Database.Type = o.database
	}
	if o.dsn != "" {
		cfg.Database.DSN = o.dsn
	}
	if o.format != "" {
		cfg.Migration.Format = o.format
	}
	if o.date != "" {
		cfg.Migration.Date = o.date
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if !o.views && !o.procedures {
		return errors.NewValidationError("views/procedures", "nothing to generate when both are disabled")
	}
	if cfg.Database.DSN == "" {
		return errors.NewValidationError("database.dsn", "must be set in the config file, DB2MIGRATIONS_DATABASE_DSN or --dsn")
	}
	return cfg.Validate()
}

// executeGenerate introspects the configured database and writes its migrations to fs
func executeGenerate(ctx context.Context, cfg *config.Config, fs afero.Fs, opts generateOptions) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	dbType, err := providers.ParseDatabaseType(cfg.Database.Type)
	if err != nil {
		return nil, errors.NewValidationError("database.type", err.Error())
	}
	provider, err := providers.NewProvider(dbType)
	if err != nil {
		return nil, err
	}

	db, err := providers.Open(ctx, dbType, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var views []schema.View
	if opts.views {
		if views, err = provider.GetViews(ctx, db); err != nil {
			return nil, err
		}
	}

	var procedures []schema.Procedure
	if opts.procedures {
		if procedures, err = provider.GetProcedures(ctx, db); err != nil {
			return nil, err
		}
	}

	if cfg.Output.Verbose {
		fmt.Printf("Found %d view(s) and %d procedure(s)\n", len(views), len(procedures))
	}

	return writeMigrations(fs, cfg, views, procedures, opts)
}

// writeMigrations writes views then procedures, either one file per object
// or staged into a single squashed migration.
//
// Each object is generated with its own copy of the settings whose date
// advances one second per object, so every file carries a distinct
// timestamp and views sort before procedures.
func writeMigrations(fs afero.Fs, cfg *config.Config, views []schema.View, procedures []schema.Procedure, opts generateOptions) ([]string, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}

	verbose := cfg.Output.Verbose
	names := naming.New(settings.Path, settings.Format)
	w := writer.New(fs, settings.Format, settings.Package, verbose)
	squash := writer.NewSquash(fs, w, settings.Path, verbose)
	exclude := filter.New(cfg.Filter.Exclude)

	if opts.squash {
		if err := squash.CleanTemps(); err != nil {
			return nil, err
		}
	}

	var paths []string

	written := 0
	for _, view := range views {
		if exclude.Excluded(view.GetName()) {
			if verbose {
				fmt.Printf("Skipping excluded view: %s\n", view.GetName())
			}
			continue
		}
		viewMigration := generator.NewViewMigration(names, w, advanced(settings, written), squash)
		written++
		if opts.squash {
			if err := viewMigration.WriteToTemp(view); err != nil {
				return nil, fmt.Errorf("failed to stage view %s: %w", view.GetName(), err)
			}
			continue
		}
		path, err := viewMigration.Write(view)
		if err != nil {
			return nil, fmt.Errorf("failed to write view %s: %w", view.GetName(), err)
		}
		paths = append(paths, path)
	}

	// procedures add one second of their own to the date they are given
	offset := max(written-1, 0)
	for _, procedure := range procedures {
		if exclude.Excluded(procedure.GetName()) {
			if verbose {
				fmt.Printf("Skipping excluded procedure: %s\n", procedure.GetName())
			}
			continue
		}
		procedureMigration := generator.NewProcedureMigration(names, w, advanced(settings, offset), squash)
		offset++
		if opts.squash {
			if err := procedureMigration.WriteToTemp(procedure); err != nil {
				return nil, fmt.Errorf("failed to stage procedure %s: %w", procedure.GetName(), err)
			}
			continue
		}
		path, err := procedureMigration.Write(procedure)
		if err != nil {
			return nil, fmt.Errorf("failed to write procedure %s: %w", procedure.GetName(), err)
		}
		paths = append(paths, path)
	}

	if !opts.squash {
		return paths, nil
	}

	path, err := generator.WriteSquashed(names, squash, settings, opts.squashName)
	if stderrors.Is(err, writer.ErrEmptySquash) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// advanced returns a copy of settings with the date moved forward by steps seconds
func advanced(settings *config.Settings, steps int) *config.Settings {
	copied := *settings
	copied.Date = settings.Date.Add(time.Duration(steps) * time.Second)
	return &copied
}

// printMigrations writes the rendered files of a dry run to stdout
func printMigrations(cmd *cobra.Command, fs afero.Fs, paths []string) error {
	out := cmd.OutOrStdout()
	for _, path := range paths {
		content, err := afero.ReadFile(fs, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		fmt.Fprintf(out, "=== %s ===\n%s\n", path, content)
	}
	return nil
}
