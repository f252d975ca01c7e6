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
	"database/sql"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	goose "github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/ocomsoft/db2migrations/internal/config"
	"github.com/ocomsoft/db2migrations/internal/errors"
	"github.com/ocomsoft/db2migrations/internal/providers"
)

var (
	cyan   = color.New(color.FgCyan).SprintFunc()
	blue   = color.New(color.FgBlue).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

var (
	gooseDatabaseType string
	gooseDSN          string
)

// gooseCmd represents the goose command
var gooseCmd = &cobra.Command{
	Use:   "goose",
	Short: "Apply generated migrations using goose",
	Long: `Database migration commands using goose library.

This command applies the generated SQL migrations to a target database using
the same configuration as generate. The target defaults to the configured
source database; use --database and --dsn to point it elsewhere.

Generated filenames must start with a numeric version, so the config must use
format "sql" with timestamp_format "20060102150405" (see 'init --goose').

Available subcommands:
  up          Migrate the DB to the most recent version available
  up-by-one   Migrate the DB up by 1
  up-to       Migrate the DB to a specific VERSION
  down        Roll back the version by 1
  down-to     Roll back to a specific VERSION
  redo        Re-run the latest migration
  reset       Roll back all migrations
  status      Print the status of all migrations
  version     Print the current version of the database
  create      Create a new migration file
  fix         Apply sequential ordering to migrations`,
}

// gooseTarget resolves the database goose runs against
func gooseTarget(cfg *config.Config) (providers.DatabaseType, string, error) {
	dbTypeName := cfg.Database.Type
	if gooseDatabaseType != "" {
		dbTypeName = gooseDatabaseType
	}
	dsn := cfg.Database.DSN
	if gooseDSN != "" {
		dsn = gooseDSN
	}

	dbType, err := providers.ParseDatabaseType(dbTypeName)
	if err != nil {
		return "", "", errors.NewValidationError("database.type", err.Error())
	}
	if dsn == "" {
		return "", "", errors.NewValidationError("database.dsn", "goose needs a target connection string (--dsn)")
	}
	return dbType, dsn, nil
}

// setupGooseDB sets up the database connection and goose configuration
func setupGooseDB(cmd *cobra.Command, cfg *config.Config) (*sql.DB, error) {
	dbType, dsn, err := gooseTarget(cfg)
	if err != nil {
		return nil, err
	}

	driver, err := providers.DriverName(dbType)
	if err != nil {
		return nil, err
	}

	db, err := providers.Open(cmd.Context(), dbType, dsn)
	if err != nil {
		return nil, err
	}

	// Set goose dialect
	if err := goose.SetDialect(driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return db, nil
}

// runGooseCommand executes a goose command with proper error handling
func runGooseCommand(cmd *cobra.Command, cfg *config.Config, command string, args ...string) error {
	if !cfg.IsGooseCompatible() {
		return errors.NewValidationError("migration.timestamp_format",
			fmt.Sprintf("goose needs format %q with timestamp_format %q, got %q with %q",
				config.FormatSQL, config.CompactTimestampFormat, cfg.Migration.Format, cfg.Migration.TimestampFormat))
	}

	fmt.Printf("%s Running goose %s...\n", blue("▶"), command)

	// Fix only renames files
	if command == "fix" {
		if err := goose.Fix(cfg.Migration.Directory); err != nil {
			return fmt.Errorf("goose %s failed: %w", command, err)
		}
		fmt.Printf("%s goose %s completed successfully\n", green("✓"), command)
		return nil
	}

	db, err := setupGooseDB(cmd, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	dir := cfg.Migration.Directory

	// Execute the goose command
	switch command {
	case "up":
		err = goose.Up(db, dir)
	case "up-by-one":
		err = goose.UpByOne(db, dir)
	case "up-to":
		version, parseErr := strconv.ParseInt(args[0], 10, 64)
		if parseErr != nil {
			return fmt.Errorf("invalid version: %s", args[0])
		}
		err = goose.UpTo(db, dir, version)
	case "down":
		err = goose.Down(db, dir)
	case "down-to":
		version, parseErr := strconv.ParseInt(args[0], 10, 64)
		if parseErr != nil {
			return fmt.Errorf("invalid version: %s", args[0])
		}
		err = goose.DownTo(db, dir, version)
	case "redo":
		err = goose.Redo(db, dir)
	case "reset":
		err = goose.Reset(db, dir)
	case "status":
		err = goose.Status(db, dir)
	case "version":
		version, versionErr := goose.GetDBVersion(db)
		if versionErr != nil {
			err = versionErr
		} else {
			fmt.Printf("goose: version %s\n", yellow(version))
		}
	case "create":
		err = goose.Create(db, dir, args[0], "sql")
	default:
		return fmt.Errorf("unknown goose command: %s", command)
	}

	if err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}

	fmt.Printf("%s goose %s completed successfully\n", green("✓"), command)
	return nil
}

// gooseSubcommands lists the goose operations and the arguments they take
var gooseSubcommands = []struct {
	name  string
	short string
	nargs int
}{
	{"up", "Migrate the DB to the most recent version available", 0},
	{"up-by-one", "Migrate the DB up by 1", 0},
	{"up-to", "Migrate the DB to a specific VERSION", 1},
	{"down", "Roll back the version by 1", 0},
	{"down-to", "Roll back to a specific VERSION", 1},
	{"redo", "Re-run the latest migration", 0},
	{"reset", "Roll back all migrations", 0},
	{"status", "Print the status of all migrations", 0},
	{"version", "Print the current version of the database", 0},
	{"create", "Create a new migration file", 1},
	{"fix", "Apply sequential ordering to migrations", 0},
}

// createGooseSubcommand creates a goose subcommand
func createGooseSubcommand(name, short string, nargs int) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			return runGooseCommand(cmd, cfg, name, args...)
		},
	}
}

func init() {
	rootCmd.AddCommand(gooseCmd)

	gooseCmd.PersistentFlags().StringVar(&gooseDatabaseType, "database", "", "Target database type (default: database.type)")
	gooseCmd.PersistentFlags().StringVar(&gooseDSN, "dsn", "", "Target connection string (default: database.dsn)")

	for _, sub := range gooseSubcommands {
		gooseCmd.AddCommand(createGooseSubcommand(sub.name, sub.short, sub.nargs))
	}
}
