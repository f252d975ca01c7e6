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
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ocomsoft/db2migrations/internal/version"
)

var (
	configFile string // Config file path
	verbose    bool
	noColor    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   version.ToolName,
	Short: "Generate migrations for stored procedures and views",
	Long: `Generate migration files for the stored procedures and views of an
existing database.

Each procedure and view becomes its own migration holding the CREATE
statement in the up section and the matching DROP statement in the down
section. With --squash every object is collected into a single migration.

When run without a subcommand, defaults to 'generate'.

Available commands:
- init: Create the migrations directory, config file and editable stubs
- generate: Introspect the database and write migrations
- goose: Apply the generated SQL migrations with goose
- version: Show version information

Supported databases: postgresql, mysql, sqlserver, sqlite`,
	RunE: runGenerate,
}

// GetRootCmd returns the root command for embedding in other applications
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Stdout is reserved for --dry-run output
	fmt.Fprintln(os.Stderr, version.GetDisplayVersion())
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initColor)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: migrations/db2migrations.config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Show detailed processing information")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	addGenerateFlags(rootCmd)
}

func initColor() {
	if noColor {
		color.NoColor = true
	}
}
