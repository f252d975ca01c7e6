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
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ocomsoft/db2migrations/internal/errors"
	"github.com/ocomsoft/db2migrations/internal/providers/sqlutil"
	"github.com/ocomsoft/db2migrations/internal/schema"
)

// Provider implements the Provider interface for MySQL
type Provider struct{}

// New creates a new MySQL provider
func New() *Provider {
	return &Provider{}
}

// QuoteName quotes database identifiers for MySQL
func (p *Provider) QuoteName(name string) string {
	return fmt.Sprintf("`%s`", strings.ReplaceAll(name, "`", "``"))
}

// GetProcedures extracts stored procedures of the current database
func (p *Provider) GetProcedures(ctx context.Context, db *sql.DB) ([]schema.Procedure, error) {
	query := `
		SELECT ROUTINE_NAME
		FROM information_schema.ROUTINES
		WHERE ROUTINE_SCHEMA = DATABASE()
		AND ROUTINE_TYPE = 'PROCEDURE'
		ORDER BY ROUTINE_NAME
	`

	names, err := sqlutil.QueryNames(ctx, db, query)
	if err != nil {
		return nil, fmt.Errorf("failed to extract procedures: %w", err)
	}

	procedures := make([]schema.Procedure, 0, len(names))
	for _, name := range names {
		definition, err := p.showCreateProcedure(ctx, db, name)
		if err != nil {
			return nil, err
		}
		procedures = append(procedures, schema.NewProcedure(
			name,
			definition,
			p.DropProcedure(name),
		))
	}

	return procedures, nil
}

// showCreateProcedure reads the full CREATE PROCEDURE statement
func (p *Provider) showCreateProcedure(ctx context.Context, db *sql.DB, name string) (string, error) {
	var (
		procName, sqlMode                     string
		charset, collation, databaseCollation string
		definition                            sql.NullString
	)

	row := db.QueryRowContext(ctx, "SHOW CREATE PROCEDURE "+p.QuoteName(name))
	if err := row.Scan(&procName, &sqlMode, &definition, &charset, &collation, &databaseCollation); err != nil {
		return "", fmt.Errorf("failed to show create procedure %s: %w", name, err)
	}

	// NULL when the user lacks privileges on the routine
	if !definition.Valid {
		return "", errors.NewIntrospectionError(name, "definition is not visible to the current user")
	}

	return definition.String, nil
}

// DropProcedure builds the statement that reverts a procedure
func (p *Provider) DropProcedure(name string) string {
	return fmt.Sprintf("DROP PROCEDURE IF EXISTS %s", p.QuoteName(name))
}

// GetViews extracts views of the current database
func (p *Provider) GetViews(ctx context.Context, db *sql.DB) ([]schema.View, error) {
	query := `
		SELECT TABLE_NAME, VIEW_DEFINITION
		FROM information_schema.VIEWS
		WHERE TABLE_SCHEMA = DATABASE()
		ORDER BY TABLE_NAME
	`

	rows, err := sqlutil.QueryDefinitions(ctx, db, query)
	if err != nil {
		return nil, fmt.Errorf("failed to extract views: %w", err)
	}

	views := make([]schema.View, 0, len(rows))
	for _, row := range rows {
		if !row.Valid {
			return nil, errors.NewIntrospectionError(row.Name, "view definition is not visible to the current user")
		}
		views = append(views, schema.NewView(
			row.Name,
			fmt.Sprintf("CREATE VIEW %s AS %s", p.QuoteName(row.Name), row.Definition),
			fmt.Sprintf("DROP VIEW IF EXISTS %s", p.QuoteName(row.Name)),
		))
	}

	return views, nil
}
