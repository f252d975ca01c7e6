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
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ocomsoft/db2migrations/internal/errors"
	"github.com/ocomsoft/db2migrations/internal/providers/sqlutil"
	"github.com/ocomsoft/db2migrations/internal/schema"
)

// Provider implements the Provider interface for SQLite
type Provider struct{}

// New creates a new SQLite provider
func New() *Provider {
	return &Provider{}
}

// QuoteName quotes database identifiers for SQLite
func (p *Provider) QuoteName(name string) string {
	return fmt.Sprintf(`"%s"`, strings.ReplaceAll(name, `"`, `""`))
}

// GetProcedures returns nothing: SQLite has no stored procedures
func (p *Provider) GetProcedures(ctx context.Context, db *sql.DB) ([]schema.Procedure, error) {
	return nil, nil
}

// GetViews extracts views from sqlite_master
func (p *Provider) GetViews(ctx context.Context, db *sql.DB) ([]schema.View, error) {
	query := `
		SELECT name, sql
		FROM sqlite_master
		WHERE type = 'view'
		AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	rows, err := sqlutil.QueryDefinitions(ctx, db, query)
	if err != nil {
		return nil, fmt.Errorf("failed to extract views: %w", err)
	}

	views := make([]schema.View, 0, len(rows))
	for _, row := range rows {
		if !row.Valid {
			return nil, errors.NewIntrospectionError(row.Name, "view has no stored definition")
		}
		views = append(views, schema.NewView(
			row.Name,
			row.Definition,
			fmt.Sprintf("DROP VIEW IF EXISTS %s", p.QuoteName(row.Name)),
		))
	}

	return views, nil
}
