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
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ocomsoft/db2migrations/internal/errors"
	"github.com/ocomsoft/db2migrations/internal/providers/sqlutil"
	"github.com/ocomsoft/db2migrations/internal/schema"
)

// Provider implements the Provider interface for PostgreSQL
type Provider struct{}

// New creates a new PostgreSQL provider
func New() *Provider {
	return &Provider{}
}

// QuoteName quotes database identifiers for PostgreSQL
func (p *Provider) QuoteName(name string) string {
	return fmt.Sprintf(`"%s"`, strings.ReplaceAll(name, `"`, `""`))
}

// GetProcedures extracts procedures (prokind 'p', PostgreSQL 11+) of the current schema
func (p *Provider) GetProcedures(ctx context.Context, db *sql.DB) ([]schema.Procedure, error) {
	query := `
		SELECT
			p.proname,
			pg_get_functiondef(p.oid),
			pg_get_function_identity_arguments(p.oid)
		FROM pg_proc p
		JOIN pg_namespace n ON n.oid = p.pronamespace
		WHERE n.nspname = current_schema()
		AND p.prokind = 'p'
		ORDER BY p.proname, p.oid
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to extract procedures: %w", err)
	}
	defer rows.Close()

	var found []routine
	for rows.Next() {
		var r routine
		if err := rows.Scan(&r.name, &r.definition, &r.arguments); err != nil {
			return nil, fmt.Errorf("failed to scan procedure: %w", err)
		}
		found = append(found, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over procedure rows: %w", err)
	}

	return p.procedures(found), nil
}

// routine is one pg_proc row
type routine struct {
	name       string
	definition string
	arguments  string
}

// procedures converts catalog rows into procedures. Overloads share a
// proname, so each overload with arguments is named after them as well,
// e.g. "calc(integer, text)" becomes "calc_integer_text".
func (p *Provider) procedures(found []routine) []schema.Procedure {
	overloads := make(map[string]int, len(found))
	for _, r := range found {
		overloads[r.name]++
	}

	procedures := make([]schema.Procedure, 0, len(found))
	for _, r := range found {
		name := r.name
		if overloads[r.name] > 1 && r.arguments != "" {
			name = r.name + "_" + r.arguments
		}
		procedures = append(procedures, schema.NewProcedure(
			name,
			r.definition,
			p.DropProcedure(r.name, r.arguments),
		))
	}
	return procedures
}

// DropProcedure builds the drop statement; arguments disambiguate overloads
func (p *Provider) DropProcedure(name, arguments string) string {
	return fmt.Sprintf("DROP PROCEDURE IF EXISTS %s(%s)", p.QuoteName(name), arguments)
}

// GetViews extracts views of the current schema
func (p *Provider) GetViews(ctx context.Context, db *sql.DB) ([]schema.View, error) {
	query := `
		SELECT viewname, definition
		FROM pg_views
		WHERE schemaname = current_schema()
		ORDER BY viewname
	`

	rows, err := sqlutil.QueryDefinitions(ctx, db, query)
	if err != nil {
		return nil, fmt.Errorf("failed to extract views: %w", err)
	}

	views := make([]schema.View, 0, len(rows))
	for _, row := range rows {
		if !row.Valid {
			return nil, errors.NewIntrospectionError(row.Name, "view has no definition")
		}
		views = append(views, schema.NewView(
			row.Name,
			fmt.Sprintf("CREATE VIEW %s AS\n%s", p.QuoteName(row.Name), strings.TrimSpace(row.Definition)),
			fmt.Sprintf("DROP VIEW IF EXISTS %s", p.QuoteName(row.Name)),
		))
	}

	return views, nil
}
