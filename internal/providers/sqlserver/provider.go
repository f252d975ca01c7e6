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
package sqlserver

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ocomsoft/db2migrations/internal/errors"
	"github.com/ocomsoft/db2migrations/internal/providers/sqlutil"
	"github.com/ocomsoft/db2migrations/internal/schema"
)

// Provider implements the Provider interface for SQL Server
type Provider struct{}

// New creates a new SQL Server provider
func New() *Provider {
	return &Provider{}
}

// QuoteName quotes database identifiers for SQL Server
func (p *Provider) QuoteName(name string) string {
	return fmt.Sprintf("[%s]", strings.ReplaceAll(name, "]", "]]"))
}

// GetProcedures extracts user stored procedures
func (p *Provider) GetProcedures(ctx context.Context, db *sql.DB) ([]schema.Procedure, error) {
	query := `
		SELECT p.name, m.definition
		FROM sys.procedures p
		JOIN sys.sql_modules m ON m.object_id = p.object_id
		WHERE p.is_ms_shipped = 0
		ORDER BY p.name
	`

	rows, err := sqlutil.QueryDefinitions(ctx, db, query)
	if err != nil {
		return nil, fmt.Errorf("failed to extract procedures: %w", err)
	}

	procedures := make([]schema.Procedure, 0, len(rows))
	for _, row := range rows {
		// definition is NULL for procedures created WITH ENCRYPTION
		if !row.Valid {
			return nil, errors.NewIntrospectionError(row.Name, "procedure definition is encrypted or not visible")
		}
		procedures = append(procedures, schema.NewProcedure(
			row.Name,
			strings.TrimSpace(row.Definition),
			fmt.Sprintf("DROP PROCEDURE IF EXISTS %s", p.QuoteName(row.Name)),
		))
	}

	return procedures, nil
}

// GetViews extracts user views
func (p *Provider) GetViews(ctx context.Context, db *sql.DB) ([]schema.View, error) {
	query := `
		SELECT v.name, m.definition
		FROM sys.views v
		JOIN sys.sql_modules m ON m.object_id = v.object_id
		WHERE v.is_ms_shipped = 0
		ORDER BY v.name
	`

	rows, err := sqlutil.QueryDefinitions(ctx, db, query)
	if err != nil {
		return nil, fmt.Errorf("failed to extract views: %w", err)
	}

	views := make([]schema.View, 0, len(rows))
	for _, row := range rows {
		if !row.Valid {
			return nil, errors.NewIntrospectionError(row.Name, "view definition is encrypted or not visible")
		}
		views = append(views, schema.NewView(
			row.Name,
			strings.TrimSpace(row.Definition),
			fmt.Sprintf("DROP VIEW IF EXISTS %s", p.QuoteName(row.Name)),
		))
	}

	return views, nil
}
