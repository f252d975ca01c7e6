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
// Package sqlutil holds the row scanning shared by the database providers.
package sqlutil

import (
	"context"
	"database/sql"
	"fmt"
)

// NamedDefinition is a catalog row holding an object name and its SQL text.
// Valid is false when the catalog hid the definition.
type NamedDefinition struct {
	Name       string
	Definition string
	Valid      bool
}

// QueryDefinitions runs a query returning (name, definition) rows
func QueryDefinitions(ctx context.Context, db *sql.DB, query string, args ...any) ([]NamedDefinition, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query definitions: %w", err)
	}
	defer rows.Close()

	var out []NamedDefinition
	for rows.Next() {
		var (
			name       string
			definition sql.NullString
		)
		if err := rows.Scan(&name, &definition); err != nil {
			return nil, fmt.Errorf("failed to scan definition row: %w", err)
		}
		out = append(out, NamedDefinition{
			Name:       name,
			Definition: definition.String,
			Valid:      definition.Valid,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over definition rows: %w", err)
	}

	return out, nil
}

// QueryNames runs a query returning a single name column
func QueryNames(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over name rows: %w", err)
	}

	return names, nil
}
