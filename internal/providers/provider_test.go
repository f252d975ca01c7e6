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
package providers

import (
	"context"
	"testing"

	"github.com/ocomsoft/db2migrations/internal/providers/mysql"
	"github.com/ocomsoft/db2migrations/internal/providers/postgresql"
	"github.com/ocomsoft/db2migrations/internal/providers/sqlserver"
)

func TestParseDatabaseType(t *testing.T) {
	tests := map[string]DatabaseType{
		"postgresql": DatabasePostgreSQL,
		"Postgres":   DatabasePostgreSQL,
		"mysql":      DatabaseMySQL,
		"mariadb":    DatabaseMySQL,
		"mssql":      DatabaseSQLServer,
		"sqlite3":    DatabaseSQLite,
	}
	for input, expected := range tests {
		got, err := ParseDatabaseType(input)
		if err != nil || got != expected {
			t.Errorf("ParseDatabaseType(%q) = %q, %v; want %q", input, got, err, expected)
		}
	}

	if _, err := ParseDatabaseType("oracle"); err == nil {
		t.Error("expected error for unsupported database")
	}
}

func TestNewProvider(t *testing.T) {
	for _, dbType := range []DatabaseType{DatabasePostgreSQL, DatabaseMySQL, DatabaseSQLServer, DatabaseSQLite} {
		p, err := NewProvider(dbType)
		if err != nil || p == nil {
			t.Errorf("NewProvider(%s) failed: %v", dbType, err)
		}
		if _, err := DriverName(dbType); err != nil {
			t.Errorf("DriverName(%s) failed: %v", dbType, err)
		}
	}

	if _, err := NewProvider("oracle"); err == nil {
		t.Error("expected error for unsupported provider")
	}
}

func TestOpenSQLite(t *testing.T) {
	db, err := Open(context.Background(), DatabaseSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer db.Close()

	p, _ := NewProvider(DatabaseSQLite)
	views, err := p.GetViews(context.Background(), db)
	if err != nil {
		t.Fatalf("GetViews() error: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("expected no views in empty database, got %d", len(views))
	}
}

func TestDropStatements(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"mysql", mysql.New().DropProcedure("calc`total"), "DROP PROCEDURE IF EXISTS `calc``total`"},
		{"postgresql", postgresql.New().DropProcedure("calc_total", "integer, text"), `DROP PROCEDURE IF EXISTS "calc_total"(integer, text)`},
		{"postgresql no args", postgresql.New().DropProcedure("calc_total", ""), `DROP PROCEDURE IF EXISTS "calc_total"()`},
		{"sqlserver quote", sqlserver.New().QuoteName("calc]total"), "[calc]]total]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}
