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
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetViews(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, stmt := range []string{
		"CREATE TABLE users (id INTEGER PRIMARY KEY, active INTEGER)",
		"CREATE VIEW active_users AS SELECT id FROM users WHERE active = 1",
		`CREATE VIEW "all users" AS SELECT id FROM users`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("setup %q failed: %v", stmt, err)
		}
	}

	p := New()
	views, err := p.GetViews(ctx, db)
	if err != nil {
		t.Fatalf("GetViews() error: %v", err)
	}

	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}

	if views[0].Name != "active_users" {
		t.Errorf("expected active_users first, got %q", views[0].Name)
	}
	if views[0].Definition != "CREATE VIEW active_users AS SELECT id FROM users WHERE active = 1" {
		t.Errorf("unexpected definition %q", views[0].Definition)
	}
	if views[0].DropDefinition != `DROP VIEW IF EXISTS "active_users"` {
		t.Errorf("unexpected drop %q", views[0].DropDefinition)
	}
	if views[1].DropDefinition != `DROP VIEW IF EXISTS "all users"` {
		t.Errorf("unexpected drop %q", views[1].DropDefinition)
	}

	// The drop statement must actually revert the definition
	if _, err := db.ExecContext(ctx, views[0].DropDefinition); err != nil {
		t.Fatalf("drop failed: %v", err)
	}
	if _, err := db.ExecContext(ctx, views[0].Definition); err != nil {
		t.Fatalf("recreate failed: %v", err)
	}
}

func TestGetProceduresEmpty(t *testing.T) {
	procedures, err := New().GetProcedures(context.Background(), openTestDB(t))
	if err != nil || len(procedures) != 0 {
		t.Errorf("sqlite has no procedures, got %v, %v", procedures, err)
	}
}

func TestQuoteName(t *testing.T) {
	if got := New().QuoteName(`a"b`); got != `"a""b"` {
		t.Errorf("QuoteName() = %s", got)
	}
}
