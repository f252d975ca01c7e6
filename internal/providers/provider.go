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
	"database/sql"
	"fmt"
	"strings"

	"github.com/ocomsoft/db2migrations/internal/providers/mysql"
	"github.com/ocomsoft/db2migrations/internal/providers/postgresql"
	"github.com/ocomsoft/db2migrations/internal/providers/sqlite"
	"github.com/ocomsoft/db2migrations/internal/providers/sqlserver"
	"github.com/ocomsoft/db2migrations/internal/schema"

	_ "github.com/go-sql-driver/mysql"  // MySQL driver
	_ "github.com/lib/pq"               // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"     // SQLite driver
	_ "github.com/microsoft/go-mssqldb" // SQL Server driver
)

// Provider defines the interface for database-specific introspection
type Provider interface {
	// Stored procedures of the connected database/schema
	GetProcedures(ctx context.Context, db *sql.DB) ([]schema.Procedure, error)
	// Views of the connected database/schema
	GetViews(ctx context.Context, db *sql.DB) ([]schema.View, error)

	QuoteName(name string) string
}

// DatabaseType represents supported database types
type DatabaseType string

const (
	DatabasePostgreSQL DatabaseType = "postgresql"
	DatabaseMySQL      DatabaseType = "mysql"
	DatabaseSQLServer  DatabaseType = "sqlserver"
	DatabaseSQLite     DatabaseType = "sqlite"
)

// ParseDatabaseType normalizes a user supplied database type
func ParseDatabaseType(value string) (DatabaseType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "postgresql", "postgres", "pg":
		return DatabasePostgreSQL, nil
	case "mysql", "mariadb":
		return DatabaseMySQL, nil
	case "sqlserver", "mssql":
		return DatabaseSQLServer, nil
	case "sqlite", "sqlite3":
		return DatabaseSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database type: %s", value)
	}
}

// DriverName maps a database type to its database/sql driver
func DriverName(dbType DatabaseType) (string, error) {
	switch dbType {
	case DatabasePostgreSQL:
		return "postgres", nil
	case DatabaseMySQL:
		return "mysql", nil
	case DatabaseSQLServer:
		return "sqlserver", nil
	case DatabaseSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database type: %s", dbType)
	}
}

// NewProvider creates a new database provider based on the database type
func NewProvider(dbType DatabaseType) (Provider, error) {
	switch dbType {
	case DatabasePostgreSQL:
		return postgresql.New(), nil
	case DatabaseMySQL:
		return mysql.New(), nil
	case DatabaseSQLServer:
		return sqlserver.New(), nil
	case DatabaseSQLite:
		return sqlite.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}

// Open connects to the source database and verifies the connection
func Open(ctx context.Context, dbType DatabaseType, dsn string) (*sql.DB, error) {
	driver, err := DriverName(dbType)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
