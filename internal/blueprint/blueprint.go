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
// Package blueprint contains the statement units rendered into migration stubs.
package blueprint

import (
	"fmt"
	"strconv"
)

// Blueprint is a single unit of migration content
type Blueprint interface {
	// ToSQL renders the unit for SQL-format migrations
	ToSQL() string
	// ToGo renders the unit as Go statements for Go-format migrations
	ToGo() string
}

// DBUnprepared marks a raw statement that is executed verbatim.
// No escaping, parsing or rewriting is performed on the statement.
type DBUnprepared struct {
	Statement string
}

// NewDBUnprepared wraps a raw SQL statement
func NewDBUnprepared(statement string) DBUnprepared {
	return DBUnprepared{Statement: statement}
}

func (b DBUnprepared) ToSQL() string {
	return b.Statement
}

func (b DBUnprepared) ToGo() string {
	return fmt.Sprintf("if _, err := tx.ExecContext(ctx, %s); err != nil {\n\t\treturn err\n\t}",
		strconv.Quote(b.Statement))
}

// Render renders every blueprint in order for the given output format
func Render(blueprints []Blueprint, format string) []string {
	rendered := make([]string, 0, len(blueprints))
	for _, b := range blueprints {
		if format == "go" {
			rendered = append(rendered, b.ToGo())
		} else {
			rendered = append(rendered, b.ToSQL())
		}
	}
	return rendered
}
