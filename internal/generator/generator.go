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
// Package generator turns introspected database objects into migrations.
package generator

import (
	"github.com/ocomsoft/db2migrations/internal/blueprint"
	"github.com/ocomsoft/db2migrations/internal/writer"
)

// NameHelper derives class names and file paths for migrations
type NameHelper interface {
	MakeClassName(base, name string) string
	MakeFilename(base, timestamp, name string) string
}

// MigrationWriter renders and persists one migration file
type MigrationWriter interface {
	WriteTo(path, stubPath, className string, up, down []blueprint.Blueprint, kind writer.MigrationFileType) error
}

// SquashWriter stages statement sets for a consolidated migration
type SquashWriter interface {
	WriteToTemp(up, down []blueprint.Blueprint) error
}
