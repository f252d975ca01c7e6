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
package generator

import (
	"github.com/ocomsoft/db2migrations/internal/blueprint"
	"github.com/ocomsoft/db2migrations/internal/config"
	"github.com/ocomsoft/db2migrations/internal/schema"
	"github.com/ocomsoft/db2migrations/internal/writer"
)

// ViewMigration generates view migrations, stamped with the reference date itself
type ViewMigration struct {
	names    NameHelper
	writer   MigrationWriter
	settings *config.Settings
	squash   SquashWriter
}

// NewViewMigration creates a view migration generator
func NewViewMigration(names NameHelper, migrationWriter MigrationWriter, settings *config.Settings, squash SquashWriter) *ViewMigration {
	return &ViewMigration{
		names:    names,
		writer:   migrationWriter,
		settings: settings,
		squash:   squash,
	}
}

// Write creates a view migration and returns its file path
func (m *ViewMigration) Write(view schema.View) (string, error) {
	path := m.names.MakeFilename(
		m.settings.ViewFilename,
		m.settings.Date.Format(m.settings.TimestampFormat),
		view.GetName(),
	)

	err := m.writer.WriteTo(
		path,
		m.settings.StubPath,
		m.names.MakeClassName(m.settings.ViewFilename, view.GetName()),
		[]blueprint.Blueprint{blueprint.NewDBUnprepared(view.GetDefinition())},
		[]blueprint.Blueprint{blueprint.NewDBUnprepared(view.GetDropDefinition())},
		writer.MigrationFileTypeView,
	)
	if err != nil {
		return "", err
	}
	return path, nil
}

// WriteToTemp stages the view statements for a squashed migration
func (m *ViewMigration) WriteToTemp(view schema.View) error {
	return m.squash.WriteToTemp(
		[]blueprint.Blueprint{blueprint.NewDBUnprepared(view.GetDefinition())},
		[]blueprint.Blueprint{blueprint.NewDBUnprepared(view.GetDropDefinition())},
	)
}
