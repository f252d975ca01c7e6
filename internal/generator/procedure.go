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
	"time"

	"github.com/ocomsoft/db2migrations/internal/blueprint"
	"github.com/ocomsoft/db2migrations/internal/config"
	"github.com/ocomsoft/db2migrations/internal/schema"
	"github.com/ocomsoft/db2migrations/internal/writer"
)

// procedureOffset places procedure migrations one second after the
// reference date, after views and anything else stamped with the date itself.
const procedureOffset = time.Second

// ProcedureMigration generates stored procedure migrations
type ProcedureMigration struct {
	names    NameHelper
	writer   MigrationWriter
	settings *config.Settings
	squash   SquashWriter
}

// NewProcedureMigration creates a procedure migration generator
func NewProcedureMigration(names NameHelper, migrationWriter MigrationWriter, settings *config.Settings, squash SquashWriter) *ProcedureMigration {
	return &ProcedureMigration{
		names:    names,
		writer:   migrationWriter,
		settings: settings,
		squash:   squash,
	}
}

// Write creates a stored procedure migration and returns its file path
func (m *ProcedureMigration) Write(procedure schema.Procedure) (string, error) {
	up := m.up(procedure)
	down := m.down(procedure)

	path := m.makeMigrationPath(procedure.GetName())
	err := m.writer.WriteTo(
		path,
		m.settings.StubPath,
		m.makeMigrationClassName(procedure.GetName()),
		[]blueprint.Blueprint{up},
		[]blueprint.Blueprint{down},
		writer.MigrationFileTypeProcedure,
	)
	if err != nil {
		return "", err
	}
	return path, nil
}

// WriteToTemp stages the procedure statements for a squashed migration
func (m *ProcedureMigration) WriteToTemp(procedure schema.Procedure) error {
	up := m.up(procedure)
	down := m.down(procedure)

	return m.squash.WriteToTemp([]blueprint.Blueprint{up}, []blueprint.Blueprint{down})
}

func (m *ProcedureMigration) up(procedure schema.Procedure) blueprint.DBUnprepared {
	return blueprint.NewDBUnprepared(procedure.GetDefinition())
}

func (m *ProcedureMigration) down(procedure schema.Procedure) blueprint.DBUnprepared {
	return blueprint.NewDBUnprepared(procedure.GetDropDefinition())
}

func (m *ProcedureMigration) makeMigrationClassName(procedure string) string {
	return m.names.MakeClassName(m.settings.ProcedureFilename, procedure)
}

func (m *ProcedureMigration) makeMigrationPath(procedure string) string {
	return m.names.MakeFilename(
		m.settings.ProcedureFilename,
		m.settings.Date.Add(procedureOffset).Format(m.settings.TimestampFormat),
		procedure,
	)
}
