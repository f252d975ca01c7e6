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
// Package schema holds the database object descriptions produced by
// introspection and consumed by the migration generators.
package schema

// Procedure describes a stored procedure.
type Procedure struct {
	Name           string `yaml:"name"`
	Definition     string `yaml:"definition"`      // full CREATE statement
	DropDefinition string `yaml:"drop_definition"` // matching DROP statement
}

// NewProcedure creates a procedure description
func NewProcedure(name, definition, dropDefinition string) Procedure {
	return Procedure{Name: name, Definition: definition, DropDefinition: dropDefinition}
}

func (p Procedure) GetName() string           { return p.Name }
func (p Procedure) GetDefinition() string     { return p.Definition }
func (p Procedure) GetDropDefinition() string { return p.DropDefinition }

// View describes a database view.
type View struct {
	Name           string `yaml:"name"`
	Definition     string `yaml:"definition"`
	DropDefinition string `yaml:"drop_definition"`
}

// NewView creates a view description
func NewView(name, definition, dropDefinition string) View {
	return View{Name: name, Definition: definition, DropDefinition: dropDefinition}
}

func (v View) GetName() string           { return v.Name }
func (v View) GetDefinition() string     { return v.Definition }
func (v View) GetDropDefinition() string { return v.DropDefinition }
