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
package errors

import (
	"errors"
	"fmt"
)

// Common error types for the db2migrations tool

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

type StubError struct {
	StubPath string
	Message  string
}

func (e StubError) Error() string {
	if e.StubPath == "" {
		return fmt.Sprintf("stub error: %s", e.Message)
	}
	return fmt.Sprintf("stub error in %s: %s", e.StubPath, e.Message)
}

// MigrationExistsError is returned when a generated path is already taken.
type MigrationExistsError struct {
	Path string
}

func (e MigrationExistsError) Error() string {
	return fmt.Sprintf("migration already exists: %s", e.Path)
}

type IntrospectionError struct {
	Object  string
	Message string
}

func (e IntrospectionError) Error() string {
	return fmt.Sprintf("introspection error for %s: %s", e.Object, e.Message)
}

// Error wrapping helpers
func NewValidationError(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

func NewStubError(stubPath, message string) error {
	return StubError{StubPath: stubPath, Message: message}
}

func NewMigrationExistsError(path string) error {
	return MigrationExistsError{Path: path}
}

func NewIntrospectionError(object, message string) error {
	return IntrospectionError{Object: object, Message: message}
}

// Utility functions for error checking. Wrapped errors are unwrapped.
func IsValidationError(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsStubError(err error) bool {
	var target StubError
	return errors.As(err, &target)
}

func IsMigrationExistsError(err error) bool {
	var target MigrationExistsError
	return errors.As(err, &target)
}

func IsIntrospectionError(err error) bool {
	var target IntrospectionError
	return errors.As(err, &target)
}
