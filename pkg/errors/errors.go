// Package errors provides custom error types for the routemap system.
// These errors enable programmatic error checking (missing inputs versus
// recoverable row-level problems) and improved debugging throughout the pipeline.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// As is the standard library errors.As, re-exported so callers need a single import.
var As = errors.As

// Common sentinel errors for the routemap system
var (
	// ErrMissingFile indicates that a required input file does not exist
	ErrMissingFile = errors.New("missing file")

	// ErrMissingColumn indicates that an expected column is absent from a table
	ErrMissingColumn = errors.New("missing column")

	// ErrMalformedRow indicates that a row has fewer fields than required
	ErrMalformedRow = errors.New("malformed row")

	// ErrNoCandidate indicates that fuzzy matching found no candidate at or above threshold
	ErrNoCandidate = errors.New("no candidate")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// MissingFileError represents a required input path that does not exist
type MissingFileError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *MissingFileError) Error() string {
	return fmt.Sprintf("required file %s not found", e.Path)
}

// Unwrap implements errors.Unwrap
func (e *MissingFileError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *MissingFileError) Is(target error) bool {
	return target == ErrMissingFile
}

// NewMissingFileError creates a new MissingFileError
func NewMissingFileError(path string, err error) *MissingFileError {
	return &MissingFileError{Path: path, Err: err}
}

// MissingColumnError represents an expected column absent from a loaded table
type MissingColumnError struct {
	Table  string
	Column string
}

// Error implements the error interface
func (e *MissingColumnError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("column %q not found in %s", e.Column, e.Table)
	}
	return fmt.Sprintf("column %q not found", e.Column)
}

// Is implements errors.Is support
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// NewMissingColumnError creates a new MissingColumnError
func NewMissingColumnError(table, column string) *MissingColumnError {
	return &MissingColumnError{Table: table, Column: column}
}

// MalformedRowError represents a row that is too short for a column reference.
// It is never fatal: the row is skipped and processing continues.
type MalformedRowError struct {
	Row      int // 1-based data row number, header excluded
	Fields   int
	Required int
}

// Error implements the error interface
func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d has %d fields, %d required", e.Row, e.Fields, e.Required)
}

// Is implements errors.Is support
func (e *MalformedRowError) Is(target error) bool {
	return target == ErrMalformedRow
}

// NewMalformedRowError creates a new MalformedRowError
func NewMalformedRowError(row, fields, required int) *MalformedRowError {
	return &MalformedRowError{Row: row, Fields: fields, Required: required}
}

// NoCandidateError records a name whose best match scored below the threshold.
// Best is empty when there were no candidates at all.
type NoCandidateError struct {
	Name      string
	Best      string
	Score     float64
	Threshold float64
}

// Error implements the error interface
func (e *NoCandidateError) Error() string {
	if e.Best == "" {
		return fmt.Sprintf("no candidate for %q", e.Name)
	}
	return fmt.Sprintf("no candidate for %q: best %q scored %.1f, threshold %.1f", e.Name, e.Best, e.Score, e.Threshold)
}

// Is implements errors.Is support
func (e *NoCandidateError) Is(target error) bool {
	return target == ErrNoCandidate
}

// NewNoCandidateError creates a new NoCandidateError
func NewNoCandidateError(name, best string, score, threshold float64) *NoCandidateError {
	return &NoCandidateError{Name: name, Best: best, Score: score, Threshold: threshold}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "csv", "yaml"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// StageError attributes a fatal error to the pipeline stage that produced it
type StageError struct {
	Stage string
	Err   error
}

// Error implements the error interface
func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a new StageError
func NewStageError(stage string, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

// Helper functions for error checking

// IsMissingFile checks if an error is a missing file error
func IsMissingFile(err error) bool {
	return errors.Is(err, ErrMissingFile)
}

// IsMissingColumn checks if an error is a missing column error
func IsMissingColumn(err error) bool {
	return errors.Is(err, ErrMissingColumn)
}

// IsMalformedRow checks if an error is a malformed row error
func IsMalformedRow(err error) bool {
	return errors.Is(err, ErrMalformedRow)
}

// IsNoCandidate checks if an error is a no candidate error
func IsNoCandidate(err error) bool {
	return errors.Is(err, ErrNoCandidate)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapStage wraps an error as a StageError
func WrapStage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return NewStageError(stage, err)
}
