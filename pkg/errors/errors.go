// Package errors provides the error types shared by the parser, the engine
// and the CLI. They let callers tell an unreadable upload apart from a
// builder that simply had nothing to do.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
var New = errors.New

// Is, As and Join are re-exported so callers only need one errors import.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Sentinel errors.
var (
	// ErrUnreadable indicates a source file could not be parsed as a table.
	ErrUnreadable = errors.New("unreadable source table")

	// ErrEmptyInput indicates a source file had no content at all.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnsupportedFormat indicates a file extension the parser cannot read.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidInput indicates a caller-supplied value was invalid.
	ErrInvalidInput = errors.New("invalid input")
)

// ParseError represents a failure to turn an uploaded file into a table.
type ParseError struct {
	Format  string // "csv", "xlsx", ...
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support. Every parse error is an unreadable table.
func (e *ParseError) Is(target error) bool {
	return target == ErrUnreadable
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// BuildError reports one builder invocation that could not complete.
type BuildError struct {
	Output string // output file the builder would have produced
	Input  string // role and file name of the offending input
	Err    error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("building %s from %s: %v", e.Output, e.Input, e.Err)
	}
	return fmt.Sprintf("building %s: %v", e.Output, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *BuildError) Unwrap() error {
	return e.Err
}

// NewBuildError creates a new BuildError
func NewBuildError(output, input string, err error) *BuildError {
	return &BuildError{Output: output, Input: input, Err: err}
}

// IsUnreadable checks if an error stems from an unparseable source table
func IsUnreadable(err error) bool {
	return errors.Is(err, ErrUnreadable)
}

// IsUnsupportedFormat checks if an error is an unsupported file format
func IsUnsupportedFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}
