package spec

import "fmt"

// ExitCodeParse is the exit code family for every [ParseError].
const ExitCodeParse = 10

// ParseError is the error kind for input shape and hierarchy violations.
// It carries the sheet name, 1-based row index, and optional field name
// for diagnostic context.
type ParseError struct {
	Sheet   string
	Row     int
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	loc := e.Sheet
	if e.Row > 0 {
		loc = fmt.Sprintf("%s:%d", e.Sheet, e.Row)
	}

	if e.Field != "" {
		loc = fmt.Sprintf("%s field=%q", loc, e.Field)
	}

	if e.Err != nil {
		return fmt.Sprintf("parse error at %s: %s: %v", loc, e.Message, e.Err)
	}

	return fmt.Sprintf("parse error at %s: %s", loc, e.Message)
}

// Unwrap exposes the wrapped cause for [errors.Is]/[errors.As].
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExitCode implements the exit-code translation contract.
func (e *ParseError) ExitCode() int {
	return ExitCodeParse
}

func newParseError(sheet string, row int, field, message string, cause error) *ParseError {
	return &ParseError{Sheet: sheet, Row: row, Field: field, Message: message, Err: cause}
}
