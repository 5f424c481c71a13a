package workbook

import "fmt"

// ExitCodeInput is the exit code for every [InputError].
const ExitCodeInput = 50

// InputError reports a missing input file or a workbook whose shape the
// reader cannot make sense of, carrying the offending path.
type InputError struct {
	Path    string
	Message string
	Err     error
}

func newInputError(path, message string, cause error) *InputError {
	return &InputError{Path: path, Message: message, Err: cause}
}

// NewInputError constructs an [InputError] for callers outside this
// package that read auxiliary input files (payloads, shared headers).
func NewInputError(path, message string, cause error) *InputError {
	return newInputError(path, message, cause)
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input %s: %s: %v", e.Path, e.Message, e.Err)
	}

	return fmt.Sprintf("input %s: %s", e.Path, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ExitCode implements the CLI's exit-code translation contract.
func (e *InputError) ExitCode() int {
	return ExitCodeInput
}
