package orchestrate

import "errors"

// ExitCodeInternal is the exit code for an [InternalError].
const ExitCodeInternal = 99

// InternalError reports an invariant violation the orchestrator did
// not expect any phase to raise.
type InternalError struct {
	Message string
	Err     error
}

func newInternalError(message string, cause error) *InternalError {
	return &InternalError{Message: message, Err: cause}
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return "internal: " + e.Message + ": " + e.Err.Error()
	}

	return "internal: " + e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// ExitCode implements the exit-code translation contract.
func (e *InternalError) ExitCode() int {
	return ExitCodeInternal
}

// exitCoder is implemented by every error kind defined across
// msgforge's packages (spec.ParseError, generate.GenerationError,
// validate.ValidationError, config.Error, workbook.InputError,
// output.OutputError, InternalError): each kind owns a single exit
// code family.
type exitCoder interface {
	ExitCode() int
}

// ExitCode maps err to the exit code its kind owns; success is 0. An
// error of an unrecognized kind surfaces the internal code rather than
// guessing.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}

	return ExitCodeInternal
}
