package main

import "strings"

// Exit codes for the CLI dispatch family.
const (
	ExitCodeCLIMissingCommand = 70
	ExitCodeCLIUnknownCommand = 71
	ExitCodeCLIArgumentError  = 72
)

// cliError reports a dispatch-level failure: no command given, an
// unrecognized command, or a malformed argument list.
type cliError struct {
	code int
	err  error
}

func newCLIError(code int, err error) *cliError {
	return &cliError{code: code, err: err}
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

// ExitCode implements the orchestrator's exit-code translation contract.
func (e *cliError) ExitCode() int {
	return e.code
}

// classifyCobraError recognizes cobra's own dispatch-failure messages
// (it does not expose typed errors for these) and assigns them the
// matching CLI exit code, rather than letting them fall through to the
// generic internal code.
func classifyCobraError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()

	switch {
	case strings.HasPrefix(msg, "unknown command"):
		return newCLIError(ExitCodeCLIUnknownCommand, err)
	case strings.HasPrefix(msg, "unknown flag") || strings.HasPrefix(msg, "unknown shorthand flag"):
		return newCLIError(ExitCodeCLIArgumentError, err)
	case strings.Contains(msg, "arg(s)"), strings.Contains(msg, "requires at least"),
		strings.Contains(msg, "accepts at most"), strings.Contains(msg, "accepts between"),
		strings.Contains(msg, "invalid argument"):
		return newCLIError(ExitCodeCLIArgumentError, err)
	default:
		return err
	}
}
