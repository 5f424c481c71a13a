package config

// ExitCodeConfig is the exit code for every [Error].
const ExitCodeConfig = 40

// Error reports a missing or invalid configuration option.
type Error struct {
	Message string
	Err     error
}

func newConfigError(message string, cause error) *Error {
	return &Error{Message: message, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExitCode implements the orchestrator's exit-code translation contract.
func (e *Error) ExitCode() int {
	return ExitCodeConfig
}
