// Package orchestrate sequences msgforge's phases and owns the
// transaction boundary: PARSE, GENERATE, PER_ARTIFACT_VALIDATE,
// CONSISTENCY, OPTIONAL_PAYLOAD, OUTPUT_COMMIT, AUDIT_FINALIZE. A phase
// error is fatal and short-circuits the remaining phases, except that
// consistency and payload findings are raised by the OUTPUT_COMMIT gate
// rather than where they are found; [ExitCode] maps any error returned
// by [Run] to its owning exit code.
package orchestrate
