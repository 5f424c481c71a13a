// Package audit implements the correlated, structured audit logger:
// one event stream per run, fanned out to a machine-readable JSON-lines
// sink and a human-readable text sink via
// [github.com/mqspecgen/msgforge/internal/logging.Publisher] in its
// lossless mode, so a slow sink never drops an audit event.
package audit
