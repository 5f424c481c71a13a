package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mqspecgen/msgforge/internal/logging"
)

// Kind enumerates the structured audit event kinds a [Logger] records.
type Kind string

const (
	KindRunStart         Kind = "run.start"
	KindRunComplete      Kind = "run.complete"
	KindRunFailure       Kind = "run.failure"
	KindInput            Kind = "input"
	KindOutput           Kind = "output"
	KindPhaseStarted     Kind = "phase.started"
	KindPhaseCompleted   Kind = "phase.completed"
	KindTransactionState Kind = "transaction.state"
)

// Event is one structured record in the audit trail, serialized as a
// single JSON-lines entry and as one human-readable text line.
type Event struct {
	Timestamp     time.Time      `json:"timestamp"`
	CorrelationID string         `json:"correlationId"`
	Kind          Kind           `json:"kind"`
	Fields        map[string]any `json:"fields,omitempty"`
}

// Config controls audit hashing and redaction behavior (the audit.*
// options).
type Config struct {
	HashOutputs     bool
	RedactFilePaths bool
}

// Logger records one correlated audit trail per run, fanning each event
// out to a JSON-lines sink and a human-readable text sink concurrently.
// Each sink is driven by its own [logging.Publisher]-backed
// subscription, constructed with [logging.WithLossless] so a slow disk
// write stalls event production rather than silently dropping an audit
// entry: the trail is append-only with no gaps, so the Publisher's
// drop-oldest default would lose history here.
type Logger struct {
	correlationID uuid.UUID
	cfg           Config

	jsonPub *logging.Publisher
	textPub *logging.Publisher

	mu        sync.Mutex
	wg        sync.WaitGroup
	finalized bool
}

// New creates a Logger that mirrors every event to jsonWriter (one JSON
// object per line) and textWriter (one human-readable line), and starts
// pumping each sink's subscription in the background.
func New(jsonWriter, textWriter io.Writer, cfg Config) *Logger {
	l := &Logger{
		correlationID: uuid.New(),
		cfg:           cfg,
		jsonPub:       logging.NewPublisher(logging.WithLossless()),
		textPub:       logging.NewPublisher(logging.WithLossless()),
	}

	l.pump(l.jsonPub, jsonWriter)
	l.pump(l.textPub, textWriter)

	return l
}

// CorrelationID returns the run's fresh correlation id.
func (l *Logger) CorrelationID() uuid.UUID {
	return l.correlationID
}

func (l *Logger) pump(pub *logging.Publisher, w io.Writer) {
	sub := pub.Subscribe()

	l.wg.Add(1)

	go func() {
		defer l.wg.Done()

		for entry := range sub.C() {
			_, _ = w.Write(entry)
		}
	}()
}

// Start records the run.start event with the input file paths.
func (l *Logger) Start(inputPaths []string) {
	paths := make([]string, len(inputPaths))
	for i, p := range inputPaths {
		paths[i] = l.redactPath(p)
	}

	l.emit(KindRunStart, map[string]any{"inputs": paths})
}

// RecordInput records one input file's content hash and size. Inputs
// are always hashed regardless of audit.hash-outputs, which gates
// output hashing only.
func (l *Logger) RecordInput(path string, data []byte) {
	sum := sha256.Sum256(data)

	l.emit(KindInput, map[string]any{
		"path":      l.redactPath(path),
		"sizeBytes": len(data),
		"sha256":    hex.EncodeToString(sum[:]),
	})
}

// RecordOutput records one staged output file, hashing its content only
// when audit.hash-outputs is enabled.
func (l *Logger) RecordOutput(path string, data []byte) {
	fields := map[string]any{
		"path":      l.redactPath(path),
		"sizeBytes": len(data),
	}

	if l.cfg.HashOutputs {
		sum := sha256.Sum256(data)
		fields["sha256"] = hex.EncodeToString(sum[:])
	}

	l.emit(KindOutput, fields)
}

// PhaseStarted records a phase entering execution.
func (l *Logger) PhaseStarted(phase string) {
	l.emit(KindPhaseStarted, map[string]any{"phase": phase})
}

// PhaseCompleted records a phase's completion and its issue count.
func (l *Logger) PhaseCompleted(phase string, issueCount int) {
	l.emit(KindPhaseCompleted, map[string]any{"phase": phase, "issueCount": issueCount})
}

// TransactionState records a transaction lifecycle transition.
func (l *Logger) TransactionState(state string) {
	l.emit(KindTransactionState, map[string]any{"state": state})
}

// Complete records the run.complete event with the final exit code.
func (l *Logger) Complete(exitCode int) {
	l.emit(KindRunComplete, map[string]any{"exitCode": exitCode})
}

// Failure records the run.failure event with the final exit code and
// error message.
func (l *Logger) Failure(err error, exitCode int) {
	l.emit(KindRunFailure, map[string]any{"exitCode": exitCode, "error": err.Error()})
}

// Close finalizes the audit trail: closes both Publishers, which closes
// their subscriptions and lets the pump goroutines drain and exit, then
// waits for both sinks to finish writing. Idempotent; safe to call
// after rollback as well as after commit, since the trail must be
// written either way and the final event tells the two apart.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.finalized {
		return nil
	}

	l.finalized = true

	_ = l.jsonPub.Close()
	_ = l.textPub.Close()
	l.wg.Wait()

	return nil
}

func (l *Logger) emit(kind Kind, fields map[string]any) {
	event := Event{
		Timestamp:     time.Now().UTC(),
		CorrelationID: l.correlationID.String(),
		Kind:          kind,
		Fields:        fields,
	}

	l.writeJSON(event)
	l.writeText(event)
}

func (l *Logger) writeJSON(event Event) {
	line, err := json.Marshal(event)
	if err != nil {
		return
	}

	line = append(line, '\n')
	_, _ = l.jsonPub.Write(line)
}

func (l *Logger) writeText(event Event) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s [%s] %s", event.Timestamp.Format(time.RFC3339), event.CorrelationID, event.Kind)

	for _, k := range sortedKeys(event.Fields) {
		fmt.Fprintf(&b, " %s=%v", k, event.Fields[k])
	}

	b.WriteByte('\n')

	_, _ = l.textPub.Write([]byte(b.String()))
}

// redactPath returns path unchanged, or a stable redacted form when
// audit.redact-file-paths is enabled.
func (l *Logger) redactPath(path string) string {
	if !l.cfg.RedactFilePaths {
		return path
	}

	sum := sha256.Sum256([]byte(path))

	return "redacted:" + hex.EncodeToString(sum[:])[:12]
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
