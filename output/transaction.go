package output

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of a [Transaction]; PENDING transitions
// to exactly one of COMMITTED or ROLLED_BACK, both terminal.
type State string

const (
	Pending    State = "PENDING"
	Committed  State = "COMMITTED"
	RolledBack State = "ROLLED_BACK"
)

// Transaction stages outputs to a private temporary directory, then
// either commits them atomically to targetDir with a manifest, or rolls
// back leaving targetDir untouched.
type Transaction struct {
	id         uuid.UUID
	targetDir  string
	stagingDir string
	state      State
	order      []string
	sizes      map[string]int64
}

// New opens a transaction staging into a fresh hidden directory beside
// targetDir, named with a unique random suffix so concurrent or repeated
// runs never collide; the transaction's own id is a fresh UUID. Staging
// on the same volume as the target keeps the commit a single rename
// rather than a copy.
func New(targetDir string) (*Transaction, error) {
	id := uuid.New()

	parent := filepath.Dir(targetDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, errf(ExitCodeOutput, err, "create target parent directory: %v", err)
	}

	staging, err := os.MkdirTemp(parent, ".msgforge-staging-")
	if err != nil {
		return nil, errf(ExitCodeOutput, err, "create staging directory: %v", err)
	}

	return &Transaction{
		id:         id,
		targetDir:  targetDir,
		stagingDir: staging,
		state:      Pending,
		sizes:      make(map[string]int64),
	}, nil
}

// ID returns the transaction's correlation id.
func (t *Transaction) ID() uuid.UUID {
	return t.id
}

// State returns the transaction's current lifecycle state.
func (t *Transaction) State() State {
	return t.state
}

// AddOutput stages relativePath under the transaction's private
// directory. Fails if the transaction is no longer PENDING.
func (t *Transaction) AddOutput(relativePath string, data []byte) error {
	if t.state != Pending {
		return errf(ExitCodeOutput, nil, "add-output: transaction is %s, not PENDING", t.state)
	}

	full := filepath.Join(t.stagingDir, relativePath)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errf(ExitCodeOutput, err, "stage %q: %v", relativePath, err)
	}

	if err := os.WriteFile(full, data, 0o644); err != nil {
		return errf(ExitCodeOutput, err, "stage %q: %v", relativePath, err)
	}

	if _, seen := t.sizes[relativePath]; !seen {
		t.order = append(t.order, relativePath)
	}

	t.sizes[relativePath] = int64(len(data))

	return nil
}

// CheckValidationGates is the commit gate over the validation results:
// a non-passing consistency or payload result raises with its dedicated
// exit code rather than the generic output codes.
func (t *Transaction) CheckValidationGates(consistencyPassed, payloadPassed bool) error {
	if !consistencyPassed {
		return errf(ExitCodeConsistencyFailed, nil, "consistency validation failed; commit aborted")
	}

	if !payloadPassed {
		return errf(ExitCodeMessageFailed, nil, "payload validation failed; commit aborted")
	}

	return nil
}

// Commit computes the manifest, writes it into the staged tree, then
// atomically relocates the staged tree to targetDir. On any I/O failure
// mid-relocation it attempts rollback and surfaces the corresponding
// exit code.
func (t *Transaction) Commit() (*Manifest, error) {
	if t.state != Pending {
		return nil, errf(ExitCodeOutput, nil, "commit: transaction is %s, not PENDING", t.state)
	}

	if err := t.checkWritableAndSpace(); err != nil {
		return nil, err
	}

	manifest, err := t.buildManifest()
	if err != nil {
		return nil, err
	}

	manifestBytes, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, errf(ExitCodeAtomicCommitFailed, err, "marshal manifest: %v", err)
	}

	if err := os.WriteFile(filepath.Join(t.stagingDir, "output-manifest.json"), manifestBytes, 0o644); err != nil {
		return nil, errf(ExitCodeAtomicCommitFailed, err, "write manifest: %v", err)
	}

	if err := t.relocate(); err != nil {
		if rbErr := t.Rollback(); rbErr != nil {
			return nil, errf(ExitCodeRollbackFailed, rbErr, "commit failed (%v) and rollback failed: %v", err, rbErr)
		}

		return nil, errf(ExitCodeAtomicCommitFailed, err, "relocate staged outputs: %v", err)
	}

	t.state = Committed

	return manifest, nil
}

// Rollback removes the staged tree, leaving targetDir unchanged.
func (t *Transaction) Rollback() error {
	if t.state == Committed {
		return errf(ExitCodeRollbackFailed, nil, "rollback: transaction already COMMITTED")
	}

	if err := os.RemoveAll(t.stagingDir); err != nil {
		return errf(ExitCodeRollbackFailed, err, "remove staging directory: %v", err)
	}

	t.state = RolledBack

	return nil
}

func (t *Transaction) buildManifest() (*Manifest, error) {
	manifest := &Manifest{TransactionID: t.id.String(), Timestamp: time.Now().UTC()}

	for _, relativePath := range t.order {
		full := filepath.Join(t.stagingDir, relativePath)

		data, err := os.ReadFile(full)
		if err != nil {
			return nil, errf(ExitCodeAtomicCommitFailed, err, "read staged file %q: %v", relativePath, err)
		}

		sum := sha256.Sum256(data)

		manifest.Files = append(manifest.Files, ManifestFile{
			RelativePath: relativePath,
			SizeBytes:    int64(len(data)),
			SHA256:       hex.EncodeToString(sum[:]),
		})
	}

	return manifest, nil
}

// relocate moves the staged tree into place as targetDir. Any
// pre-existing targetDir is moved aside first and removed only once the
// rename has succeeded, so a re-run overwrites cleanly and a failed
// rename puts the previous contents back.
func (t *Transaction) relocate() error {
	if err := os.MkdirAll(filepath.Dir(t.targetDir), 0o755); err != nil {
		return fmt.Errorf("create target parent: %w", err)
	}

	previous := t.stagingDir + ".previous"
	if err := os.Rename(t.targetDir, previous); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("move aside target directory: %w", err)
	}

	if err := os.Rename(t.stagingDir, t.targetDir); err != nil {
		_ = os.Rename(previous, t.targetDir)

		return fmt.Errorf("rename staging to target: %w", err)
	}

	_ = os.RemoveAll(previous)

	return nil
}

// checkWritableAndSpace runs the commit preconditions: the target
// location must be writable and the filesystem must have at least the
// aggregate staged size free.
func (t *Transaction) checkWritableAndSpace() error {
	parent := filepath.Dir(t.targetDir)

	if err := os.MkdirAll(parent, 0o755); err != nil {
		return errf(ExitCodeNotWritable, err, "target directory %q is not writable: %v", t.targetDir, err)
	}

	probe := filepath.Join(parent, ".msgforge-writable-probe-"+t.id.String())

	if err := os.WriteFile(probe, []byte{0}, 0o644); err != nil {
		return errf(ExitCodeNotWritable, err, "target directory %q is not writable: %v", t.targetDir, err)
	}

	_ = os.Remove(probe)

	var stat syscall.Statfs_t

	if err := syscall.Statfs(parent, &stat); err != nil {
		return errf(ExitCodeOutput, err, "stat target filesystem: %v", err)
	}

	available := stat.Bavail * uint64(stat.Bsize)

	var aggregate uint64

	for _, size := range t.sizes {
		aggregate += uint64(size)
	}

	if available < aggregate {
		return errf(ExitCodeInsufficientDiskSpace, nil, "insufficient disk space: need %d bytes, have %d available", aggregate, available)
	}

	return nil
}
