package orchestrate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mqspecgen/msgforge/audit"
	"github.com/mqspecgen/msgforge/generate"
	"github.com/mqspecgen/msgforge/internal/config"
	"github.com/mqspecgen/msgforge/output"
	"github.com/mqspecgen/msgforge/spec"
	"github.com/mqspecgen/msgforge/validate"
	"github.com/mqspecgen/msgforge/workbook"
)

// Options configures one [Run].
type Options struct {
	// SourcePath is the primary workbook.
	SourcePath string
	// SharedHeaderPath is an optional separately supplied shared-header
	// workbook.
	SharedHeaderPath string
	// Config is the fully merged configuration (internal/config).
	Config config.Config
	// Payload, when non-nil, triggers the OPTIONAL_PAYLOAD phase.
	Payload []byte
	// PayloadMessageType selects which message the Payload is checked
	// against: "request" (default) or "response".
	PayloadMessageType string
}

// Result carries every artifact of a successful (or partially completed,
// in the failure case) run.
type Result struct {
	IT                  *spec.IntermediateTree
	ConsistencyFindings []validate.Finding
	PayloadReport       *validate.PayloadReport
	Manifest            *output.Manifest
	CorrelationID       string
	ExitCode            int
}

// Run sequences PARSE, GENERATE, PER_ARTIFACT_VALIDATE, CONSISTENCY,
// OPTIONAL_PAYLOAD, OUTPUT_COMMIT, and AUDIT_FINALIZE, opening the
// transaction before GENERATE and committing it only once every
// validation gate passes. An error in PARSE, GENERATE,
// PER_ARTIFACT_VALIDATE, OPTIONAL_PAYLOAD or staging is fatal and later
// phases never run. Consistency and payload findings do not stop the
// pipeline early: the OUTPUT_COMMIT gate raises them (exit 63 or 64)
// and rolls the transaction back.
func Run(opts Options) (*Result, error) {
	opts.Config.Java.PackageName = derivedJavaPackage(opts.Config)

	jsonLog, textLog, auditLogger := newAuditLogger(opts.Config)
	defer func() { _ = auditLogger.Close() }()

	auditLogger.Start(inputPaths(opts))
	recordInputHashes(auditLogger, opts)

	result := &Result{CorrelationID: auditLogger.CorrelationID().String()}

	it, txn, err := runPipeline(opts, auditLogger, result)

	// The terminal run event must land before the logger is closed and
	// the trail flushed to disk.
	if err != nil {
		result.ExitCode = ExitCode(err)
		auditLogger.Failure(err, result.ExitCode)
	} else {
		result.IT = it
		auditLogger.Complete(0)
	}

	finalizeAudit(auditLogger, opts.Config, jsonLog, textLog, txn)

	return result, err
}

// runPipeline runs every phase up to and including commit, returning the
// parsed tree and the transaction so [Run] can finalize the audit trail
// around it. It is split out from [Run] purely so every early return
// still reaches the audit finalization step.
func runPipeline(opts Options, auditLogger *audit.Logger, result *Result) (*spec.IntermediateTree, *output.Transaction, error) {
	it, err := runParsePhase(opts, auditLogger)
	if err != nil {
		return nil, nil, err
	}

	txn, err := output.New(opts.Config.Output.RootDir)
	if err != nil {
		return it, nil, err
	}

	genFiles, err := runGeneratePhase(it, opts.Config, auditLogger)
	if err != nil {
		_ = txn.Rollback()
		auditLogger.TransactionState(string(output.RolledBack))

		return it, txn, err
	}

	findings, err := runPerArtifactPhase(it, opts.Config, genFiles, auditLogger)
	if err != nil {
		_ = txn.Rollback()
		auditLogger.TransactionState(string(output.RolledBack))

		return it, txn, err
	}

	consistencyFindings := runConsistencyPhase(it, opts.Config, genFiles, auditLogger)
	result.ConsistencyFindings = consistencyFindings
	consistencyPassed := !validate.HasErrors(consistencyFindings)

	payloadPassed := true

	if len(opts.Payload) > 0 {
		report, perr := runPayloadPhase(it, opts, auditLogger)
		if perr != nil {
			_ = txn.Rollback()
			auditLogger.TransactionState(string(output.RolledBack))

			return it, txn, perr
		}

		result.PayloadReport = report
		payloadPassed = len(report.Findings) == 0
	}

	if err := stageOutputs(txn, it, genFiles, findings, consistencyFindings, result.PayloadReport, auditLogger); err != nil {
		_ = txn.Rollback()
		auditLogger.TransactionState(string(output.RolledBack))

		return it, txn, err
	}

	manifest, err := commitPhase(txn, consistencyPassed, payloadPassed, auditLogger)
	if err != nil {
		return it, txn, err
	}

	result.Manifest = manifest

	return it, txn, nil
}

func runParsePhase(opts Options, auditLogger *audit.Logger) (*spec.IntermediateTree, error) {
	auditLogger.PhaseStarted("parse")

	main, err := workbook.Open(opts.SourcePath)
	if err != nil {
		auditLogger.PhaseCompleted("parse", 1)

		return nil, err
	}
	defer main.Close()

	var shared *workbook.Workbook

	if opts.SharedHeaderPath != "" {
		shared, err = workbook.Open(opts.SharedHeaderPath)
		if err != nil {
			auditLogger.PhaseCompleted("parse", 1)

			return nil, err
		}
		defer shared.Close()
	}

	it, err := spec.Parse(main, shared, spec.Options{
		SourcePath:       opts.SourcePath,
		SharedHeaderPath: opts.SharedHeaderPath,
		MaxNestingDepth:  opts.Config.Parser.MaxNestingDepth,
	})
	if err != nil {
		auditLogger.PhaseCompleted("parse", 1)

		return nil, err
	}

	auditLogger.PhaseCompleted("parse", 0)

	return it, nil
}

// runGeneratePhase invokes every registered [generate.Generator]. When
// config.Parallel.Generators is enabled the three generators run
// concurrently via [errgroup.Group], since each reads the tree
// read-only and writes a disjoint output key.
func runGeneratePhase(it *spec.IntermediateTree, cfg config.Config, auditLogger *audit.Logger) (map[string]map[string][]byte, error) {
	auditLogger.PhaseStarted("generate")

	registry := DefaultRegistry()
	genCfg := toGenConfig(cfg)

	results := make(map[string]map[string][]byte, len(registry))

	if cfg.Parallel.Generators {
		var (
			group errgroup.Group
			mu    sync.Mutex
		)

		for key, ctor := range registry {
			key, ctor := key, ctor

			group.Go(func() error {
				files, err := ctor().Generate(it, genCfg)
				if err != nil {
					return err
				}

				mu.Lock()
				results[key] = files
				mu.Unlock()

				return nil
			})
		}

		if err := group.Wait(); err != nil {
			auditLogger.PhaseCompleted("generate", 1)

			return nil, err
		}

		auditLogger.PhaseCompleted("generate", 0)

		return results, nil
	}

	for key, ctor := range registry {
		files, err := ctor().Generate(it, genCfg)
		if err != nil {
			auditLogger.PhaseCompleted("generate", 1)

			return nil, err
		}

		results[key] = files
	}

	auditLogger.PhaseCompleted("generate", 0)

	return results, nil
}

func runPerArtifactPhase(it *spec.IntermediateTree, cfg config.Config, genFiles map[string]map[string][]byte, auditLogger *audit.Logger) ([]validate.Finding, error) {
	auditLogger.PhaseStarted("per-artifact-validate")

	_, _, findings, err := extractFields(it, cfg.Java.PackageName, genFiles["xml"], genFiles["java"], genFiles["openapi"])
	if err != nil {
		auditLogger.PhaseCompleted("per-artifact-validate", 1)

		return nil, err
	}

	if validate.HasErrors(findings) {
		auditLogger.PhaseCompleted("per-artifact-validate", len(findings))

		return findings, &validate.ValidationError{Category: "per-artifact", Findings: findings}
	}

	auditLogger.PhaseCompleted("per-artifact-validate", len(findings))

	return findings, nil
}

func runConsistencyPhase(it *spec.IntermediateTree, cfg config.Config, genFiles map[string]map[string][]byte, auditLogger *audit.Logger) []validate.Finding {
	auditLogger.PhaseStarted("consistency")

	request, response, _, err := extractFields(it, cfg.Java.PackageName, genFiles["xml"], genFiles["java"], genFiles["openapi"])
	if err != nil {
		auditLogger.PhaseCompleted("consistency", 1)

		return []validate.Finding{{Category: "EXTRACTION", Severity: validate.SeverityError, Message: err.Error()}}
	}

	consistencyCfg := validate.ConsistencyConfig{
		StrictMode:       cfg.Validation.Consistency.StrictMode,
		TypeMappingRules: cfg.Validation.Consistency.TypeMappingRules,
		IgnoreFields:     cfg.Validation.Consistency.IgnoreFields,
	}

	findings := prefixFindings(validate.CheckConsistency(request.xml, request.pojo, request.openAPI, consistencyCfg), "request")

	if response != nil {
		findings = append(findings, prefixFindings(validate.CheckConsistency(response.xml, response.pojo, response.openAPI, consistencyCfg), "response")...)
	}

	auditLogger.PhaseCompleted("consistency", len(findings))

	return findings
}

func runPayloadPhase(it *spec.IntermediateTree, opts Options, auditLogger *audit.Logger) (*validate.PayloadReport, error) {
	auditLogger.PhaseStarted("payload")

	group := messageGroup(it, opts.PayloadMessageType)

	combined := append(append(spec.FieldGroup{}, it.SharedHeader...), group...)

	table, err := validate.ComputeOffsets(combined)
	if err != nil {
		auditLogger.PhaseCompleted("payload", 1)

		return nil, err
	}

	constraints := validate.BuildConstraints(combined)

	report := validate.CheckPayload(opts.Payload, table, constraints, validate.PayloadConfig{
		RedactPayload: opts.Config.Validation.RedactPayload,
	})

	auditLogger.PhaseCompleted("payload", len(report.Findings))

	return report, nil
}

func commitPhase(txn *output.Transaction, consistencyPassed, payloadPassed bool, auditLogger *audit.Logger) (*output.Manifest, error) {
	auditLogger.PhaseStarted("output-commit")

	if err := txn.CheckValidationGates(consistencyPassed, payloadPassed); err != nil {
		_ = txn.Rollback()
		auditLogger.TransactionState(string(output.RolledBack))
		auditLogger.PhaseCompleted("output-commit", 1)

		return nil, err
	}

	manifest, err := txn.Commit()
	if err != nil {
		// Precondition failures leave the transaction PENDING with its
		// staging directory intact; clean it up before surfacing.
		if txn.State() == output.Pending {
			_ = txn.Rollback()
		}

		auditLogger.TransactionState(string(txn.State()))
		auditLogger.PhaseCompleted("output-commit", 1)

		return nil, err
	}

	auditLogger.TransactionState(string(output.Committed))
	auditLogger.PhaseCompleted("output-commit", 0)

	return manifest, nil
}

func messageGroup(it *spec.IntermediateTree, messageType string) spec.FieldGroup {
	if messageType == "response" {
		return it.Response
	}

	return it.Request
}

// derivedJavaPackage fills java.package-name when unset: the XML
// project coordinates give <group-id>.<artifact-id>, with the artifact
// id reduced to a legal package segment.
func derivedJavaPackage(cfg config.Config) string {
	if cfg.Java.PackageName != "" {
		return cfg.Java.PackageName
	}

	segment := packageSegment(cfg.XML.Project.ArtifactID)

	switch {
	case cfg.XML.Project.GroupID == "" && segment == "":
		return "generated"
	case cfg.XML.Project.GroupID == "":
		return segment
	case segment == "":
		return cfg.XML.Project.GroupID
	default:
		return cfg.XML.Project.GroupID + "." + segment
	}
}

// packageSegment lowercases s and strips everything that cannot appear
// in a Java package segment.
func packageSegment(s string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func toGenConfig(cfg config.Config) generate.GenConfig {
	return generate.GenConfig{
		XML: generate.XMLConfig{
			NamespaceInbound:  cfg.XML.Namespace.Inbound,
			NamespaceOutbound: cfg.XML.Namespace.Outbound,
			GroupID:           cfg.XML.Project.GroupID,
			ArtifactID:        cfg.XML.Project.ArtifactID,
		},
		Java: generate.JavaConfig{
			PackageName: cfg.Java.PackageName,
			UseLombok:   cfg.Java.UseLombok,
		},
		OpenAPI: generate.OpenAPIConfig{
			Version:       cfg.OpenAPI.Version,
			SplitStrategy: generate.SplitStrategy(cfg.OpenAPI.SplitStrategy),
		},
	}
}

// stageOutputs buffers every generated artifact, the intermediate tree,
// the rename table, and the validation reports into txn.
func stageOutputs(txn *output.Transaction, it *spec.IntermediateTree, genFiles map[string]map[string][]byte, perArtifact, consistency []validate.Finding, payload *validate.PayloadReport, auditLogger *audit.Logger) error {
	// Staging walks in sorted order so the manifest's insertion-ordered
	// file list is identical across runs.
	for _, key := range sortedMapKeys(genFiles) {
		files := genFiles[key]

		for _, relPath := range sortedMapKeys(files) {
			full := key + "/" + relPath
			if err := txn.AddOutput(full, files[relPath]); err != nil {
				return err
			}

			auditLogger.RecordOutput(full, files[relPath])
		}
	}

	itJSON, err := marshalIT(it)
	if err != nil {
		return newInternalError("marshal intermediate tree", err)
	}

	if err := txn.AddOutput("intermediate/message-tree.json", itJSON); err != nil {
		return err
	}

	renameEntries := spec.RenameTable(it)
	if err := txn.AddOutput("diff.md", []byte(spec.RenderRenameTableMarkdown(renameEntries))); err != nil {
		return err
	}

	if err := stageValidationReports(txn, perArtifact, consistency, payload); err != nil {
		return err
	}

	return nil
}

func marshalIT(it *spec.IntermediateTree) ([]byte, error) {
	var buf strings.Builder

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")

	if err := enc.Encode(it); err != nil {
		return nil, err
	}

	return []byte(buf.String()), nil
}

type consistencyReport struct {
	Findings []validate.Finding `json:"findings"`
	Passed   bool               `json:"passed"`
}

func stageValidationReports(txn *output.Transaction, perArtifact, consistency []validate.Finding, payload *validate.PayloadReport) error {
	report := consistencyReport{Findings: consistency, Passed: !validate.HasErrors(consistency)}

	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return newInternalError("marshal consistency report", err)
	}

	if err := txn.AddOutput("validation/consistency-report.json", reportJSON); err != nil {
		return err
	}

	if err := txn.AddOutput("validation/consistency-report.md", []byte(renderFindingsMarkdown("Consistency Report", consistency))); err != nil {
		return err
	}

	if err := txn.AddOutput("validation/per-artifact-report.md", []byte(renderFindingsMarkdown("Per-Artifact Report", perArtifact))); err != nil {
		return err
	}

	if payload != nil {
		payloadJSON, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return newInternalError("marshal payload report", err)
		}

		if err := txn.AddOutput("validation/payload-report.json", payloadJSON); err != nil {
			return err
		}
	}

	return nil
}

func renderFindingsMarkdown(title string, findings []validate.Finding) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)

	if len(findings) == 0 {
		b.WriteString("No findings.\n")

		return b.String()
	}

	sorted := make([]validate.Finding, len(findings))
	copy(sorted, findings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	b.WriteString("| Severity | Category | Path | Message |\n|---|---|---|---|\n")

	for _, f := range sorted {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", f.Severity, f.Category, f.Path, f.Message)
	}

	return b.String()
}

func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func inputPaths(opts Options) []string {
	paths := []string{opts.SourcePath}
	if opts.SharedHeaderPath != "" {
		paths = append(paths, opts.SharedHeaderPath)
	}

	return paths
}

func recordInputHashes(auditLogger *audit.Logger, opts Options) {
	if data, err := os.ReadFile(opts.SourcePath); err == nil {
		auditLogger.RecordInput(opts.SourcePath, data)
	}

	if opts.SharedHeaderPath != "" {
		if data, err := os.ReadFile(opts.SharedHeaderPath); err == nil {
			auditLogger.RecordInput(opts.SharedHeaderPath, data)
		}
	}
}

func newAuditLogger(cfg config.Config) (*bytes.Buffer, *bytes.Buffer, *audit.Logger) {
	jsonLog := &bytes.Buffer{}
	textLog := &bytes.Buffer{}

	logger := audit.New(jsonLog, textLog, audit.Config{
		HashOutputs:     cfg.Audit.HashOutputs,
		RedactFilePaths: cfg.Audit.RedactFilePaths,
	})

	return jsonLog, textLog, logger
}

// finalizeAudit writes the accumulated audit trail to an audit
// directory sibling to the output root so it survives a rollback
// (anything staged inside the transaction vanishes with it), and, only
// when the transaction committed, additionally folds the same bytes
// into the committed tree's audit/ subdirectory.
func finalizeAudit(auditLogger *audit.Logger, cfg config.Config, jsonLog, textLog *bytes.Buffer, txn *output.Transaction) {
	_ = auditLogger.Close()

	auditDir := cfg.Output.RootDir + ".audit"

	if err := os.MkdirAll(auditDir, 0o755); err == nil {
		_ = os.WriteFile(filepath.Join(auditDir, "audit-log.json"), jsonLog.Bytes(), 0o644)
		_ = os.WriteFile(filepath.Join(auditDir, "audit-log.txt"), textLog.Bytes(), 0o644)
	}

	if txn != nil && txn.State() == output.Committed {
		_ = os.MkdirAll(filepath.Join(cfg.Output.RootDir, "audit"), 0o755)
		_ = os.WriteFile(filepath.Join(cfg.Output.RootDir, "audit", "audit-log.json"), jsonLog.Bytes(), 0o644)
		_ = os.WriteFile(filepath.Join(cfg.Output.RootDir, "audit", "audit-log.txt"), textLog.Bytes(), 0o644)
	}
}
