package orchestrate_test

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mqspecgen/msgforge/internal/config"
	"github.com/mqspecgen/msgforge/orchestrate"
	"github.com/mqspecgen/msgforge/output"
	"github.com/mqspecgen/msgforge/workbook"
)

// writeSpecWorkbook builds a minimal but complete spec workbook: metadata
// in the fixed cells, a header row, and a small field hierarchy with one
// nested container.
func writeSpecWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), workbook.SheetRequest))

	require.NoError(t, f.SetCellValue(workbook.SheetRequest, "C2", "Create Application"))
	require.NoError(t, f.SetCellValue(workbook.SheetRequest, "C3", "createApplication"))
	require.NoError(t, f.SetCellValue(workbook.SheetRequest, "E3", "1"))

	header := []any{"Level", "Field Name", "Length", "Type", "M/O", "Occurrence"}
	require.NoError(t, f.SetSheetRow(workbook.SheetRequest, "A7", &header))

	rows := [][]any{
		{1, "limit", 5, "N", "M", ""},
		{1, "person:Person", "", "", "M", ""},
		{1, "name", 20, "AN", "M", ""},
		{1, "age", 3, "N", "M", ""},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, 8+i)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(workbook.SheetRequest, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "spec.xlsx")
	require.NoError(t, f.SaveAs(path))

	return path
}

func runConfig(t *testing.T) config.Config {
	t.Helper()

	cfg := config.Defaults()
	cfg.Output.RootDir = filepath.Join(t.TempDir(), "out")
	cfg.XML.Namespace.Inbound = "urn:test:inbound"
	cfg.XML.Namespace.Outbound = "urn:test:outbound"
	cfg.XML.Project.GroupID = "com.example"
	cfg.XML.Project.ArtifactID = "messages"
	cfg.Java.PackageName = "com.example.msg"

	return cfg
}

func TestRun_CommitsConsistentArtifacts(t *testing.T) {
	t.Parallel()

	cfg := runConfig(t)

	result, err := orchestrate.Run(orchestrate.Options{
		SourcePath: writeSpecWorkbook(t),
		Config:     cfg,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	require.NotNil(t, result.Manifest)
	assert.NotEmpty(t, result.CorrelationID)

	for _, f := range result.ConsistencyFindings {
		assert.NotEqual(t, "ERROR", string(f.Severity), f.String())
	}

	// The committed tree carries every artifact family plus the
	// intermediate tree, rename table, and validation reports.
	for _, rel := range []string{
		"xml/outbound-bean.xml",
		"java/com/example/msg/CreateApplicationRequest.java",
		"java/com/example/msg/Person.java",
		"openapi/api.yaml",
		"intermediate/message-tree.json",
		"diff.md",
		"validation/consistency-report.json",
		"output-manifest.json",
	} {
		_, statErr := os.Stat(filepath.Join(cfg.Output.RootDir, rel))
		assert.NoErrorf(t, statErr, "expected committed file %s", rel)
	}

	// Manifest digests match committed file contents exactly.
	manifestData, err := os.ReadFile(filepath.Join(cfg.Output.RootDir, "output-manifest.json"))
	require.NoError(t, err)

	var manifest output.Manifest
	require.NoError(t, json.Unmarshal(manifestData, &manifest))
	require.NotEmpty(t, manifest.Files)

	for _, mf := range manifest.Files {
		data, err := os.ReadFile(filepath.Join(cfg.Output.RootDir, mf.RelativePath))
		require.NoError(t, err)

		sum := sha256.Sum256(data)
		assert.Equal(t, hex.EncodeToString(sum[:]), mf.SHA256, mf.RelativePath)
		assert.Equal(t, int64(len(data)), mf.SizeBytes, mf.RelativePath)
	}

	// Projection discipline: the POJO output never mentions the control
	// fields, while the tree file records provenance for every field.
	pojo, err := os.ReadFile(filepath.Join(cfg.Output.RootDir, "java/com/example/msg/CreateApplicationRequest.java"))
	require.NoError(t, err)
	assert.NotContains(t, string(pojo), "groupId")
	assert.Contains(t, string(pojo), "private Person person;")

	tree, err := os.ReadFile(filepath.Join(cfg.Output.RootDir, "intermediate/message-tree.json"))
	require.NoError(t, err)
	assert.Contains(t, string(tree), `"provenance"`)
}

func TestRun_IsDeterministicAcrossRuns(t *testing.T) {
	t.Parallel()

	source := writeSpecWorkbook(t)

	read := func() map[string]string {
		cfg := runConfig(t)

		_, err := orchestrate.Run(orchestrate.Options{SourcePath: source, Config: cfg})
		require.NoError(t, err)

		files := make(map[string]string)

		walkErr := filepath.WalkDir(cfg.Output.RootDir, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}

			rel, relErr := filepath.Rel(cfg.Output.RootDir, path)
			if relErr != nil {
				return relErr
			}

			data, readErr := os.ReadFile(path)
			if readErr != nil {
				return readErr
			}

			files[rel] = string(data)

			return nil
		})
		require.NoError(t, walkErr)

		return files
	}

	first := read()
	second := read()

	require.Equal(t, keysOf(first), keysOf(second))

	for rel, content := range first {
		// The manifest, the audit trail, and the intermediate tree embed
		// run-scoped timestamps or ids; every other artifact must be
		// byte-identical.
		if rel == "output-manifest.json" || rel == "intermediate/message-tree.json" || strings.HasPrefix(rel, "audit/") {
			continue
		}

		assert.Equalf(t, content, second[rel], "artifact %s differs between identical runs", rel)
	}
}

func TestRun_MissingWorkbookSurfacesInputExitCode(t *testing.T) {
	t.Parallel()

	cfg := runConfig(t)

	result, err := orchestrate.Run(orchestrate.Options{
		SourcePath: filepath.Join(t.TempDir(), "missing.xlsx"),
		Config:     cfg,
	})
	require.Error(t, err)
	assert.Equal(t, workbook.ExitCodeInput, result.ExitCode)
	assert.Equal(t, workbook.ExitCodeInput, orchestrate.ExitCode(err))
}

func keysOf(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
