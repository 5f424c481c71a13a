package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// fileDocument mirrors [Config]'s shape for YAML decoding; every field
// takes its YAML zero value when absent, which [documentToPartial]
// then treats as "unset" exactly like [Partial] does.
type fileDocument struct {
	Output     OutputConfig     `yaml:"output"`
	Parser     ParserConfig     `yaml:"parser"`
	XML        XMLConfig        `yaml:"xml"`
	Java       JavaConfig       `yaml:"java"`
	OpenAPI    OpenAPIConfig    `yaml:"openapi"`
	Audit      *fileAuditDoc    `yaml:"audit"`
	Validation *fileValDoc      `yaml:"validation"`
	LogLevel   string           `yaml:"logging-level"`
	Parallel   *fileParallelDoc `yaml:"parallel"`
}

type fileAuditDoc struct {
	HashOutputs     *bool `yaml:"hash-outputs"`
	RedactFilePaths *bool `yaml:"redact-file-paths"`
}

type fileValDoc struct {
	RedactPayload *bool                `yaml:"redact-payload"`
	Consistency   *fileConsistencyDoc `yaml:"consistency"`
}

type fileConsistencyDoc struct {
	StrictMode       *bool             `yaml:"strict-mode"`
	TypeMappingRules map[string]string `yaml:"type-mapping-rules"`
	IgnoreFields     []string          `yaml:"ignore-fields"`
}

type fileParallelDoc struct {
	Generators *bool `yaml:"generators"`
}

// LoadFile reads a YAML configuration document at path and returns the
// [Partial] override layer it describes: the middle layer between
// defaults and CLI flags.
func LoadFile(path string) (Partial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Partial{}, newConfigError(fmt.Sprintf("read config file %q", path), err)
	}

	var doc fileDocument

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Partial{}, newConfigError(fmt.Sprintf("parse config file %q", path), err)
	}

	return documentToPartial(doc), nil
}

func documentToPartial(doc fileDocument) Partial {
	p := Partial{
		OutputRootDir:         doc.Output.RootDir,
		ParserMaxNestingDepth: doc.Parser.MaxNestingDepth,
		XMLNamespaceInbound:   doc.XML.Namespace.Inbound,
		XMLNamespaceOutbound:  doc.XML.Namespace.Outbound,
		XMLGroupID:            doc.XML.Project.GroupID,
		XMLArtifactID:         doc.XML.Project.ArtifactID,
		JavaPackageName:       doc.Java.PackageName,
		OpenAPIVersion:        doc.OpenAPI.Version,
		OpenAPISplitStrategy:  doc.OpenAPI.SplitStrategy,
		LogLevel:              doc.LogLevel,
	}

	if doc.Java.UseLombok {
		p.JavaUseLombok = boolPtr(true)
	}

	if doc.Audit != nil {
		p.AuditHashOutputs = doc.Audit.HashOutputs
		p.AuditRedactFilePaths = doc.Audit.RedactFilePaths
	}

	if doc.Validation != nil {
		p.ValidationRedactPayload = doc.Validation.RedactPayload

		if doc.Validation.Consistency != nil {
			p.ValidationStrictMode = doc.Validation.Consistency.StrictMode
			p.ValidationTypeMappingRules = doc.Validation.Consistency.TypeMappingRules
			p.ValidationIgnoreFields = doc.Validation.Consistency.IgnoreFields
		}
	}

	if doc.Parallel != nil {
		p.ParallelGenerators = doc.Parallel.Generators
	}

	return p
}

func boolPtr(b bool) *bool {
	return &b
}
