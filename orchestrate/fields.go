package orchestrate

import (
	"strings"

	"github.com/mqspecgen/msgforge/spec"
	"github.com/mqspecgen/msgforge/validate"
)

// messageFields is the per-message-type triple of normalized field
// maps the consistency validator compares.
type messageFields struct {
	xml     validate.ArtifactFields
	pojo    validate.ArtifactFields
	openAPI validate.ArtifactFields
}

// extractFields normalizes every generated artifact family for both the
// request message (always present) and the response message (only when
// it.Response is non-empty), returning any structural findings
// collected along the way.
func extractFields(it *spec.IntermediateTree, javaPackage string, xmlFiles, javaFiles, openAPIFiles map[string][]byte) (request messageFields, response *messageFields, findings []validate.Finding, err error) {
	className := spec.ClassName(it.Metadata.OperationID)

	request, reqFindings, err := extractMessageFields(className+"Request", javaPackage, "outbound-bean.xml", xmlFiles, javaFiles, openAPIFiles)
	if err != nil {
		return messageFields{}, nil, nil, err
	}

	findings = append(findings, reqFindings...)

	if len(it.Response) == 0 {
		return request, nil, findings, nil
	}

	respFields, respFindings, err := extractMessageFields(className+"Response", javaPackage, "inbound-bean.xml", xmlFiles, javaFiles, openAPIFiles)
	if err != nil {
		return messageFields{}, nil, nil, err
	}

	findings = append(findings, respFindings...)

	return request, &respFields, findings, nil
}

func extractMessageFields(schemaName, javaPackage, xmlDocName string, xmlFiles, javaFiles, openAPIFiles map[string][]byte) (messageFields, []validate.Finding, error) {
	var findings []validate.Finding

	xmlFields, xmlFindings, err := extractXML(xmlFiles, xmlDocName)
	if err != nil {
		return messageFields{}, nil, err
	}

	findings = append(findings, xmlFindings...)

	rootClassPath := classPath(javaPackage, schemaName)

	pojoFields, pojoFindings, err := validate.ExtractPOJOFields(javaFiles, rootClassPath)
	if err != nil {
		return messageFields{}, nil, err
	}

	findings = append(findings, pojoFindings...)

	openAPIFields, openAPIFindings, err := validate.ExtractOpenAPIFields(openAPIFiles, schemaName)
	if err != nil {
		return messageFields{}, nil, err
	}

	findings = append(findings, openAPIFindings...)

	return messageFields{xml: xmlFields, pojo: pojoFields, openAPI: openAPIFields}, findings, nil
}

// extractXML tolerates a missing document (the response-direction bean
// file is never emitted when it.Response is empty).
func extractXML(xmlFiles map[string][]byte, docName string) (validate.ArtifactFields, []validate.Finding, error) {
	doc, ok := xmlFiles[docName]
	if !ok {
		return validate.ArtifactFields{}, nil, nil
	}

	return validate.ExtractXMLFields(doc)
}

// classPath mirrors pojogen's own package-to-path derivation exactly,
// since the validator must address the same file the generator wrote.
func classPath(packageName, className string) string {
	dir := strings.ReplaceAll(packageName, ".", "/")

	return dir + "/" + className + ".java"
}

// prefixFindings rewrites every finding's Path with a "<prefix>."
// qualifier, letting request- and response-scoped consistency findings
// share one report without colliding on field name (e.g. both messages
// declaring a top-level "amount" field).
func prefixFindings(findings []validate.Finding, prefix string) []validate.Finding {
	out := make([]validate.Finding, len(findings))

	for i, f := range findings {
		if f.Path != "" {
			f.Path = prefix + "." + f.Path
		}

		out[i] = f
	}

	return out
}
