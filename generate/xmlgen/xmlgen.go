package xmlgen

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/mqspecgen/msgforge/generate"
	"github.com/mqspecgen/msgforge/spec"
)

// Direction selects which bean document is being produced.
type Direction string

const (
	Inbound  Direction = "inbound"
	Outbound Direction = "outbound"
)

var _ generate.Generator = (*Generator)(nil)

// Generator produces the inbound and outbound XML bean documents.
type Generator struct{}

// New returns an XML [generate.Generator].
func New() *Generator {
	return &Generator{}
}

func (g *Generator) Name() string {
	return "xml"
}

// Generate emits "outbound-bean.xml" and "inbound-bean.xml" under the
// caller's xml/ output directory.
func (g *Generator) Generate(it *spec.IntermediateTree, cfg generate.GenConfig) (map[string][]byte, error) {
	outbound, err := renderDocument(it.Request, Outbound, cfg)
	if err != nil {
		return nil, err
	}

	files := map[string][]byte{
		"outbound-bean.xml": outbound,
	}

	if len(it.Response) > 0 {
		inbound, err := renderDocument(it.Response, Inbound, cfg)
		if err != nil {
			return nil, err
		}

		files["inbound-bean.xml"] = inbound
	}

	return files, nil
}

func renderDocument(group spec.FieldGroup, dir Direction, cfg generate.GenConfig) ([]byte, error) {
	namespace := cfg.XML.NamespaceOutbound
	if dir == Inbound {
		namespace = cfg.XML.NamespaceInbound
	}

	root := newNode("beans")
	root.attr("xmlns", namespace)

	for _, n := range group {
		child, err := renderNode(n, cfg)
		if err != nil {
			return nil, err
		}

		root.addChild(child)
	}

	var buf bytes.Buffer

	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("xmlgen: encode %s bean document: %w", dir, err)
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

func renderNode(n *spec.FieldNode, cfg generate.GenConfig) (*node, error) {
	switch {
	case n.IsTransitory:
		return renderTransitory(n), nil
	case n.IsArray:
		return renderRepeating(n, cfg)
	case n.IsObject:
		return renderComposite(n, cfg)
	default:
		return renderData(n), nil
	}
}

func renderData(n *spec.FieldNode) *node {
	el := newNode("DataField")
	el.attr("name", n.NormalizedName)
	el.attr("required", strconv.FormatBool(n.IsRequired()))

	if n.Length != nil {
		el.attr("length", strconv.Itoa(*n.Length))
	}

	applyDataTypeAttrs(el, n.DataType)

	if n.DefaultValue != "" {
		el.attr("default", n.DefaultValue)
	}

	if n.EnumConstraint != "" {
		el.attr("enum", n.EnumConstraint)
	}

	return el
}

func renderTransitory(n *spec.FieldNode) *node {
	el := newNode("DataField")
	el.attr("name", n.NormalizedName)
	el.attr("transitory", "true")

	if n.GroupID != "" {
		el.attr("default", n.GroupID)
		el.attr("converter", "string")

		return el
	}

	el.attr("default", strconv.Itoa(n.FixedCount))
	el.attr("align", "right")
	el.attr("pad", "0")
	el.attr("converter", "counter")

	return el
}

func renderComposite(n *spec.FieldNode, cfg generate.GenConfig) (*node, error) {
	el := newNode("CompositeField")
	el.attr("name", n.NormalizedName)
	el.attr("required", strconv.FormatBool(n.IsRequired()))
	el.attr("forType", forType(cfg, n.ClassName))

	for _, child := range n.Children {
		c, err := renderNode(child, cfg)
		if err != nil {
			return nil, err
		}

		el.addChild(c)
	}

	return el, nil
}

func renderRepeating(n *spec.FieldNode, cfg generate.GenConfig) (*node, error) {
	el := newNode("RepeatingField")
	el.attr("name", n.NormalizedName)
	el.attr("required", strconv.FormatBool(n.IsRequired()))
	el.attr("fixedCount", strconv.Itoa(n.FixedCount))
	el.attr("forType", forType(cfg, n.ClassName))

	for _, child := range n.Children {
		c, err := renderNode(child, cfg)
		if err != nil {
			return nil, err
		}

		el.addChild(c)
	}

	return el, nil
}

func forType(cfg generate.GenConfig, className string) string {
	return strings.Join([]string{cfg.XML.GroupID, cfg.XML.ArtifactID, className}, ".")
}

// applyDataTypeAttrs sets alignment, padding, and converter attributes
// by declared type: numeric right-aligns with zero padding, textual
// left-aligns with space padding, amount/currency gets a dedicated
// BigDecimal-backed converter.
func applyDataTypeAttrs(el *node, dataType string) {
	switch dataTypeKind(dataType) {
	case kindAmount:
		el.attr("align", "right")
		el.attr("pad", "0")
		el.attr("converter", "amount")
		el.attr("forType", "java.math.BigDecimal")
	case kindNumeric:
		el.attr("align", "right")
		el.attr("pad", "0")
		el.attr("converter", "numeric")
	default:
		el.attr("align", "left")
		el.attr("pad", " ")
		el.attr("converter", "string")
	}
}

type kind int

const (
	kindText kind = iota
	kindNumeric
	kindAmount
)

func dataTypeKind(dataType string) kind {
	upper := strings.ToUpper(strings.TrimSpace(dataType))

	switch {
	case strings.HasPrefix(upper, "AMT"), strings.HasPrefix(upper, "CUR"):
		return kindAmount
	case strings.HasPrefix(upper, "N"):
		return kindNumeric
	default:
		return kindText
	}
}
