package xmlgen

import "encoding/xml"

// node is a minimal generic XML element used to assemble bean documents
// whose child element names vary by projection rule (DataField,
// CompositeField, RepeatingField). encoding/xml has no direct support
// for heterogeneous child lists keyed by runtime-chosen tag name, so
// node implements [xml.Marshaler] itself rather than relying on struct
// tags.
type node struct {
	name     string
	attrs    []xml.Attr
	children []*node
}

func newNode(name string) *node {
	return &node{name: name}
}

func (n *node) attr(name, value string) *node {
	n.attrs = append(n.attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})

	return n
}

func (n *node) addChild(c *node) {
	n.children = append(n.children, c)
}

func (n *node) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: n.name}, Attr: n.attrs}

	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, c := range n.children {
		if err := e.Encode(c); err != nil {
			return err
		}
	}

	return e.EncodeToken(start.End())
}
