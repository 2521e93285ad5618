// Package xmlattr locates elements in an XML document by local name and
// returns their attributes in document order.
package xmlattr

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	speederrors "github.com/princespaghetti/speedcfg/internal/errors"
)

// Attribute is a single name/value pair taken from an element.
type Attribute struct {
	Name  string
	Value string
}

// Group is the ordered attribute list of one element. Order is document
// order and duplicate names are kept as encountered.
type Group []Attribute

// Get returns the value of the first attribute called name.
func (g Group) Get(name string) (string, bool) {
	for _, a := range g {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Names returns the attribute names in order.
func (g Group) Names() []string {
	names := make([]string, len(g))
	for i, a := range g {
		names[i] = a.Name
	}
	return names
}

// MarshalJSON renders the group as a JSON object with keys in document order.
func (g Group) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, a := range g {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(a.Value)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// MarshalYAML renders the group as a mapping node so that key order
// survives encoding.
func (g Group) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, a := range g {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: a.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: a.Value},
		)
	}
	return node, nil
}

// Finder looks up the attributes of a named element in a document.
type Finder interface {
	FindAttributes(doc, name string) (Group, error)
}

// FinderFunc adapts a plain function to Finder.
type FinderFunc func(doc, name string) (Group, error)

// FindAttributes calls f(doc, name).
func (f FinderFunc) FindAttributes(doc, name string) (Group, error) {
	return f(doc, name)
}

// Default is the stateless Finder backed by FindAttributes.
var Default Finder = FinderFunc(FindAttributes)

// FindAttributes parses doc and returns the attributes of the first element
// whose local name is name. Every call parses from the start of doc.
// Prefixed attributes keep their prefix ("x:ip", "xmlns:x") so that names
// from different namespaces stay distinct.
//
// The whole document is scanned even after a match, so malformed markup is
// reported for every lookup regardless of where the target element sits.
// A missing element wraps ErrElementNotFound; bad markup wraps
// ErrMalformedXML together with the decoder's syntax error.
func FindAttributes(doc, name string) (Group, error) {
	op := "find element " + name
	dec := xml.NewDecoder(strings.NewReader(doc))

	var (
		found  Group
		ok     bool
		scopes []map[string]string // namespace URL -> prefix, innermost last
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, speederrors.XML(op, fmt.Errorf("%w: %w", speederrors.ErrMalformedXML, err))
		}
		if ok {
			continue
		}
		switch t := tok.(type) {
		case xml.StartElement:
			scopes = append(scopes, prefixBindings(t.Attr))
			if t.Name.Local != name {
				continue
			}
			found = make(Group, 0, len(t.Attr))
			for _, a := range t.Attr {
				found = append(found, Attribute{Name: qualifiedName(a.Name, scopes), Value: a.Value})
			}
			ok = true
		case xml.EndElement:
			scopes = scopes[:len(scopes)-1]
		}
	}

	if !ok {
		return nil, speederrors.XML(op, speederrors.ErrElementNotFound)
	}
	return found, nil
}

const xmlNamespaceURL = "http://www.w3.org/XML/1998/namespace"

// prefixBindings collects the xmlns:prefix declarations of one element.
func prefixBindings(attrs []xml.Attr) map[string]string {
	var m map[string]string
	for _, a := range attrs {
		if a.Name.Space == "xmlns" {
			if m == nil {
				m = make(map[string]string)
			}
			m[a.Value] = a.Name.Local
		}
	}
	return m
}

// qualifiedName turns the decoder's namespace URL back into the prefix used
// in the document. Unbound prefixes are left in Space by the decoder and
// pass through unchanged.
func qualifiedName(n xml.Name, scopes []map[string]string) string {
	switch n.Space {
	case "":
		return n.Local
	case "xmlns":
		return "xmlns:" + n.Local
	case xmlNamespaceURL:
		return "xml:" + n.Local
	}
	for i := len(scopes) - 1; i >= 0; i-- {
		if prefix, bound := scopes[i][n.Space]; bound {
			return prefix + ":" + n.Local
		}
	}
	return n.Space + ":" + n.Local
}
