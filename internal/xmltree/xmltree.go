// Package xmltree converts raw XML into a generic nested map tree and
// provides safe traversal over it. ADT payloads use deep namespaced element
// nesting with attribute-carried data, and the same element may appear once
// or repeated; the helpers here make both cases look the same to callers.
package xmltree

import (
	"encoding/xml"
	"strings"

	"github.com/clbanning/mxj/v2"
	"golang.org/x/net/html/charset"

	"sapadt/internal/adt"
)

// AttrPrefix marks attribute keys in the parsed tree.
const AttrPrefix = "@"

// textKey is where mxj stores element text when attributes are present.
const textKey = "#text"

func init() {
	// SAP systems emit payloads in whatever codepage the backend runs, and
	// the XML is not always strictly well formed. The decoder is shared
	// process-wide because mxj configuration is global.
	dec := xml.NewDecoder(nil)
	dec.Strict = false
	dec.CharsetReader = charset.NewReaderLabel
	mxj.CustomDecoder = dec

	mxj.SetAttrPrefix(AttrPrefix)
}

// Tree is a parsed XML document: element names map to either a text leaf
// (string), a nested Tree, or a []any of either when the tag repeats.
type Tree = map[string]any

// Parse converts XML text into a Tree.
func Parse(data []byte) (Tree, error) {
	m, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, adt.NewError(adt.XMLMalformed, "malformed XML", err)
	}
	return Tree(m), nil
}

// Node walks named children in order and returns the value at the end of the
// path, or nil the moment any segment is absent. A text leaf collapses to its
// string; anything else is returned as-is. Segments match like AttrLocal
// does: the decoder resolves namespaces and keys elements by local name, so a
// prefixed segment such as "adtcore:objectReference" also matches the key
// "objectReference", and vice versa for trees that kept the prefix.
func Node(tree any, path ...string) any {
	current := tree
	for _, segment := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		next, ok := lookup(m, segment)
		if !ok {
			return nil
		}
		current = next
	}
	return collapseText(current)
}

// lookup resolves one path segment against a node's keys: exact match first,
// then by local name in either direction. Attribute keys never match an
// element segment.
func lookup(m map[string]any, segment string) (any, bool) {
	if v, ok := m[segment]; ok {
		return v, true
	}
	local := segment
	if i := strings.Index(segment, ":"); i >= 0 {
		local = segment[i+1:]
	}
	if v, ok := m[local]; ok {
		return v, true
	}
	for key, v := range m {
		if strings.HasPrefix(key, AttrPrefix) {
			continue
		}
		if strings.HasSuffix(key, ":"+local) {
			return v, true
		}
	}
	return nil, false
}

// collapseText unwraps an element that carries only text (plus attributes)
// down to its text content when addressed directly as a string leaf.
func collapseText(v any) any {
	if s, ok := v.(string); ok {
		return s
	}
	return v
}

// Text returns the text content of a node: the node itself for a string
// leaf, the "#text" entry for an element that also carries attributes, or ""
// when there is no text.
func Text(node any) string {
	switch n := node.(type) {
	case string:
		return n
	case map[string]any:
		if s, ok := n[textKey].(string); ok {
			return s
		}
	}
	return ""
}

// Attributes returns a node's attributes as a flat string map. Both parsed
// dialects are recognized: keys carrying the attribute prefix directly on
// the node, and a nested "attributes" map. Non-element inputs yield an empty
// map so call sites never branch on node shape.
func Attributes(node any) map[string]string {
	attrs := make(map[string]string)

	m, ok := node.(map[string]any)
	if !ok {
		return attrs
	}

	for key, value := range m {
		if len(key) > len(AttrPrefix) && key[:len(AttrPrefix)] == AttrPrefix {
			if s, ok := value.(string); ok {
				attrs[key[len(AttrPrefix):]] = s
			}
		}
	}

	if nested, ok := m["attributes"].(map[string]any); ok {
		for key, value := range nested {
			if s, ok := value.(string); ok {
				attrs[key] = s
			}
		}
	}

	return attrs
}

// AttrLocal returns the attribute whose local name (namespace prefix
// stripped) matches name. ADT payloads qualify most attributes with the
// adtcore: prefix but the prefix choice belongs to the emitting system.
func AttrLocal(node any, name string) string {
	attrs := Attributes(node)
	if v, ok := attrs[name]; ok {
		return v
	}
	for key, v := range attrs {
		if strings.HasSuffix(key, ":"+name) {
			return v
		}
	}
	return ""
}

// AsArray resolves a path and coerces the result to a slice: an absent node
// becomes an empty slice, a single node a one-element slice, and a repeated
// node passes through. Iterating any element the schema allows to repeat
// must go through this coercion, because a single occurrence and a repeated
// one parse into different shapes.
func AsArray(tree any, path ...string) []any {
	node := Node(tree, path...)
	switch n := node.(type) {
	case nil:
		return nil
	case []any:
		return n
	default:
		return []any{n}
	}
}
