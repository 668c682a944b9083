package transform

import (
	"strconv"
	"strings"

	"sapadt/internal/xmltree"
)

// The elementinfo service describes tables, structures, and views as a tree
// of element nodes. Each node carries a property bag of key/value entries:
// a fixed set of well-known DDIC keys, plus positionally indexed annotation
// entries (annotationKey.<N> / annotationValue.<N>) that have to be paired
// by index, not by document order.

// Element is one node of the parsed metadata tree.
type Element struct {
	Type       string      `json:"type,omitempty"`
	Name       string      `json:"name,omitempty"`
	Properties PropertyBag `json:"properties"`
	Children   []Element   `json:"children,omitempty"`
}

// PropertyBag separates scalar DDIC properties from annotation pairs.
// ElementProps is nil for pure container nodes; it is present, possibly with
// empty values, whenever the node declared a data type at all.
type PropertyBag struct {
	ElementProps *ElementProps `json:"elementProps,omitempty"`
	Annotations  []Annotation  `json:"annotations"`
}

// ElementProps are the well-known scalar DDIC properties of a field node.
// Numeric fields are pointers: a value the backend sent but that does not
// parse as a number becomes nil, never a failure.
type ElementProps struct {
	IsKey             bool   `json:"isKey"`
	DataElement       string `json:"dataElement,omitempty"`
	DataType          string `json:"dataType"`
	Length            *int   `json:"length,omitempty"`
	Decimals          *int   `json:"decimals,omitempty"`
	Heading           string `json:"heading,omitempty"`
	HeadingLength     *int   `json:"headingLength,omitempty"`
	LabelShort        string `json:"labelShort,omitempty"`
	LabelShortLength  *int   `json:"labelShortLength,omitempty"`
	LabelMedium       string `json:"labelMedium,omitempty"`
	LabelMediumLength *int   `json:"labelMediumLength,omitempty"`
	LabelLong         string `json:"labelLong,omitempty"`
	LabelLongLength   *int   `json:"labelLongLength,omitempty"`
	ParentName        string `json:"parentName,omitempty"`
}

// Annotation is one key/value annotation pair.
type Annotation struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MetadataDoc is the transformed output for a structure or view definition.
type MetadataDoc struct {
	Type string  `json:"type"`
	Root Element `json:"root"`
}

const (
	annotationKeyPrefix   = "annotationKey."
	annotationValuePrefix = "annotationValue."
)

// Metadata builds the transformer for one discriminator value
// ("structure_metadata", "type_info").
func Metadata(discriminator string) Transformer {
	return func(tree xmltree.Tree) (any, error) {
		root := findElementRoot(tree)
		return MetadataDoc{
			Type: discriminator,
			Root: parseElement(root),
		}, nil
	}
}

// findElementRoot locates the top-level element node regardless of the
// namespace prefix the system chose for it.
func findElementRoot(tree xmltree.Tree) any {
	for key, value := range tree {
		if key == "elementInfo" || strings.HasSuffix(key, ":elementInfo") {
			return value
		}
	}
	return tree
}

// parseElement is pure recursive descent over element nodes; the terminal
// case is a node with no nested element entries.
func parseElement(node any) Element {
	element := Element{
		Type:       xmltree.AttrLocal(node, "type"),
		Name:       xmltree.AttrLocal(node, "name"),
		Properties: parseProperties(node),
	}

	children := childElements(node)
	if len(children) > 0 {
		element.Children = make([]Element, 0, len(children))
		for _, child := range children {
			element.Children = append(element.Children, parseElement(child))
		}
	}

	return element
}

// childElements collects the repeated nested element nodes of a node.
func childElements(node any) []any {
	m, ok := node.(map[string]any)
	if !ok {
		return nil
	}
	for key := range m {
		if key == "elementInfo" || strings.HasSuffix(key, ":elementInfo") {
			return xmltree.AsArray(node, key)
		}
	}
	return nil
}

// parseProperties flattens the node's entry children into a key→value map,
// destructures the well-known DDIC keys out of it, and rebuilds annotation
// pairs from whatever remains.
func parseProperties(node any) PropertyBag {
	entries := entryMap(node)

	bag := PropertyBag{Annotations: parseAnnotations(entries)}

	// A data-type entry — even an empty one — marks a scalar field node;
	// its absence marks a pure container.
	dataType, hasDataType := takeEntry(entries, "ddicDataType")
	if hasDataType {
		bag.ElementProps = &ElementProps{
			DataType: dataType,
		}
		isKey, _ := takeEntry(entries, "ddicIsKey")
		bag.ElementProps.IsKey = isKey == "true"
		bag.ElementProps.DataElement, _ = takeEntry(entries, "ddicDataElement")
		bag.ElementProps.Length = takeIntEntry(entries, "ddicLength")
		bag.ElementProps.Decimals = takeIntEntry(entries, "ddicDecimals")
		bag.ElementProps.Heading, _ = takeEntry(entries, "ddicHeading")
		bag.ElementProps.HeadingLength = takeIntEntry(entries, "ddicHeadingLength")
		bag.ElementProps.LabelShort, _ = takeEntry(entries, "ddicLabelShort")
		bag.ElementProps.LabelShortLength = takeIntEntry(entries, "ddicLabelShortLength")
		bag.ElementProps.LabelMedium, _ = takeEntry(entries, "ddicLabelMedium")
		bag.ElementProps.LabelMediumLength = takeIntEntry(entries, "ddicLabelMediumLength")
		bag.ElementProps.LabelLong, _ = takeEntry(entries, "ddicLabelLong")
		bag.ElementProps.LabelLongLength = takeIntEntry(entries, "ddicLabelLongLength")
		bag.ElementProps.ParentName, _ = takeEntry(entries, "parentName")
	}

	return bag
}

// entryMap flattens the entry children under a node's properties sub-tree
// using each entry's declared key attribute and its text content.
func entryMap(node any) map[string]string {
	entries := make(map[string]string)

	m, ok := node.(map[string]any)
	if !ok {
		return entries
	}

	for key := range m {
		if key != "properties" && !strings.HasSuffix(key, ":properties") {
			continue
		}
		props, ok := m[key].(map[string]any)
		if !ok {
			continue
		}
		for propKey := range props {
			if propKey != "entry" && !strings.HasSuffix(propKey, ":entry") {
				continue
			}
			for _, entry := range xmltree.AsArray(props, propKey) {
				name := xmltree.AttrLocal(entry, "key")
				if name == "" {
					continue
				}
				entries[name] = xmltree.Text(entry)
			}
		}
	}

	return entries
}

// parseAnnotations reconstructs ordered annotation pairs from the indexed
// annotationKey.<N> / annotationValue.<N> entries. Keys and values may
// appear in any order and indexes need not be contiguous; slot N is created
// on first sight of either half, so pairing is by index, never scan order.
func parseAnnotations(entries map[string]string) []Annotation {
	slots := make(map[int]*Annotation)
	maxIndex := -1

	for key, value := range entries {
		var indexText string
		var isKey bool
		switch {
		case strings.HasPrefix(key, annotationKeyPrefix):
			indexText, isKey = key[len(annotationKeyPrefix):], true
		case strings.HasPrefix(key, annotationValuePrefix):
			indexText, isKey = key[len(annotationValuePrefix):], false
		default:
			continue
		}
		delete(entries, key)

		index, err := strconv.Atoi(indexText)
		if err != nil || index < 0 {
			continue
		}

		slot, ok := slots[index]
		if !ok {
			slot = &Annotation{}
			slots[index] = slot
		}
		if isKey {
			slot.Key = value
		} else {
			slot.Value = value
		}
		if index > maxIndex {
			maxIndex = index
		}
	}

	annotations := make([]Annotation, 0, len(slots))
	for i := 0; i <= maxIndex; i++ {
		if slot, ok := slots[i]; ok {
			annotations = append(annotations, *slot)
		}
	}
	return annotations
}

// takeEntry removes and returns a well-known entry.
func takeEntry(entries map[string]string, key string) (string, bool) {
	value, ok := entries[key]
	if ok {
		delete(entries, key)
	}
	return value, ok
}

// takeIntEntry removes a numeric entry; unparseable values yield nil.
func takeIntEntry(entries map[string]string, key string) *int {
	value, ok := takeEntry(entries, key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	return &n
}
