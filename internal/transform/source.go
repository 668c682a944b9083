package transform

import "sapadt/internal/xmltree"

// ObjectSourceDoc wraps source text with the object it belongs to.
type ObjectSourceDoc struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

// ObjectSource builds the generic source wrapper for one named object. Most
// source endpoints reply with plain text, which never reaches a transformer
// (the dispatcher's XML parse fails and the raw body wins); this wrapper
// covers the systems that wrap source in an XML envelope.
func ObjectSource(objectName string) Transformer {
	return func(tree xmltree.Tree) (any, error) {
		var source string
		for _, root := range tree {
			source = xmltree.Text(root)
			break
		}
		return ObjectSourceDoc{
			Type:   "object_source",
			Name:   objectName,
			Source: source,
		}, nil
	}
}
