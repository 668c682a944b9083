package transform

import "sapadt/internal/xmltree"

// PackageObject is one object inside a development package.
type PackageObject struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	URI         string `json:"uri,omitempty"`
	Description string `json:"description,omitempty"`
}

// PackageInfo holds a normalized package listing.
type PackageInfo struct {
	Type         string          `json:"type"`
	TotalObjects int             `json:"totalObjects"`
	Objects      []PackageObject `json:"objects"`
}

// Package normalizes a repository node-structure reply. Entries that carry
// neither a name nor a URI are partial nodes the service emits for tree
// bookkeeping and are dropped.
func Package(tree xmltree.Tree) (any, error) {
	nodes := xmltree.AsArray(tree,
		"asx:abap", "asx:values", "DATA", "TREE_CONTENT", "SEU_ADT_REPOSITORY_OBJ_NODE")

	objects := make([]PackageObject, 0, len(nodes))
	for _, node := range nodes {
		name := xmltree.Text(xmltree.Node(node, "OBJECT_NAME"))
		uri := xmltree.Text(xmltree.Node(node, "OBJECT_URI"))
		if name == "" && uri == "" {
			continue
		}
		objects = append(objects, PackageObject{
			Name:        name,
			Type:        xmltree.Text(xmltree.Node(node, "OBJECT_TYPE")),
			URI:         uri,
			Description: xmltree.Text(xmltree.Node(node, "DESCRIPTION")),
		})
	}

	return PackageInfo{
		Type:         "package_info",
		TotalObjects: len(objects),
		Objects:      objects,
	}, nil
}
