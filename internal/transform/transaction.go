package transform

import "sapadt/internal/xmltree"

// TransactionDoc holds normalized transaction properties.
type TransactionDoc struct {
	Type        string            `json:"type"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	ObjectType  string            `json:"objectType,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"`
}

// Transaction normalizes an object-properties reply for a transaction code.
func Transaction(tree xmltree.Tree) (any, error) {
	object := xmltree.Node(tree, "opr:objectProperties", "opr:object")

	properties := make(map[string]string)
	for _, prop := range xmltree.AsArray(object, "opr:properties", "opr:property") {
		key := xmltree.AttrLocal(prop, "key")
		if key == "" {
			continue
		}
		value := xmltree.AttrLocal(prop, "value")
		if value == "" {
			value = xmltree.Text(prop)
		}
		properties[key] = value
	}

	return TransactionDoc{
		Type:        "transaction_properties",
		Name:        xmltree.AttrLocal(object, "name"),
		Description: xmltree.AttrLocal(object, "text"),
		ObjectType:  xmltree.AttrLocal(object, "type"),
		Properties:  properties,
	}, nil
}
