package xmltree

import (
	"reflect"
	"testing"

	"sapadt/internal/adt"
)

const repeatedXML = `<root>
	<items>
		<item id="1">first</item>
		<item id="2">second</item>
		<item id="3">third</item>
	</items>
	<single>
		<item id="only">alone</item>
	</single>
</root>`

func parseTest(t *testing.T, xml string) Tree {
	t.Helper()
	tree, err := Parse([]byte(xml))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return tree
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("{not xml at all"))
	if err == nil {
		t.Fatal("expected error for malformed input")
	}
	if adt.CodeOf(err) != adt.XMLMalformed {
		t.Errorf("code = %s, want XML_MALFORMED", adt.CodeOf(err))
	}
}

func TestNodeAbsentPath(t *testing.T) {
	tree := parseTest(t, repeatedXML)

	if got := Node(tree, "root", "missing", "deeper"); got != nil {
		t.Errorf("expected nil for absent path, got %v", got)
	}
	if got := Node(tree, "root", "single", "item", "nothing"); got != nil {
		t.Errorf("expected nil when walking past a leaf, got %v", got)
	}
}

func TestNodeTextLeaf(t *testing.T) {
	tree := parseTest(t, `<root><name>ZDEMO</name></root>`)

	got := Node(tree, "root", "name")
	if got != "ZDEMO" {
		t.Errorf("expected text leaf to collapse to string, got %#v", got)
	}
}

func TestAsArrayCardinality(t *testing.T) {
	tree := parseTest(t, repeatedXML)

	tests := []struct {
		name string
		path []string
		want int
	}{
		{"repeated", []string{"root", "items", "item"}, 3},
		{"single", []string{"root", "single", "item"}, 1},
		{"absent", []string{"root", "nowhere", "item"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AsArray(tree, tt.path...)
			if len(got) != tt.want {
				t.Errorf("AsArray(%v) length = %d, want %d", tt.path, len(got), tt.want)
			}
		})
	}
}

func TestAsArrayIdempotent(t *testing.T) {
	tree := parseTest(t, repeatedXML)

	first := AsArray(tree, "root", "items", "item")
	second := AsArray(tree, "root", "items", "item")
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated AsArray calls on the same tree differ")
	}
}

func TestAttributesFromNamespacedSource(t *testing.T) {
	tree := parseTest(t, `<obj xmlns:adtcore="http://www.sap.com/adt/core" adtcore:name="ZCL_DEMO" adtcore:type="CLAS/OC"/>`)
	node := Node(tree, "obj")

	// The decoder resolves namespaces; whichever key shape it produced, the
	// local-name accessor must find the value.
	if got := AttrLocal(node, "name"); got != "ZCL_DEMO" {
		t.Errorf("AttrLocal(name) = %q, want ZCL_DEMO (attrs: %v)", got, Attributes(node))
	}
	if got := AttrLocal(node, "type"); got != "CLAS/OC" {
		t.Errorf("AttrLocal(type) = %q, want CLAS/OC", got)
	}
}

func TestNamespacedPathSegments(t *testing.T) {
	tree := parseTest(t, `<adtcore:objectReferences xmlns:adtcore="http://www.sap.com/adt/core">
		<adtcore:objectReference adtcore:name="ZDEMO"/>
		<adtcore:objectReference adtcore:name="ZCL_DEMO"/>
	</adtcore:objectReferences>`)

	// The decoder keys elements by local name; prefixed segments must still
	// resolve them.
	refs := AsArray(tree, "adtcore:objectReferences", "adtcore:objectReference")
	if len(refs) != 2 {
		t.Fatalf("prefixed path resolved %d nodes, want 2", len(refs))
	}
	if got := AttrLocal(refs[0], "name"); got != "ZDEMO" {
		t.Errorf("first reference name = %q, want ZDEMO", got)
	}

	// Local-name segments resolve the same nodes.
	if got := AsArray(tree, "objectReferences", "objectReference"); len(got) != 2 {
		t.Errorf("local path resolved %d nodes, want 2", len(got))
	}
}

func TestAttributesNestedDialect(t *testing.T) {
	node := map[string]any{
		"attributes": map[string]any{
			"name": "T000",
			"type": "TABL/DT",
		},
	}

	attrs := Attributes(node)
	if attrs["name"] != "T000" || attrs["type"] != "TABL/DT" {
		t.Errorf("nested attributes dialect not recognized: %v", attrs)
	}
}

func TestAttributesNonObject(t *testing.T) {
	if attrs := Attributes("just text"); len(attrs) != 0 {
		t.Errorf("expected empty map for non-object input, got %v", attrs)
	}
	if attrs := Attributes(nil); len(attrs) != 0 {
		t.Errorf("expected empty map for nil input, got %v", attrs)
	}
}

func TestAttrLocal(t *testing.T) {
	tree := parseTest(t, `<obj adtcore:name="SFLIGHT" plain="x"/>`)
	node := Node(tree, "obj")

	if got := AttrLocal(node, "name"); got != "SFLIGHT" {
		t.Errorf("AttrLocal(name) = %q, want SFLIGHT", got)
	}
	if got := AttrLocal(node, "plain"); got != "x" {
		t.Errorf("AttrLocal(plain) = %q, want x", got)
	}
	if got := AttrLocal(node, "missing"); got != "" {
		t.Errorf("AttrLocal(missing) = %q, want empty", got)
	}
}

func TestTextWithAttributes(t *testing.T) {
	tree := parseTest(t, `<entry key="ddicDataType">CLNT</entry>`)

	if got := Text(Node(tree, "entry")); got != "CLNT" {
		t.Errorf("Text = %q, want CLNT", got)
	}
}
