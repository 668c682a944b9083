package transform

import (
	"encoding/json"
	"errors"
	"testing"

	"sapadt/internal/logging"
	"sapadt/internal/xmltree"
)

const searchXML = `<?xml version="1.0" encoding="utf-8"?>
<adtcore:objectReferences xmlns:adtcore="http://www.sap.com/adt/core">
	<adtcore:objectReference adtcore:uri="/sap/bc/adt/programs/programs/zdemo" adtcore:type="PROG/P" adtcore:name="ZDEMO" adtcore:packageName="ZPKG" adtcore:description="Demo report"/>
	<adtcore:objectReference adtcore:uri="/sap/bc/adt/oo/classes/zcl_demo" adtcore:type="CLAS/OC" adtcore:name="ZCL_DEMO" adtcore:packageName="ZPKG"/>
</adtcore:objectReferences>`

const emptySearchXML = `<?xml version="1.0" encoding="utf-8"?>
<adtcore:objectReferences xmlns:adtcore="http://www.sap.com/adt/core"/>`

func TestRenderRawModePassthrough(t *testing.T) {
	body := []byte(searchXML)
	got := Render(body, SearchObjects, true, logging.NewDiscard())
	if got != string(body) {
		t.Error("raw mode output is not byte-for-byte identical to the input")
	}
}

func TestRenderNoTransformerPassthrough(t *testing.T) {
	body := []byte("REPORT zdemo.\nWRITE 'hello'.")
	got := Render(body, nil, false, logging.NewDiscard())
	if got != string(body) {
		t.Error("pass-through output differs from input")
	}
}

func TestRenderTransformedJSON(t *testing.T) {
	got := Render([]byte(searchXML), SearchObjects, false, logging.NewDiscard())

	var doc SearchResults
	if err := json.Unmarshal([]byte(got), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.Type != "search_results" {
		t.Errorf("type = %q, want search_results", doc.Type)
	}
	if doc.TotalCount != 2 || len(doc.Results) != 2 {
		t.Fatalf("totalCount = %d, results = %d, want 2/2", doc.TotalCount, len(doc.Results))
	}
	if doc.Results[0].Name != "ZDEMO" || doc.Results[0].PackageName != "ZPKG" {
		t.Errorf("first result = %+v", doc.Results[0])
	}
}

func TestRenderFallbackOnUnparseableXML(t *testing.T) {
	body := []byte("plain text, not XML <<<")
	got := Render(body, SearchObjects, false, logging.NewDiscard())
	if got != string(body) {
		t.Error("unparseable body must fall back to the raw payload")
	}
}

func TestRenderFallbackOnTransformerError(t *testing.T) {
	failing := func(tree xmltree.Tree) (any, error) {
		return nil, errors.New("boom")
	}
	body := []byte(searchXML)
	got := Render(body, failing, false, logging.NewDiscard())
	if got != string(body) {
		t.Error("transformer failure must fall back to the raw payload")
	}
}

func TestSearchZeroResults(t *testing.T) {
	got := Render([]byte(emptySearchXML), SearchObjects, false, logging.NewDiscard())

	var doc SearchResults
	if err := json.Unmarshal([]byte(got), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.Type != "search_results" || doc.TotalCount != 0 || len(doc.Results) != 0 {
		t.Errorf("empty search = %+v, want totalCount 0 and empty results", doc)
	}
}

const packageXML = `<?xml version="1.0" encoding="utf-8"?>
<asx:abap xmlns:asx="http://www.sap.com/abapxml" version="1.0">
	<asx:values>
		<DATA>
			<TREE_CONTENT>
				<SEU_ADT_REPOSITORY_OBJ_NODE>
					<OBJECT_TYPE>PROG/P</OBJECT_TYPE>
					<OBJECT_NAME>ZDEMO</OBJECT_NAME>
					<OBJECT_URI>/sap/bc/adt/programs/programs/zdemo</OBJECT_URI>
					<DESCRIPTION>Demo report</DESCRIPTION>
				</SEU_ADT_REPOSITORY_OBJ_NODE>
				<SEU_ADT_REPOSITORY_OBJ_NODE>
					<OBJECT_TYPE>DEVC/K</OBJECT_TYPE>
					<DESCRIPTION>partial node without name or uri</DESCRIPTION>
				</SEU_ADT_REPOSITORY_OBJ_NODE>
				<SEU_ADT_REPOSITORY_OBJ_NODE>
					<OBJECT_TYPE>CLAS/OC</OBJECT_TYPE>
					<OBJECT_NAME>ZCL_DEMO</OBJECT_NAME>
					<OBJECT_URI>/sap/bc/adt/oo/classes/zcl_demo</OBJECT_URI>
				</SEU_ADT_REPOSITORY_OBJ_NODE>
			</TREE_CONTENT>
		</DATA>
	</asx:values>
</asx:abap>`

func TestPackageFiltersPartialNodes(t *testing.T) {
	tree, err := xmltree.Parse([]byte(packageXML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	value, err := Package(tree)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	doc := value.(PackageInfo)
	if doc.Type != "package_info" {
		t.Errorf("type = %q, want package_info", doc.Type)
	}
	if len(doc.Objects) != 2 || doc.TotalObjects != 2 {
		t.Fatalf("objects = %d, totalObjects = %d, want 2/2", len(doc.Objects), doc.TotalObjects)
	}
	if doc.Objects[0].Name != "ZDEMO" || doc.Objects[1].Name != "ZCL_DEMO" {
		t.Errorf("unexpected objects: %+v", doc.Objects)
	}
}

const tableContentsXML = `<?xml version="1.0" encoding="utf-8"?>
<dataPreview:tableData xmlns:dataPreview="http://www.sap.com/adt/dataPreview">
	<dataPreview:totalRows>2</dataPreview:totalRows>
	<dataPreview:columns>
		<dataPreview:metadata dataPreview:name="CARRID" dataPreview:type="C" dataPreview:description="Airline" dataPreview:length="3"/>
		<dataPreview:dataSet>
			<dataPreview:data>AA</dataPreview:data>
			<dataPreview:data>LH</dataPreview:data>
		</dataPreview:dataSet>
	</dataPreview:columns>
	<dataPreview:columns>
		<dataPreview:metadata dataPreview:name="CONNID" dataPreview:type="N" dataPreview:description="Connection" dataPreview:length="4"/>
		<dataPreview:dataSet>
			<dataPreview:data>0017</dataPreview:data>
			<dataPreview:data>0400</dataPreview:data>
		</dataPreview:dataSet>
	</dataPreview:columns>
</dataPreview:tableData>`

func TestTableContentsRowReconstruction(t *testing.T) {
	tree, err := xmltree.Parse([]byte(tableContentsXML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	value, err := TableContents(tree)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	doc := value.(TableContentsDoc)
	if doc.Type != "table_contents" {
		t.Errorf("type = %q", doc.Type)
	}
	if len(doc.Columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(doc.Columns))
	}
	if doc.TotalRows != 2 || len(doc.Rows) != 2 {
		t.Fatalf("rows = %d/%d, want 2", doc.TotalRows, len(doc.Rows))
	}
	if doc.Rows[0]["CARRID"] != "AA" || doc.Rows[0]["CONNID"] != "0017" {
		t.Errorf("row 0 = %v", doc.Rows[0])
	}
	if doc.Rows[1]["CARRID"] != "LH" || doc.Rows[1]["CONNID"] != "0400" {
		t.Errorf("row 1 = %v", doc.Rows[1])
	}
}

func TestObjectSourceWrapsXMLEnvelope(t *testing.T) {
	tree, err := xmltree.Parse([]byte(`<source>REPORT zdemo.</source>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	value, err := ObjectSource("ZDEMO")(tree)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	doc := value.(ObjectSourceDoc)
	if doc.Type != "object_source" || doc.Name != "ZDEMO" || doc.Source != "REPORT zdemo." {
		t.Errorf("doc = %+v", doc)
	}
}
