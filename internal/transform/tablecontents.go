package transform

import "sapadt/internal/xmltree"

// TableColumn describes one column of a data-preview reply.
type TableColumn struct {
	Name        string `json:"name"`
	Type        string `json:"dataType,omitempty"`
	Description string `json:"description,omitempty"`
	Length      string `json:"length,omitempty"`
}

// TableContentsDoc holds normalized table rows.
type TableContentsDoc struct {
	Type      string              `json:"type"`
	Columns   []TableColumn       `json:"columns"`
	Rows      []map[string]string `json:"rows"`
	TotalRows int                 `json:"totalRows"`
}

// TableContents normalizes a data-preview reply. The service returns data
// column-wise (one dataSet per column); rows are rebuilt by position across
// the column dataSets.
func TableContents(tree xmltree.Tree) (any, error) {
	columnNodes := xmltree.AsArray(tree, "dataPreview:tableData", "dataPreview:columns")

	columns := make([]TableColumn, 0, len(columnNodes))
	cells := make([][]string, 0, len(columnNodes))
	rowCount := 0

	for _, col := range columnNodes {
		meta := xmltree.Node(col, "dataPreview:metadata")
		columns = append(columns, TableColumn{
			Name:        xmltree.AttrLocal(meta, "name"),
			Type:        xmltree.AttrLocal(meta, "type"),
			Description: xmltree.AttrLocal(meta, "description"),
			Length:      xmltree.AttrLocal(meta, "length"),
		})

		values := xmltree.AsArray(col, "dataPreview:dataSet", "dataPreview:data")
		texts := make([]string, 0, len(values))
		for _, v := range values {
			texts = append(texts, xmltree.Text(v))
		}
		cells = append(cells, texts)
		if len(texts) > rowCount {
			rowCount = len(texts)
		}
	}

	rows := make([]map[string]string, rowCount)
	for i := range rows {
		row := make(map[string]string, len(columns))
		for c, col := range columns {
			if i < len(cells[c]) {
				row[col.Name] = cells[c][i]
			}
		}
		rows[i] = row
	}

	return TableContentsDoc{
		Type:      "table_contents",
		Columns:   columns,
		Rows:      rows,
		TotalRows: rowCount,
	}, nil
}
