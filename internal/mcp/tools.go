package mcp

// Tool represents one retrieval tool exposed via MCP
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// stringArg builds the schema fragment for one string property.
func stringArg(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// GetToolDefinitions returns all tool definitions
func (s *Server) GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "GetProgram",
			Description: "Retrieve the ABAP source code of a program",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"program_name": stringArg("Name of the ABAP program"),
				},
				"required": []string{"program_name"},
			},
		},
		{
			Name:        "GetClass",
			Description: "Retrieve the ABAP source code of a global class",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"class_name": stringArg("Name of the ABAP class"),
				},
				"required": []string{"class_name"},
			},
		},
		{
			Name:        "GetInterface",
			Description: "Retrieve the ABAP source code of a global interface",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"interface_name": stringArg("Name of the ABAP interface"),
				},
				"required": []string{"interface_name"},
			},
		},
		{
			Name:        "GetInclude",
			Description: "Retrieve the source code of an ABAP include",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"include_name": stringArg("Name of the ABAP include"),
				},
				"required": []string{"include_name"},
			},
		},
		{
			Name:        "GetFunctionGroup",
			Description: "Retrieve the main source of an ABAP function group",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"function_group": stringArg("Name of the function group"),
				},
				"required": []string{"function_group"},
			},
		},
		{
			Name:        "GetFunction",
			Description: "Retrieve the source code of an ABAP function module",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"function_name":  stringArg("Name of the function module"),
					"function_group": stringArg("Function group the module belongs to"),
				},
				"required": []string{"function_name", "function_group"},
			},
		},
		{
			Name:        "GetTable",
			Description: "Retrieve the DDL source of a database table",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"table_name": stringArg("Name of the database table"),
				},
				"required": []string{"table_name"},
			},
		},
		{
			Name:        "GetStructure",
			Description: "Retrieve the field structure of a DDIC structure or table as a metadata tree",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"structure_name": stringArg("Name of the DDIC structure or table"),
				},
				"required": []string{"structure_name"},
			},
		},
		{
			Name:        "GetTableContents",
			Description: "Read rows from a database table through the data preview service",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"table_name": stringArg("Name of the database table"),
					"max_rows": map[string]interface{}{
						"type":        "number",
						"default":     100,
						"description": "Maximum number of rows to read",
					},
				},
				"required": []string{"table_name"},
			},
		},
		{
			Name:        "GetPackage",
			Description: "List the objects contained in an ABAP development package",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"package_name": stringArg("Name of the development package"),
				},
				"required": []string{"package_name"},
			},
		},
		{
			Name:        "GetTypeInfo",
			Description: "Retrieve DDIC type information for a data element, domain, or type",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"type_name": stringArg("Name of the DDIC type"),
				},
				"required": []string{"type_name"},
			},
		},
		{
			Name:        "GetTransaction",
			Description: "Retrieve properties of a transaction code",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"transaction_name": stringArg("Transaction code, e.g. SE38"),
				},
				"required": []string{"transaction_name"},
			},
		},
		{
			Name:        "GetCdsView",
			Description: "Retrieve the DDL source of a CDS view",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"cds_name": stringArg("Name of the CDS view"),
				},
				"required": []string{"cds_name"},
			},
		},
		{
			Name:        "SearchObject",
			Description: "Search the repository for development objects by name pattern",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": stringArg("Search pattern; a trailing * is added when absent"),
					"maxResults": map[string]interface{}{
						"type":        "number",
						"default":     100,
						"description": "Maximum number of matches to return",
					},
				},
				"required": []string{"query"},
			},
		},
	}
}

// RegisterTools wires every tool handler into the registry.
func (s *Server) RegisterTools() {
	s.tools["GetProgram"] = s.toolGetProgram
	s.tools["GetClass"] = s.toolGetClass
	s.tools["GetInterface"] = s.toolGetInterface
	s.tools["GetInclude"] = s.toolGetInclude
	s.tools["GetFunctionGroup"] = s.toolGetFunctionGroup
	s.tools["GetFunction"] = s.toolGetFunction
	s.tools["GetTable"] = s.toolGetTable
	s.tools["GetStructure"] = s.toolGetStructure
	s.tools["GetTableContents"] = s.toolGetTableContents
	s.tools["GetPackage"] = s.toolGetPackage
	s.tools["GetTypeInfo"] = s.toolGetTypeInfo
	s.tools["GetTransaction"] = s.toolGetTransaction
	s.tools["GetCdsView"] = s.toolGetCdsView
	s.tools["SearchObject"] = s.toolSearchObject
}
