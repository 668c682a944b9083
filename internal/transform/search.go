package transform

import "sapadt/internal/xmltree"

// SearchResult is one repository object reference in a quick-search reply.
type SearchResult struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	URI         string `json:"uri"`
	Description string `json:"description,omitempty"`
	PackageName string `json:"packageName,omitempty"`
}

// SearchResults holds a normalized quick-search reply.
type SearchResults struct {
	Type       string         `json:"type"`
	TotalCount int            `json:"totalCount"`
	Results    []SearchResult `json:"results"`
}

// SearchObjects normalizes a repository quick-search reply. TotalCount is
// always the length of the result list, not a count the backend claims.
func SearchObjects(tree xmltree.Tree) (any, error) {
	refs := xmltree.AsArray(tree, "adtcore:objectReferences", "adtcore:objectReference")

	results := make([]SearchResult, 0, len(refs))
	for _, ref := range refs {
		results = append(results, SearchResult{
			Name:        xmltree.AttrLocal(ref, "name"),
			Type:        xmltree.AttrLocal(ref, "type"),
			URI:         xmltree.AttrLocal(ref, "uri"),
			Description: xmltree.AttrLocal(ref, "description"),
			PackageName: xmltree.AttrLocal(ref, "packageName"),
		})
	}

	return SearchResults{
		Type:       "search_results",
		TotalCount: len(results),
		Results:    results,
	}, nil
}
