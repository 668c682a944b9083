package adt

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Per-operation request builders. Each resolves one repository object kind to
// its ADT endpoint and delegates the exchange to Execute; they differ only in
// path and query construction.

// ProgramSource fetches the main source of an ABAP program.
func (c *Client) ProgramSource(ctx context.Context, name string) (*Response, error) {
	return c.Execute(ctx, Request{
		Method: http.MethodGet,
		Path:   "/sap/bc/adt/programs/programs/" + objectSegment(name) + "/source/main",
		Accept: "text/plain",
	})
}

// ClassSource fetches the main source of a global class.
func (c *Client) ClassSource(ctx context.Context, name string) (*Response, error) {
	return c.Execute(ctx, Request{
		Method: http.MethodGet,
		Path:   "/sap/bc/adt/oo/classes/" + objectSegment(name) + "/source/main",
		Accept: "text/plain",
	})
}

// InterfaceSource fetches the main source of a global interface.
func (c *Client) InterfaceSource(ctx context.Context, name string) (*Response, error) {
	return c.Execute(ctx, Request{
		Method: http.MethodGet,
		Path:   "/sap/bc/adt/oo/interfaces/" + objectSegment(name) + "/source/main",
		Accept: "text/plain",
	})
}

// IncludeSource fetches the source of an include.
func (c *Client) IncludeSource(ctx context.Context, name string) (*Response, error) {
	return c.Execute(ctx, Request{
		Method: http.MethodGet,
		Path:   "/sap/bc/adt/programs/includes/" + objectSegment(name) + "/source/main",
		Accept: "text/plain",
	})
}

// FunctionGroupSource fetches the main source of a function group.
func (c *Client) FunctionGroupSource(ctx context.Context, group string) (*Response, error) {
	return c.Execute(ctx, Request{
		Method: http.MethodGet,
		Path:   "/sap/bc/adt/functions/groups/" + objectSegment(group) + "/source/main",
		Accept: "text/plain",
	})
}

// FunctionSource fetches the source of a function module within its group.
func (c *Client) FunctionSource(ctx context.Context, group, name string) (*Response, error) {
	return c.Execute(ctx, Request{
		Method: http.MethodGet,
		Path: "/sap/bc/adt/functions/groups/" + objectSegment(group) +
			"/fmodules/" + objectSegment(name) + "/source/main",
		Accept: "text/plain",
	})
}

// TableSource fetches the DDL source of a database table.
func (c *Client) TableSource(ctx context.Context, name string) (*Response, error) {
	return c.Execute(ctx, Request{
		Method: http.MethodGet,
		Path:   "/sap/bc/adt/ddic/tables/" + objectSegment(name) + "/source/main",
		Accept: "text/plain",
	})
}

// CdsViewSource fetches the DDL source of a CDS view.
func (c *Client) CdsViewSource(ctx context.Context, name string) (*Response, error) {
	return c.Execute(ctx, Request{
		Method: http.MethodGet,
		Path:   "/sap/bc/adt/ddic/ddl/sources/" + objectSegment(name) + "/source/main",
		Accept: "text/plain",
	})
}

// ElementInfo fetches the hierarchical DDIC metadata tree for a structure,
// table, view, or data element. The response is the recursive elementInfo
// XML that the metadata transformer walks.
func (c *Client) ElementInfo(ctx context.Context, objectPath string) (*Response, error) {
	query := url.Values{}
	query.Set("path", objectPath)
	return c.Execute(ctx, Request{
		Method: http.MethodGet,
		Path:   "/sap/bc/adt/ddic/elementinfo",
		Query:  query,
		Accept: "application/vnd.sap.adt.elementinfo+xml",
	})
}

// TableContents reads up to maxRows rows from a table through the data
// preview service. The backend treats this as an unsafe request, so it is
// the one operation that exercises the token bootstrap path.
func (c *Client) TableContents(ctx context.Context, table string, maxRows int) (*Response, error) {
	if maxRows <= 0 {
		maxRows = 100
	}
	query := url.Values{}
	query.Set("rowNumber", fmt.Sprintf("%d", maxRows))
	return c.Execute(ctx, Request{
		Method:      http.MethodPost,
		Path:        "/sap/bc/adt/datapreview/freestyle",
		Query:       query,
		Body:        []byte("SELECT * FROM " + strings.ToUpper(table)),
		ContentType: "text/plain",
		Accept:      "application/xml",
	})
}

// PackageStructure lists the contents of a development package via the
// repository node-structure service. Also an unsafe request.
func (c *Client) PackageStructure(ctx context.Context, name string) (*Response, error) {
	query := url.Values{}
	query.Set("parent_type", "DEVC/K")
	query.Set("parent_name", strings.ToUpper(name))
	query.Set("withShortDescriptions", "true")
	return c.Execute(ctx, Request{
		Method:      http.MethodPost,
		Path:        "/sap/bc/adt/repository/nodestructure",
		Query:       query,
		ContentType: "application/x-www-form-urlencoded",
		Accept:      "application/xml",
	})
}

// TransactionProperties fetches object properties for a transaction code.
func (c *Client) TransactionProperties(ctx context.Context, name string) (*Response, error) {
	objectURI := "/sap/bc/adt/vit/wb/object_type/trant/object_name/" + url.PathEscape(strings.ToUpper(name))
	query := url.Values{}
	query.Set("uri", objectURI)
	query.Add("facet", "package")
	query.Add("facet", "appl")
	return c.Execute(ctx, Request{
		Method: http.MethodGet,
		Path:   "/sap/bc/adt/repository/informationsystem/objectproperties/values",
		Query:  query,
		Accept: "application/xml",
	})
}

// SearchObjects runs a quick search over the repository.
func (c *Client) SearchObjects(ctx context.Context, pattern string, maxResults int) (*Response, error) {
	if maxResults <= 0 {
		maxResults = 100
	}
	if !strings.HasSuffix(pattern, "*") {
		pattern = pattern + "*"
	}
	query := url.Values{}
	query.Set("operation", "quickSearch")
	query.Set("query", pattern)
	query.Set("maxResults", fmt.Sprintf("%d", maxResults))
	return c.Execute(ctx, Request{
		Method: http.MethodGet,
		Path:   "/sap/bc/adt/repository/informationsystem/search",
		Query:  query,
		Accept: "application/xml",
	})
}

// objectSegment normalizes an object name into a URL path segment. ADT
// endpoints address objects in lower case.
func objectSegment(name string) string {
	return url.PathEscape(strings.ToLower(name))
}
