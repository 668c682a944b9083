package mcp

import (
	"context"
	"fmt"

	"sapadt/internal/adt"
	"sapadt/internal/transform"
)

// Tool handlers. Required arguments are validated before any network call;
// a missing argument fails immediately inside the result envelope. Transport
// and authentication failures from the client likewise become envelope
// errors with the code and message, never protocol errors.

// stringParam extracts a required string argument.
func stringParam(args map[string]interface{}, key string) (string, error) {
	value, ok := args[key].(string)
	if !ok || value == "" {
		return "", adt.NewError(adt.InvalidParameter, fmt.Sprintf("missing required parameter: %s", key), nil)
	}
	return value, nil
}

// intParam extracts an optional numeric argument; JSON numbers arrive as
// float64.
func intParam(args map[string]interface{}, key string, fallback int) int {
	if value, ok := args[key].(float64); ok && value > 0 {
		return int(value)
	}
	return fallback
}

// respond renders a response body through the transformation dispatch and
// wraps it in the result envelope.
func (s *Server) respond(resp *adt.Response, t transform.Transformer) *CallToolResult {
	return TextResult(transform.Render(resp.Body, t, s.rawMode, s.logger))
}

func (s *Server) toolGetProgram(ctx context.Context, args map[string]interface{}) (*CallToolResult, error) {
	name, err := stringParam(args, "program_name")
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	resp, err := s.client.ProgramSource(ctx, name)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	return s.respond(resp, transform.ObjectSource(name)), nil
}

func (s *Server) toolGetClass(ctx context.Context, args map[string]interface{}) (*CallToolResult, error) {
	name, err := stringParam(args, "class_name")
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	resp, err := s.client.ClassSource(ctx, name)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	return s.respond(resp, transform.ObjectSource(name)), nil
}

func (s *Server) toolGetInterface(ctx context.Context, args map[string]interface{}) (*CallToolResult, error) {
	name, err := stringParam(args, "interface_name")
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	resp, err := s.client.InterfaceSource(ctx, name)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	return s.respond(resp, transform.ObjectSource(name)), nil
}

func (s *Server) toolGetInclude(ctx context.Context, args map[string]interface{}) (*CallToolResult, error) {
	name, err := stringParam(args, "include_name")
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	resp, err := s.client.IncludeSource(ctx, name)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	return s.respond(resp, transform.ObjectSource(name)), nil
}

func (s *Server) toolGetFunctionGroup(ctx context.Context, args map[string]interface{}) (*CallToolResult, error) {
	group, err := stringParam(args, "function_group")
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	resp, err := s.client.FunctionGroupSource(ctx, group)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	return s.respond(resp, transform.ObjectSource(group)), nil
}

func (s *Server) toolGetFunction(ctx context.Context, args map[string]interface{}) (*CallToolResult, error) {
	name, err := stringParam(args, "function_name")
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	group, err := stringParam(args, "function_group")
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	resp, err := s.client.FunctionSource(ctx, group, name)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	return s.respond(resp, transform.ObjectSource(name)), nil
}

func (s *Server) toolGetTable(ctx context.Context, args map[string]interface{}) (*CallToolResult, error) {
	name, err := stringParam(args, "table_name")
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	resp, err := s.client.TableSource(ctx, name)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	return s.respond(resp, transform.ObjectSource(name)), nil
}

func (s *Server) toolGetStructure(ctx context.Context, args map[string]interface{}) (*CallToolResult, error) {
	name, err := stringParam(args, "structure_name")
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	resp, err := s.client.ElementInfo(ctx, name)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	return s.respond(resp, transform.Metadata("structure_metadata")), nil
}

func (s *Server) toolGetTableContents(ctx context.Context, args map[string]interface{}) (*CallToolResult, error) {
	name, err := stringParam(args, "table_name")
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	maxRows := intParam(args, "max_rows", 100)
	resp, err := s.client.TableContents(ctx, name, maxRows)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	return s.respond(resp, transform.TableContents), nil
}

func (s *Server) toolGetPackage(ctx context.Context, args map[string]interface{}) (*CallToolResult, error) {
	name, err := stringParam(args, "package_name")
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	resp, err := s.client.PackageStructure(ctx, name)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	return s.respond(resp, transform.Package), nil
}

func (s *Server) toolGetTypeInfo(ctx context.Context, args map[string]interface{}) (*CallToolResult, error) {
	name, err := stringParam(args, "type_name")
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	resp, err := s.client.ElementInfo(ctx, name)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	return s.respond(resp, transform.Metadata("type_info")), nil
}

func (s *Server) toolGetTransaction(ctx context.Context, args map[string]interface{}) (*CallToolResult, error) {
	name, err := stringParam(args, "transaction_name")
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	resp, err := s.client.TransactionProperties(ctx, name)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	return s.respond(resp, transform.Transaction), nil
}

func (s *Server) toolGetCdsView(ctx context.Context, args map[string]interface{}) (*CallToolResult, error) {
	name, err := stringParam(args, "cds_name")
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	resp, err := s.client.CdsViewSource(ctx, name)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	return s.respond(resp, transform.ObjectSource(name)), nil
}

func (s *Server) toolSearchObject(ctx context.Context, args map[string]interface{}) (*CallToolResult, error) {
	query, err := stringParam(args, "query")
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	maxResults := intParam(args, "maxResults", 100)
	resp, err := s.client.SearchObjects(ctx, query, maxResults)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}
	return s.respond(resp, transform.SearchObjects), nil
}
