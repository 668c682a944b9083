package mcp

// Message represents a JSON-RPC 2.0 message for MCP
type Message struct {
	Jsonrpc string      `json:"jsonrpc"`
	Id      interface{} `json:"id,omitempty"`
	Method  string      `json:"method,omitempty"`
	Params  interface{} `json:"params,omitempty"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC 2.0 error
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error implements the error interface
func (e *RPCError) Error() string {
	return e.Message
}

// Standard JSON-RPC error codes
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

// protocolVersion is the MCP protocol revision this server speaks.
const protocolVersion = "2024-11-05"

// NewErrorMessage creates a new error response message
func NewErrorMessage(id interface{}, code int, message string, data interface{}) *Message {
	return &Message{
		Jsonrpc: "2.0",
		Id:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// NewResultMessage creates a new result response message
func NewResultMessage(id interface{}, result interface{}) *Message {
	return &Message{
		Jsonrpc: "2.0",
		Id:      id,
		Result:  result,
	}
}

// IsRequest checks if the message is a request
func (m *Message) IsRequest() bool {
	return m.Method != "" && m.Id != nil
}

// IsNotification checks if the message is a notification
func (m *Message) IsNotification() bool {
	return m.Method != "" && m.Id == nil
}

// Content is one content item of a tool call result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallToolResult is the uniform envelope every tool returns: a single text
// content item carrying either a raw payload or serialized JSON, never a
// native object.
type CallToolResult struct {
	IsError bool      `json:"isError"`
	Content []Content `json:"content"`
}

// TextResult builds a successful envelope around one text payload.
func TextResult(text string) *CallToolResult {
	return &CallToolResult{
		IsError: false,
		Content: []Content{{Type: "text", Text: text}},
	}
}

// ErrorResult builds a failed envelope carrying a human-readable message.
func ErrorResult(message string) *CallToolResult {
	return &CallToolResult{
		IsError: true,
		Content: []Content{{Type: "text", Text: message}},
	}
}
