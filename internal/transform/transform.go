// Package transform normalizes ADT XML payloads into typed JSON documents.
// Every transformer is a pure function from a parsed tree to a
// JSON-serializable value tagged with a "type" discriminator; the dispatcher
// decides between raw pass-through and transformation.
package transform

import (
	"encoding/json"
	"log/slog"

	"sapadt/internal/xmltree"
)

// Transformer turns a parsed XML tree into a JSON-serializable value.
// Failures are reported as errors, never panics; the dispatcher recovers
// them by falling back to the raw payload.
type Transformer func(tree xmltree.Tree) (any, error)

// Render produces the text a tool returns for one response body.
//
// Raw mode, or the absence of a transformer, passes the body through
// byte-for-byte. Otherwise the body is parsed and transformed, and the
// result serialized as JSON. Any parse, transform, or serialization failure
// degrades to the raw body: a transformation bug must never turn a
// successful exchange into a failed call, because the raw payload is still
// useful to the caller.
func Render(body []byte, t Transformer, raw bool, logger *slog.Logger) string {
	if raw || t == nil {
		return string(body)
	}

	tree, err := xmltree.Parse(body)
	if err != nil {
		logger.Warn("response is not parseable XML, returning raw payload", "error", err.Error())
		return string(body)
	}

	value, err := t(tree)
	if err != nil {
		logger.Warn("transformation failed, returning raw payload", "error", err.Error())
		return string(body)
	}

	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn("transformed value is not serializable, returning raw payload", "error", err.Error())
		return string(body)
	}

	return string(data)
}
