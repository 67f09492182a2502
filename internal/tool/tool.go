// Package tool contains the host-facing command handlers. Each tool is a
// single synchronous invocation: a typed request in, a short sequence of
// tagged outputs back. Outputs mirror the host runtime's message kinds: a
// display-text message, one structured JSON message, or a named variable
// the workflow engine consumes downstream. Handlers never return errors;
// every failure is folded into the output sequence with a status field so
// nothing propagates to the host as an unhandled fault.
package tool

import (
	"go.uber.org/zap"

	"tabular/internal/fault"
)

// OutputKind tags an Output.
type OutputKind int

const (
	// KindText is a display-text message.
	KindText OutputKind = iota
	// KindJSON is a single structured JSON message.
	KindJSON
	// KindVariable is a named variable for downstream workflow steps.
	KindVariable
)

// Output is one message yielded by a tool invocation.
type Output struct {
	Kind  OutputKind
	Text  string         // KindText
	JSON  map[string]any // KindJSON
	Name  string         // KindVariable
	Value any            // KindVariable: string or object
}

// TextOut builds a display-text output.
func TextOut(s string) Output { return Output{Kind: KindText, Text: s} }

// JSONOut builds a structured JSON output.
func JSONOut(m map[string]any) Output { return Output{Kind: KindJSON, JSON: m} }

// VariableOut builds a named-variable output.
func VariableOut(name string, value any) Output {
	return Output{Kind: KindVariable, Name: name, Value: value}
}

// statusError renders a failure as the canonical JSON status message.
func statusError(kind fault.Kind, msg string) Output {
	return JSONOut(map[string]any{
		"status":  "error",
		"kind":    kind.String(),
		"message": msg,
	})
}

// orNop returns log, or a no-op logger when log is nil so tools never need
// a nil check before logging.
func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
