package tools

import "context"

// Handler executes a tool call. Handlers are fail-soft: every foreseeable
// failure (parse error, conflict, provider error) is mapped to a
// user-facing string and no error ever crosses the tool boundary.
type Handler func(ctx context.Context, args map[string]any) string

// Param describes one argument of a tool for schema generation.
type Param struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Enum        []string
}

// Tool is a named, schema-described callable exposed to the model.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
}

// Failure markers prefixing user-facing tool results. The MCP transport
// uses them to classify results; the chat model passes them through.
const (
	FailureMarker  = "❌"
	ConflictMarker = "⚠️"
)

// stringArg extracts a string argument, tolerating absent or mistyped
// values from the model.
func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
