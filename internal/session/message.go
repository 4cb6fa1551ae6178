package session

// Role identifies the author of a conversation message.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a structured tool invocation request emitted by the model as
// part of an assistant message.
type ToolCall struct {
	// ID links the eventual tool-result message back to this request.
	ID string

	// Name is the registered tool name.
	Name string

	// Args holds the structured arguments for the tool.
	Args map[string]any
}

// Message is one turn in a conversation. Assistant messages may carry tool
// calls; tool messages carry the result of exactly one call, referenced by
// ToolCallID.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	ToolName   string
}

// UserMessage builds a user turn.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds a plain assistant turn.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// ToolResult builds a tool turn answering the given call.
func ToolResult(call ToolCall, content string) Message {
	return Message{
		Role:       RoleTool,
		Content:    content,
		ToolCallID: call.ID,
		ToolName:   call.Name,
	}
}

func cloneToolCalls(calls []ToolCall) []ToolCall {
	if len(calls) == 0 {
		return nil
	}
	out := make([]ToolCall, len(calls))
	copy(out, calls)
	for i := range out {
		if len(calls[i].Args) > 0 {
			args := make(map[string]any, len(calls[i].Args))
			for k, v := range calls[i].Args {
				args[k] = v
			}
			out[i].Args = args
		}
	}
	return out
}
