package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/rvaidya/meetingmate/internal/session"
	"github.com/rvaidya/meetingmate/internal/tools"
)

func TestToContents(t *testing.T) {
	call := session.ToolCall{ID: "call-1", Name: "check_availability", Args: map[string]any{"day": "today"}}

	msgs := []session.Message{
		session.UserMessage("am I free today?"),
		{Role: session.RoleAssistant, ToolCalls: []session.ToolCall{call}},
		session.ToolResult(call, "Free slots today:\n10:00 AM - 02:00 PM"),
		{Role: session.RoleAssistant, Content: "You are free from 10am to 2pm."},
	}

	contents := toContents(msgs)
	require.Len(t, contents, 4)

	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, "am I free today?", contents[0].Parts[0].Text)

	assert.Equal(t, genai.RoleModel, contents[1].Role)
	require.NotNil(t, contents[1].Parts[0].FunctionCall)
	assert.Equal(t, "check_availability", contents[1].Parts[0].FunctionCall.Name)
	assert.Equal(t, "call-1", contents[1].Parts[0].FunctionCall.ID)

	assert.Equal(t, genai.RoleUser, contents[2].Role)
	require.NotNil(t, contents[2].Parts[0].FunctionResponse)
	assert.Equal(t, "check_availability", contents[2].Parts[0].FunctionResponse.Name)
	assert.Equal(t, "call-1", contents[2].Parts[0].FunctionResponse.ID)
	assert.Equal(t, "Free slots today:\n10:00 AM - 02:00 PM", contents[2].Parts[0].FunctionResponse.Response["result"])

	assert.Equal(t, genai.RoleModel, contents[3].Role)
	assert.Equal(t, "You are free from 10am to 2pm.", contents[3].Parts[0].Text)
}

func TestToContentsSkipsEmptyAssistantTurn(t *testing.T) {
	msgs := []session.Message{
		session.UserMessage("hello"),
		{Role: session.RoleAssistant},
	}

	contents := toContents(msgs)
	assert.Len(t, contents, 1)
}

func TestToMessageText(t *testing.T) {
	msg := toMessage(&genai.Content{
		Role:  genai.RoleModel,
		Parts: []*genai.Part{{Text: "Sure, "}, {Text: "booking it now."}},
	})

	assert.Equal(t, session.RoleAssistant, msg.Role)
	assert.Equal(t, "Sure, booking it now.", msg.Content)
	assert.Empty(t, msg.ToolCalls)
}

func TestToMessageFunctionCall(t *testing.T) {
	msg := toMessage(&genai.Content{
		Role: genai.RoleModel,
		Parts: []*genai.Part{{
			FunctionCall: &genai.FunctionCall{
				ID:   "call-7",
				Name: "book_meeting",
				Args: map[string]any{"summary": "demo", "start_time": "tomorrow at 5pm"},
			},
		}},
	})

	require.Len(t, msg.ToolCalls, 1)
	assert.Equal(t, "call-7", msg.ToolCalls[0].ID)
	assert.Equal(t, "book_meeting", msg.ToolCalls[0].Name)
	assert.Equal(t, "demo", msg.ToolCalls[0].Args["summary"])
}

func TestToMessageGeneratesCallID(t *testing.T) {
	msg := toMessage(&genai.Content{
		Role: genai.RoleModel,
		Parts: []*genai.Part{{
			FunctionCall: &genai.FunctionCall{Name: "check_availability"},
		}},
	})

	require.Len(t, msg.ToolCalls, 1)
	assert.NotEmpty(t, msg.ToolCalls[0].ID)
}

func TestToMessageNilContent(t *testing.T) {
	msg := toMessage(nil)
	assert.Equal(t, session.RoleAssistant, msg.Role)
	assert.Empty(t, msg.Content)
}

func TestToDeclarations(t *testing.T) {
	toolset := []tools.Tool{
		{
			Name:        "check_availability",
			Description: "Returns available time slots.",
			Params: []tools.Param{
				{Name: "day", Type: "string", Description: "today or tomorrow", Enum: []string{"today", "tomorrow"}},
			},
			Handler: func(context.Context, map[string]any) string { return "" },
		},
		{
			Name:        "book_meeting",
			Description: "Books a meeting.",
			Params: []tools.Param{
				{Name: "summary", Type: "string", Required: true},
				{Name: "start_time", Type: "string", Required: true},
				{Name: "end_time", Type: "string"},
			},
			Handler: func(context.Context, map[string]any) string { return "" },
		},
	}

	decls := toDeclarations(toolset)
	require.Len(t, decls, 1)
	require.Len(t, decls[0].FunctionDeclarations, 2)

	free := decls[0].FunctionDeclarations[0]
	assert.Equal(t, "check_availability", free.Name)
	assert.Equal(t, genai.TypeObject, free.Parameters.Type)
	assert.Equal(t, []string{"today", "tomorrow"}, free.Parameters.Properties["day"].Enum)
	assert.Empty(t, free.Parameters.Required)

	book := decls[0].FunctionDeclarations[1]
	assert.Equal(t, genai.TypeString, book.Parameters.Properties["summary"].Type)
	assert.ElementsMatch(t, []string{"summary", "start_time"}, book.Parameters.Required)
}

func TestToDeclarationsEmpty(t *testing.T) {
	assert.Nil(t, toDeclarations(nil))
}

func TestToSchemaType(t *testing.T) {
	assert.Equal(t, genai.TypeString, toSchemaType("string"))
	assert.Equal(t, genai.TypeInteger, toSchemaType("integer"))
	assert.Equal(t, genai.TypeNumber, toSchemaType("number"))
	assert.Equal(t, genai.TypeBoolean, toSchemaType("boolean"))
	assert.Equal(t, genai.TypeString, toSchemaType("unknown"))
}
