package gemini

import (
	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/rvaidya/meetingmate/internal/session"
	"github.com/rvaidya/meetingmate/internal/tools"
)

// toContents converts conversation history to the genai wire form. Tool
// results travel as user-role contents carrying a FunctionResponse part.
func toContents(msgs []session.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(msgs))

	for _, msg := range msgs {
		switch msg.Role {
		case session.RoleUser:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: msg.Content}},
			})

		case session.RoleAssistant:
			var parts []*genai.Part
			if msg.Content != "" {
				parts = append(parts, &genai.Part{Text: msg.Content})
			}
			for _, call := range msg.ToolCalls {
				parts = append(parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{
						ID:   call.ID,
						Name: call.Name,
						Args: call.Args,
					},
				})
			}
			if len(parts) == 0 {
				continue
			}
			contents = append(contents, &genai.Content{
				Role:  genai.RoleModel,
				Parts: parts,
			})

		case session.RoleTool:
			contents = append(contents, &genai.Content{
				Role: genai.RoleUser,
				Parts: []*genai.Part{{
					FunctionResponse: &genai.FunctionResponse{
						ID:       msg.ToolCallID,
						Name:     msg.ToolName,
						Response: map[string]any{"result": msg.Content},
					},
				}},
			})
		}
	}

	return contents
}

// toMessage converts a model response content into an assistant message.
// Function calls without an ID get a generated one so tool results can be
// correlated on the way back.
func toMessage(content *genai.Content) session.Message {
	msg := session.Message{Role: session.RoleAssistant}
	if content == nil {
		return msg
	}

	for _, part := range content.Parts {
		if part == nil {
			continue
		}
		if part.Text != "" {
			msg.Content += part.Text
		}
		if part.FunctionCall != nil {
			id := part.FunctionCall.ID
			if id == "" {
				id = uuid.NewString()
			}
			msg.ToolCalls = append(msg.ToolCalls, session.ToolCall{
				ID:   id,
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			})
		}
	}

	return msg
}

// toDeclarations converts registered tools to genai function declarations.
func toDeclarations(toolset []tools.Tool) []*genai.Tool {
	if len(toolset) == 0 {
		return nil
	}

	decls := make([]*genai.FunctionDeclaration, 0, len(toolset))
	for _, t := range toolset {
		properties := make(map[string]*genai.Schema, len(t.Params))
		var required []string

		for _, p := range t.Params {
			prop := &genai.Schema{
				Type:        toSchemaType(p.Type),
				Description: p.Description,
			}
			if len(p.Enum) > 0 {
				prop.Enum = p.Enum
			}
			properties[p.Name] = prop
			if p.Required {
				required = append(required, p.Name)
			}
		}

		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   required,
			},
		})
	}

	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func toSchemaType(t string) genai.Type {
	switch t {
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
