// Package gemini adapts the Google Gemini API to the assistant's model
// interface. It translates conversation history into genai contents,
// advertises the registered tools as function declarations, and maps
// returned function calls back into tool calls the orchestrator executes.
package gemini
