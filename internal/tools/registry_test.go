package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool(name string) Tool {
	return Tool{
		Name:        name,
		Description: "echoes its input",
		Handler: func(_ context.Context, args map[string]any) string {
			return stringArg(args, "text")
		},
	}
}

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry(nil, echoTool("echo"), echoTool("shout"))
	require.NoError(t, err)

	assert.Len(t, reg.All(), 2)

	tool, ok := reg.Get("echo")
	assert.True(t, ok)
	assert.Equal(t, "echo", tool.Name)

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(nil, echoTool("echo"), echoTool("echo"))
	assert.Error(t, err)
}

func TestNewRegistryRejectsEmptyName(t *testing.T) {
	_, err := NewRegistry(nil, echoTool(""))
	assert.Error(t, err)
}

func TestNewRegistryRejectsNilHandler(t *testing.T) {
	_, err := NewRegistry(nil, Tool{Name: "broken"})
	assert.Error(t, err)
}

func TestExecute(t *testing.T) {
	reg, err := NewRegistry(nil, echoTool("echo"))
	require.NoError(t, err)

	result := reg.Execute(context.Background(), "echo", map[string]any{"text": "hello"})
	assert.Equal(t, "hello", result)
}

func TestExecuteUnknownTool(t *testing.T) {
	reg, err := NewRegistry(nil, echoTool("echo"))
	require.NoError(t, err)

	result := reg.Execute(context.Background(), "nope", nil)
	assert.True(t, IsFailure(result))
	assert.Contains(t, result, "nope")
}

func TestIsFailure(t *testing.T) {
	assert.True(t, IsFailure("❌ Something broke."))
	assert.True(t, IsFailure("⚠️ You already have a meeting 'Standup' at that time."))
	assert.False(t, IsFailure("✅ Meeting booked!"))
	assert.False(t, IsFailure("Free slots today:"))
}

func TestStringArg(t *testing.T) {
	args := map[string]any{"s": "value", "n": 42, "b": true}
	assert.Equal(t, "value", stringArg(args, "s"))
	assert.Equal(t, "", stringArg(args, "n"))
	assert.Equal(t, "", stringArg(args, "missing"))
	assert.Equal(t, "", stringArg(nil, "s"))
}
