package mcpservice

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/listenrightmeow/mcps/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nestedArgs struct {
	Mode  string   `json:"mode" jsonschema:"enum=fast,enum=slow,default=fast"`
	Tags  []string `json:"tags,omitempty"`
	Inner struct {
		N int `json:"n"`
	} `json:"inner,omitempty"`
}

func TestNewToolReflectsSchema(t *testing.T) {
	tool := NewTool("nested", func(context.Context, nestedArgs) (*mcp.CallToolResult, error) {
		return TextResult("ok"), nil
	})

	s := tool.Descriptor.InputSchema
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"mode"}, s.Required)
	assert.False(t, s.AdditionalProperties)

	mode := s.Properties["mode"]
	assert.Equal(t, []any{"fast", "slow"}, mode.Enum)
	assert.Equal(t, "fast", mode.Default)

	tags := s.Properties["tags"]
	assert.Equal(t, "array", tags.Type)
	require.NotNil(t, tags.Items)
	assert.Equal(t, "string", tags.Items.Type)

	inner := s.Properties["inner"]
	assert.Equal(t, "object", inner.Type)
	assert.Contains(t, inner.Properties, "n")
}

func TestNewToolDecoding(t *testing.T) {
	var got nestedArgs
	strict := NewTool("t", func(_ context.Context, a nestedArgs) (*mcp.CallToolResult, error) {
		got = a
		return TextResult("ok"), nil
	})

	_, err := strict.Handler(t.Context(), &ToolCall{Arguments: json.RawMessage(`{"mode":"slow","tags":["a"]}`)})
	require.NoError(t, err)
	assert.Equal(t, "slow", got.Mode)
	assert.Equal(t, []string{"a"}, got.Tags)

	_, err = strict.Handler(t.Context(), &ToolCall{Arguments: json.RawMessage(`{"mode":"slow","extra":1}`)})
	var ip *InvalidParamsError
	require.ErrorAs(t, err, &ip)
	assert.Contains(t, ip.Error(), "invalid arguments")

	_, err = strict.Handler(t.Context(), &ToolCall{Arguments: json.RawMessage(`[1,2]`)})
	require.ErrorAs(t, err, &ip)

	lenient := NewTool("t", func(context.Context, nestedArgs) (*mcp.CallToolResult, error) {
		return TextResult("ok"), nil
	}, WithToolAllowAdditionalProperties(true))
	assert.True(t, lenient.Descriptor.InputSchema.AdditionalProperties)
	_, err = lenient.Handler(t.Context(), &ToolCall{Arguments: json.RawMessage(`{"extra":1}`)})
	require.NoError(t, err)
}

func TestNewToolNonObjectArgs(t *testing.T) {
	tool := NewTool("s", func(context.Context, string) (*mcp.CallToolResult, error) {
		return TextResult("ok"), nil
	})
	assert.Equal(t, "object", tool.Descriptor.InputSchema.Type)
	assert.Empty(t, tool.Descriptor.InputSchema.Properties)
}

func TestInvalidParamsErrorMessage(t *testing.T) {
	assert.Equal(t, "invalid parameter tone: must be one of the following: a, b",
		RequireOneOf("tone", "c", "a", "b").Error())
	assert.NoError(t, RequireOneOf("tone", "a", "a", "b"))
	assert.Equal(t, "invalid parameter name: a value is required", RequireArg("name", "").Error())
	assert.NoError(t, RequireArg("name", "x"))
	assert.Equal(t, "invalid parameters: bad", (&InvalidParamsError{Reason: "bad"}).Error())
}

func TestNewPromptResolvesArguments(t *testing.T) {
	var seen map[string]string
	p := NewPrompt(mcp.Prompt{
		Name: "p",
		Arguments: []mcp.PromptArgument{
			{Name: "name", Required: true},
			{Name: "style", Enum: []string{"casual", "formal"}, Default: "casual"},
			{Name: "context"},
		},
	}, func(_ context.Context, req *PromptRequest) (*mcp.GetPromptResult, error) {
		seen = req.Arguments
		return &mcp.GetPromptResult{}, nil
	})

	in := map[string]string{"name": "Ada"}
	_, err := p.Handler(t.Context(), &PromptRequest{Name: "p", Arguments: in})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "Ada", "style": "casual"}, seen)
	assert.Equal(t, map[string]string{"name": "Ada"}, in, "caller map is not mutated")

	_, err = p.Handler(t.Context(), &PromptRequest{Name: "p", Arguments: map[string]string{"name": "Ada", "style": "loud"}})
	require.ErrorContains(t, err, "must be one of the following: casual, formal")

	_, err = p.Handler(t.Context(), &PromptRequest{Name: "p"})
	require.ErrorContains(t, err, "invalid parameter name")

	var nilReq *PromptRequest
	assert.Empty(t, nilReq.Arg("x"))
}
