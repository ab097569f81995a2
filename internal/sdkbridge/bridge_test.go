package sdkbridge

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenrightmeow/mcps/catalog"
	"github.com/listenrightmeow/mcps/internal/logtest"
	"github.com/listenrightmeow/mcps/mcp"
)

func morning() time.Time { return time.Date(2024, 4, 5, 8, 0, 0, 0, time.Local) }

// connect wires an SDK client to the bridged catalog over in-memory
// transports.
func connect(t *testing.T) (*sdk.ClientSession, *logtest.Recorder) {
	t.Helper()
	ctx := t.Context()

	log, rec := logtest.New(t)
	svc, err := catalog.NewServer(catalog.WithLogger(log), catalog.WithClock(morning))
	require.NoError(t, err)
	srv, err := NewServer(svc, WithLogger(log), WithTransport("memory"))
	require.NoError(t, err)

	serverT, clientT := sdk.NewInMemoryTransports()
	ss, err := srv.Connect(ctx, serverT, nil)
	require.NoError(t, err)

	client := sdk.NewClient(&sdk.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = cs.Close()
		_ = ss.Wait()
	})
	return cs, rec
}

func text(t *testing.T, c sdk.Content) string {
	t.Helper()
	tc, ok := c.(*sdk.TextContent)
	require.True(t, ok, "content is %T", c)
	return tc.Text
}

func TestInitializeAdvertisesCatalog(t *testing.T) {
	cs, _ := connect(t)

	ir := cs.InitializeResult()
	require.NotNil(t, ir)
	assert.Equal(t, catalog.Name, ir.ServerInfo.Name)
	assert.Equal(t, catalog.Version, ir.ServerInfo.Version)
	assert.Equal(t, catalog.Instructions, ir.Instructions)
	require.NotNil(t, ir.Capabilities)
	assert.NotNil(t, ir.Capabilities.Tools)
	assert.NotNil(t, ir.Capabilities.Resources)
	assert.NotNil(t, ir.Capabilities.Prompts)
}

func TestListings(t *testing.T) {
	cs, _ := connect(t)
	ctx := t.Context()

	tools, err := cs.ListTools(ctx, &sdk.ListToolsParams{})
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"hello-world", "foobar", "create-greeting"}, names)

	res, err := cs.ListResources(ctx, &sdk.ListResourcesParams{})
	require.NoError(t, err)
	require.Len(t, res.Resources, 1)
	assert.Equal(t, "hello://world", res.Resources[0].URI)
	assert.Equal(t, "text/plain", res.Resources[0].MIMEType)

	tmpls, err := cs.ListResourceTemplates(ctx, &sdk.ListResourceTemplatesParams{})
	require.NoError(t, err)
	require.Len(t, tmpls.ResourceTemplates, 1)
	assert.Equal(t, "greetings://{name}", tmpls.ResourceTemplates[0].URITemplate)

	prompts, err := cs.ListPrompts(ctx, &sdk.ListPromptsParams{})
	require.NoError(t, err)
	require.Len(t, prompts.Prompts, 1)
	p := prompts.Prompts[0]
	assert.Equal(t, "create-greeting", p.Name)
	require.Len(t, p.Arguments, 3)
	assert.Equal(t, "name", p.Arguments[0].Name)
	assert.True(t, p.Arguments[0].Required)
}

func TestCallTool(t *testing.T) {
	cs, rec := connect(t)
	ctx := t.Context()

	res, err := cs.CallTool(ctx, &sdk.CallToolParams{Name: "hello-world", Arguments: map[string]any{"name": "Ada"}})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "Hello, Ada! This is a simple hello world message from the MCP server.", text(t, res.Content[0]))

	res, err = cs.CallTool(ctx, &sdk.CallToolParams{Name: "create-greeting", Arguments: map[string]any{
		"messageType": "farewell",
		"recipient":   "Bo",
		"tone":        "playful",
	}})
	require.NoError(t, err)
	assert.Equal(t, "Catch you later, Bo! 👋 Stay awesome!", text(t, res.Content[0]))

	_, err = cs.CallTool(ctx, &sdk.CallToolParams{Name: "create-greeting", Arguments: map[string]any{
		"messageType": "welcome",
		"recipient":   "Bo",
	}})
	require.ErrorContains(t, err, "must be one of the following: greeting, farewell, thank-you")

	_, err = cs.CallTool(ctx, &sdk.CallToolParams{Name: "nope", Arguments: map[string]any{}})
	require.Error(t, err)

	line, ok := rec.Find("tool.call.fail")
	require.True(t, ok)
	sess, ok := line.Context["sess"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "memory", sess["transport"])
}

func TestReadResource(t *testing.T) {
	cs, _ := connect(t)
	ctx := t.Context()

	res, err := cs.ReadResource(ctx, &sdk.ReadResourceParams{URI: "hello://world"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "hello://world", res.Contents[0].URI)
	assert.Equal(t, "Hello, World!", res.Contents[0].Text)

	res, err = cs.ReadResource(ctx, &sdk.ReadResourceParams{URI: "greetings://Ada"})
	require.NoError(t, err)
	assert.Equal(t, "greetings://Ada", res.Contents[0].URI)
	assert.Equal(t, "Good morning, Ada!", res.Contents[0].Text)

	_, err = cs.ReadResource(ctx, &sdk.ReadResourceParams{URI: "missing://x"})
	require.ErrorContains(t, err, "not found")
}

func TestGetPrompt(t *testing.T) {
	cs, _ := connect(t)
	ctx := t.Context()

	res, err := cs.GetPrompt(ctx, &sdk.GetPromptParams{Name: "create-greeting", Arguments: map[string]string{"name": "Ada", "style": "formal"}})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, sdk.Role("user"), res.Messages[0].Role)
	assert.Equal(t,
		"Generate a formal morning greeting for someone named Ada. The greeting should be appropriate for the time of day and match the specified style.",
		text(t, res.Messages[0].Content))
	assert.Contains(t, res.Meta["system"], "friendly greeting generator")

	_, err = cs.GetPrompt(ctx, &sdk.GetPromptParams{Name: "create-greeting", Arguments: map[string]string{}})
	require.ErrorContains(t, err, "invalid parameter name")
}

func TestToSDKSchema(t *testing.T) {
	s, err := toSDKSchema(mcp.ToolInputSchema{
		Type:     "object",
		Required: []string{"tone"},
		Properties: map[string]mcp.SchemaProperty{
			"tone": {Type: "string", Enum: []any{"a", "b"}, Default: "a"},
			"tags": {Type: "array", Items: &mcp.SchemaProperty{Type: "string"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"tone"}, s.Required)
	assert.Equal(t, &jsonschema.Schema{Not: &jsonschema.Schema{}}, s.AdditionalProperties)
	assert.JSONEq(t, `"a"`, string(s.Properties["tone"].Default))
	assert.Equal(t, "string", s.Properties["tags"].Items.Type)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"additionalProperties":false`)

	open, err := toSDKSchema(mcp.ToolInputSchema{Type: "object", AdditionalProperties: true})
	require.NoError(t, err)
	assert.Nil(t, open.AdditionalProperties)
}

func TestNewServerRejectsNilService(t *testing.T) {
	_, err := NewServer(nil)
	require.Error(t, err)
}

func TestReadResourceRoutesAnyName(t *testing.T) {
	cs, _ := connect(t)
	ctx := t.Context()

	tests := []struct {
		uri  string
		want string
	}{
		{uri: "greetings://José", want: "Good morning, José!"},
		{uri: "greetings://O'Brien", want: "Good morning, O'Brien!"},
		{uri: "greetings://Ada Lovelace", want: "Good morning, Ada Lovelace!"},
		{uri: "greetings://a/b", want: "Good morning, a/b!"},
		{uri: "greetings://Ada+Lovelace", want: "Good morning, Ada+Lovelace!"},
		{uri: "greetings://Ada%20Lovelace", want: "Good morning, Ada Lovelace!"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			res, err := cs.ReadResource(ctx, &sdk.ReadResourceParams{URI: tt.uri})
			require.NoError(t, err)
			require.Len(t, res.Contents, 1)
			assert.Equal(t, tt.uri, res.Contents[0].URI)
			assert.Equal(t, tt.want, res.Contents[0].Text)
		})
	}
}

func TestUnknownNamesUseFacadeErrors(t *testing.T) {
	cs, rec := connect(t)
	ctx := t.Context()

	_, err := cs.CallTool(ctx, &sdk.CallToolParams{Name: "nope", Arguments: map[string]any{}})
	require.ErrorContains(t, err, "tool not found: nope")
	_, ok := rec.Find("tool.not_found")
	assert.True(t, ok)

	_, err = cs.GetPrompt(ctx, &sdk.GetPromptParams{Name: "nope"})
	require.ErrorContains(t, err, "prompt not found: nope")
	_, ok = rec.Find("prompt.not_found")
	assert.True(t, ok)

	_, err = cs.ReadResource(ctx, &sdk.ReadResourceParams{URI: "missing://x"})
	require.Error(t, err)
	line, ok := rec.Find("resource.not_found")
	require.True(t, ok)
	rpc, ok := line.Context["rpc"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "missing://x", rpc["target"])
}
