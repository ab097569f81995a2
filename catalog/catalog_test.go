package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/listenrightmeow/mcps/internal/logtest"
	"github.com/listenrightmeow/mcps/mcpservice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func afternoon() time.Time { return time.Date(2024, 2, 3, 14, 0, 0, 0, time.Local) }

func newServer(t *testing.T) *mcpservice.Server {
	t.Helper()
	log, _ := logtest.New(t)
	srv, err := NewServer(WithLogger(log), WithClock(afternoon))
	require.NoError(t, err)
	return srv
}

func TestCatalogListings(t *testing.T) {
	srv := newServer(t)
	ctx := t.Context()

	tools, err := srv.ListTools(ctx)
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"hello-world", "foobar", "create-greeting"}, names)

	res, err := srv.ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, res.Resources, 1)
	assert.Equal(t, "hello://world", res.Resources[0].URI)

	tmpls, err := srv.ListResourceTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, tmpls.ResourceTemplates, 1)
	assert.Equal(t, "greetings://{name}", tmpls.ResourceTemplates[0].URITemplate)

	prompts, err := srv.ListPrompts(ctx)
	require.NoError(t, err)
	require.Len(t, prompts.Prompts, 1)
	assert.Equal(t, "create-greeting", prompts.Prompts[0].Name)

	assert.Equal(t, Name, srv.ServerInfo().Name)
	assert.Equal(t, Instructions, srv.Instructions())
}

func TestCatalogRegisteredToolsReturnText(t *testing.T) {
	srv := newServer(t)
	args := map[string]string{
		"hello-world":     `{}`,
		"foobar":          `{"message":"x"}`,
		"create-greeting": `{"messageType":"greeting","recipient":"Ada"}`,
	}
	tools, err := srv.ListTools(t.Context())
	require.NoError(t, err)
	for _, tool := range tools.Tools {
		res, err := srv.CallTool(t.Context(), tool.Name, json.RawMessage(args[tool.Name]))
		require.NoError(t, err, tool.Name)
		require.NotEmpty(t, res.Content, tool.Name)
		assert.NotEmpty(t, res.Content[0].Text, tool.Name)
	}
}

func TestCatalogResources(t *testing.T) {
	srv := newServer(t)

	res, err := srv.ReadResource(t.Context(), "hello://world")
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", res.Contents[0].Text)
	assert.Equal(t, "hello://world", res.Contents[0].URI)

	res, err = srv.ReadResource(t.Context(), "greetings://Ada%20Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "Good afternoon, Ada Lovelace!", res.Contents[0].Text)
	assert.Equal(t, "greetings://Ada%20Lovelace", res.Contents[0].URI)

	_, err = srv.ReadResource(t.Context(), "greetings://%7Bx%7D")
	require.ErrorIs(t, err, mcpservice.ErrResourceHandlerFailed)

	_, err = srv.ReadResource(t.Context(), "unknown://x")
	assert.True(t, mcpservice.IsNotFound(err, "resource"))
}

func TestCatalogPrompt(t *testing.T) {
	srv := newServer(t)

	res, err := srv.GetPrompt(t.Context(), "create-greeting", map[string]string{"name": "Ada", "style": "excited", "context": "returning customer"})
	require.NoError(t, err)
	assert.Equal(t,
		"Generate a excited afternoon greeting for someone named Ada. Context: returning customer. The greeting should be appropriate for the time of day and match the specified style.",
		res.Messages[0].Content.Text)
	assert.NotEmpty(t, res.System)
}
