package mcp

// Method is an MCP method identifier used in JSON-RPC messages.
type Method string

// MCP method names handled by the server.
const (
	ToolsListMethod              Method = "tools/list"
	ToolsCallMethod              Method = "tools/call"
	ResourcesListMethod          Method = "resources/list"
	ResourcesReadMethod          Method = "resources/read"
	ResourcesTemplatesListMethod Method = "resources/templates/list"
	PromptsListMethod            Method = "prompts/list"
	PromptsGetMethod             Method = "prompts/get"
)

// Tools
// ListToolsResult returns the available tools.
type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

// CallToolResult represents a tool invocation result.
type CallToolResult struct {
	Content []ContentBlock `json:"content,omitempty"`
	IsError bool           `json:"isError,omitzero"`
}

// Resources
// ListResourcesResult returns the static resources.
type ListResourcesResult struct {
	Resources []Resource `json:"resources"`
}

// ListResourceTemplatesResult returns resource templates.
type ListResourceTemplatesResult struct {
	ResourceTemplates []ResourceTemplate `json:"resourceTemplates"`
}

// ReadResourceResult returns resource contents.
type ReadResourceResult struct {
	Contents []ResourceContents `json:"contents"`
}

// Prompts
// ListPromptsResult returns available prompts.
type ListPromptsResult struct {
	Prompts []Prompt `json:"prompts"`
}

// GetPromptResult carries the system prompt that should frame the
// conversation together with the messages the client forwards to a model.
type GetPromptResult struct {
	System      string          `json:"system,omitzero"`
	Description string          `json:"description,omitzero"`
	Messages    []PromptMessage `json:"messages"`
}
