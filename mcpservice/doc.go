// Package mcpservice holds the server's capability layer: an immutable
// registry pairing tool, prompt and resource descriptors with their handlers,
// a resource router resolving inbound URIs, and the Server facade that the
// transports dispatch into.
//
// Quick start:
//
//	type EchoArgs struct {
//	    Message string `json:"message" jsonschema:"description=Text to echo"`
//	}
//	echo := mcpservice.NewTool("echo", func(ctx context.Context, a EchoArgs) (*mcp.CallToolResult, error) {
//	    return mcpservice.TextResult("you said: " + a.Message), nil
//	}, mcpservice.WithToolDescription("Echo a message back to the caller"))
//
//	reg, err := mcpservice.NewRegistry(mcpservice.Definitions{
//	    Tools: []mcpservice.StaticTool{echo},
//	})
//	if err != nil {
//	    return err
//	}
//	srv := mcpservice.NewServer(reg,
//	    mcpservice.WithServerInfo(mcp.ImplementationInfo{Name: "example", Version: "1.0.0"}),
//	)
//
// Resources come in two shapes. A StaticResource answers exactly one URI. A
// TemplateResource pairs an advertised URI template with a URIMatcher that
// extracts the single path variable. Static URIs always win over templates;
// among templates the first registered match wins.
//
// The registry is read-only once built, so a Server is safe for concurrent use
// by any number of transports and sessions.
package mcpservice
