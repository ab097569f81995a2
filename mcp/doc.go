// Package mcp contains the protocol data types the server's registry and
// dispatch layer speak: descriptors for tools, resources and prompts, content
// blocks, and the result envelopes returned for each request category.
//
// The package is free of transport logic. Framing, session handling and the
// JSON-RPC exchange are supplied by the SDK-backed transports; those adapters
// convert between these types and the SDK's at the edge.
//
// # Method Names
//
// JSON-RPC method names are enumerated as Method constants (e.g.
// ResourcesReadMethod) so log lines and routing tags share one spelling.
//
// Example (tool result construction):
//
//	res := &mcp.CallToolResult{
//	    Content: []mcp.ContentBlock{{Type: mcp.ContentTypeText, Text: "hello"}},
//	}
package mcp
