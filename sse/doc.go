// Package sse serves the catalog over the MCP server-sent-events transport.
//
// A client opens a long-lived GET stream; the first event names the URL
// (carrying a session id) to which it POSTs its JSON-RPC messages. Replies
// travel back over the stream. Each stream is an independent session.
package sse
