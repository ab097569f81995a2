// Package streaminghttp serves the catalog over the MCP streamable HTTP
// transport in stateless mode: every POST is an independent request whose
// reply comes back as a single application/json body. No session id is issued
// and no server-initiated stream is kept open.
//
// Responsibilities
//   - Bind the dispatch facade onto the SDK's streamable HTTP handler
//   - Reject bodies that are not JSON before they reach the SDK
//   - Tag every request with a request id for logging
//   - Convert handler panics into a 500 JSON body
//
// Example (mount in net/http):
//
//	h, err := streaminghttp.New(svc, streaminghttp.WithLogger(log))
//	mux := http.NewServeMux()
//	mux.Handle("/mcp", h)
//	http.ListenAndServe(":3001", mux)
package streaminghttp
