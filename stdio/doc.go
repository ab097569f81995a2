// Package stdio serves the catalog over stdin/stdout for a single client,
// typically a parent process that spawned the server.
//
// Characteristics
//
//	Connection model : 1 process <-> 1 client
//	Auth             : OS user (logged, never enforced)
//	Sessions         : one, lasting until EOF or cancellation
//	Transport        : newline-delimited JSON-RPC, framed by the SDK
//
// Stdout carries protocol traffic only; logs must go elsewhere (stderr).
//
// Example:
//
//	svc, _ := catalog.NewServer()
//	h := stdio.NewHandler(svc)
//	if err := h.Serve(ctx); err != nil { log.Fatal(err) }
package stdio
