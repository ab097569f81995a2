// Package hello provides the static hello://world resource.
package hello

import (
	"context"

	"github.com/listenrightmeow/mcps/mcp"
	"github.com/listenrightmeow/mcps/mcpservice"
)

// URI is the address of the resource.
const URI = "hello://world"

// Text is the body of the resource.
const Text = "Hello, World!"

// Resource returns the hello://world resource.
func Resource() mcpservice.StaticResource {
	return mcpservice.StaticResource{
		Descriptor: mcp.Resource{
			URI:         URI,
			Name:        "Hello World Message",
			Description: "A simple hello world message",
			MimeType:    "text/plain",
		},
		Handler: func(context.Context, *mcpservice.ResourceRequest) (string, error) {
			return Text, nil
		},
	}
}
