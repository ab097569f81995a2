// Package jsonrpc holds the JSON-RPC 2.0 envelope the server uses for
// out-of-band messages such as structured log lines. Request/response framing
// for protocol traffic belongs to the SDK transports.
package jsonrpc

import (
	"encoding/json"
	"fmt"
)

// ProtocolVersion is the supported JSON-RPC protocol version.
const ProtocolVersion = "2.0"

// Notification is a JSON-RPC request without an ID.
type Notification struct {
	JSONRPCVersion string `json:"jsonrpc"`
	Method         string `json:"method"`
	Params         any    `json:"params,omitempty"`
}

// NewNotification builds a notification for method with the given params.
func NewNotification(method string, params any) *Notification {
	return &Notification{
		JSONRPCVersion: ProtocolVersion,
		Method:         method,
		Params:         params,
	}
}

// Marshal encodes the notification as a single JSON line without the
// trailing newline.
func (n *Notification) Marshal() ([]byte, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification: %w", err)
	}
	return b, nil
}
