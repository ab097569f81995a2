package sdkbridge

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/listenrightmeow/mcps/mcp"
)

// toSDKSchema converts a tool input schema into the schema type the SDK
// advertises. additionalProperties=false is expressed as the false schema.
func toSDKSchema(in mcp.ToolInputSchema) (*jsonschema.Schema, error) {
	out := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(in.Properties)),
	}
	if len(in.Required) > 0 {
		out.Required = append([]string(nil), in.Required...)
	}
	for name, p := range in.Properties {
		s, err := toSDKProperty(p)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		out.Properties[name] = s
	}
	if !in.AdditionalProperties {
		out.AdditionalProperties = &jsonschema.Schema{Not: &jsonschema.Schema{}}
	}
	return out, nil
}

func toSDKProperty(p mcp.SchemaProperty) (*jsonschema.Schema, error) {
	s := &jsonschema.Schema{Type: p.Type, Description: p.Description}
	if len(p.Enum) > 0 {
		s.Enum = append([]any(nil), p.Enum...)
	}
	if p.Default != nil {
		raw, err := json.Marshal(p.Default)
		if err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}
		s.Default = raw
	}
	if p.Items != nil {
		items, err := toSDKProperty(*p.Items)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		s.Items = items
	}
	if len(p.Properties) > 0 {
		s.Properties = make(map[string]*jsonschema.Schema, len(p.Properties))
		for name, child := range p.Properties {
			cs, err := toSDKProperty(child)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			s.Properties[name] = cs
		}
	}
	return s, nil
}
