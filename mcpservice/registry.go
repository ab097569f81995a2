package mcpservice

import (
	"errors"
	"fmt"

	"github.com/listenrightmeow/mcps/mcp"
)

// Definitions is the full set of capabilities a Registry is built from.
// Slice order is preserved in listings and, for templates, in matching.
type Definitions struct {
	Tools     []StaticTool
	Prompts   []StaticPrompt
	Resources []StaticResource
	Templates []TemplateResource
}

// Registry is the immutable lookup table behind a Server. It is built once by
// NewRegistry and only exposes read accessors afterwards.
type Registry struct {
	tools     []StaticTool
	toolIdx   map[string]int
	prompts   []StaticPrompt
	promptIdx map[string]int

	resources   []StaticResource
	resourceIdx map[string]int
	templates   []TemplateResource
}

// NewRegistry validates defs and builds a Registry. Every descriptor needs a
// handler, and tool names, prompt names, static URIs and URI templates must
// each be unique.
func NewRegistry(defs Definitions) (*Registry, error) {
	r := &Registry{
		toolIdx:     make(map[string]int, len(defs.Tools)),
		promptIdx:   make(map[string]int, len(defs.Prompts)),
		resourceIdx: make(map[string]int, len(defs.Resources)),
	}
	var errs []error

	for _, t := range defs.Tools {
		name := t.Descriptor.Name
		switch {
		case name == "":
			errs = append(errs, errors.New("tool with empty name"))
		case t.Handler == nil:
			errs = append(errs, fmt.Errorf("tool %q: missing handler", name))
		case hasKey(r.toolIdx, name):
			errs = append(errs, fmt.Errorf("tool %q: registered twice", name))
		default:
			r.toolIdx[name] = len(r.tools)
			r.tools = append(r.tools, t)
		}
	}

	for _, p := range defs.Prompts {
		name := p.Descriptor.Name
		switch {
		case name == "":
			errs = append(errs, errors.New("prompt with empty name"))
		case p.Handler == nil:
			errs = append(errs, fmt.Errorf("prompt %q: missing handler", name))
		case hasKey(r.promptIdx, name):
			errs = append(errs, fmt.Errorf("prompt %q: registered twice", name))
		default:
			r.promptIdx[name] = len(r.prompts)
			r.prompts = append(r.prompts, p)
		}
	}

	for _, res := range defs.Resources {
		uri := res.Descriptor.URI
		switch {
		case uri == "":
			errs = append(errs, errors.New("resource with empty uri"))
		case res.Handler == nil:
			errs = append(errs, fmt.Errorf("resource %q: missing handler", uri))
		case hasKey(r.resourceIdx, uri):
			errs = append(errs, fmt.Errorf("resource %q: registered twice", uri))
		default:
			r.resourceIdx[uri] = len(r.resources)
			r.resources = append(r.resources, res)
		}
	}

	seenTemplates := make(map[string]struct{}, len(defs.Templates))
	for _, tr := range defs.Templates {
		name := tr.Descriptor.Name
		switch {
		case tr.Descriptor.URITemplate == "":
			errs = append(errs, fmt.Errorf("resource template %q: empty uri template", name))
		case tr.Matcher == nil:
			errs = append(errs, fmt.Errorf("resource template %q: missing matcher", name))
		case tr.Handler == nil:
			errs = append(errs, fmt.Errorf("resource template %q: missing handler", name))
		default:
			if _, dup := seenTemplates[tr.Descriptor.URITemplate]; dup {
				errs = append(errs, fmt.Errorf("resource template %q: registered twice", tr.Descriptor.URITemplate))
				continue
			}
			seenTemplates[tr.Descriptor.URITemplate] = struct{}{}
			r.templates = append(r.templates, tr)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid registry: %w", err)
	}
	return r, nil
}

func hasKey(m map[string]int, k string) bool {
	_, ok := m[k]
	return ok
}

// Tools returns a copy of the tool descriptors in registration order.
func (r *Registry) Tools() []mcp.Tool {
	out := make([]mcp.Tool, len(r.tools))
	for i, t := range r.tools {
		out[i] = t.Descriptor
	}
	return out
}

// Tool looks up a tool handler by exact name.
func (r *Registry) Tool(name string) (ToolHandler, bool) {
	i, ok := r.toolIdx[name]
	if !ok {
		return nil, false
	}
	return r.tools[i].Handler, true
}

// Prompts returns a copy of the prompt descriptors in registration order.
func (r *Registry) Prompts() []mcp.Prompt {
	out := make([]mcp.Prompt, len(r.prompts))
	for i, p := range r.prompts {
		out[i] = p.Descriptor
	}
	return out
}

// Prompt looks up a prompt handler by exact name.
func (r *Registry) Prompt(name string) (PromptHandler, bool) {
	i, ok := r.promptIdx[name]
	if !ok {
		return nil, false
	}
	return r.prompts[i].Handler, true
}

// Resources returns a copy of the static resource descriptors.
func (r *Registry) Resources() []mcp.Resource {
	out := make([]mcp.Resource, len(r.resources))
	for i, res := range r.resources {
		out[i] = res.Descriptor
	}
	return out
}

// ResourceTemplates returns a copy of the template descriptors.
func (r *Registry) ResourceTemplates() []mcp.ResourceTemplate {
	out := make([]mcp.ResourceTemplate, len(r.templates))
	for i, t := range r.templates {
		out[i] = t.Descriptor
	}
	return out
}

func (r *Registry) staticResource(uri string) (StaticResource, bool) {
	i, ok := r.resourceIdx[uri]
	if !ok {
		return StaticResource{}, false
	}
	return r.resources[i], true
}
