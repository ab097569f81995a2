package mcpservice

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/listenrightmeow/mcps/mcp"
	"github.com/yosida95/uritemplate/v3"
)

// ResourceRequest identifies the resource being read. Variable holds the
// decoded path variable captured by a template matcher and is empty for
// static resources.
type ResourceRequest struct {
	URI      string
	Variable string
}

// ResourceHandler produces the text of a resource.
type ResourceHandler func(ctx context.Context, req *ResourceRequest) (string, error)

// StaticResource answers exactly one URI.
type StaticResource struct {
	Descriptor mcp.Resource
	Handler    ResourceHandler
}

// TemplateResource answers every URI its matcher accepts.
type TemplateResource struct {
	Descriptor mcp.ResourceTemplate
	Matcher    URIMatcher
	Handler    ResourceHandler
}

// URIMatcher extracts the single path variable from a URI.
type URIMatcher interface {
	Match(uri string) (variable string, ok bool)
}

// RegexpMatcher matches URIs against a regular expression with exactly one
// capture group. The captured text is percent-decoded; a capture that is
// empty after decoding is not a match.
type RegexpMatcher struct {
	re *regexp.Regexp
}

var _ URIMatcher = (*RegexpMatcher)(nil)

// NewRegexpMatcher compiles expr and checks it has exactly one capture group.
func NewRegexpMatcher(expr string) (*RegexpMatcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile resource pattern: %w", err)
	}
	if n := re.NumSubexp(); n != 1 {
		return nil, fmt.Errorf("resource pattern %q: want exactly 1 capture group, got %d", expr, n)
	}
	return &RegexpMatcher{re: re}, nil
}

// MustRegexpMatcher is like NewRegexpMatcher but panics on error.
func MustRegexpMatcher(expr string) *RegexpMatcher {
	m, err := NewRegexpMatcher(expr)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *RegexpMatcher) Match(uri string) (string, bool) {
	sub := m.re.FindStringSubmatch(uri)
	if sub == nil {
		return "", false
	}
	v := sub[1]
	if decoded, err := url.PathUnescape(v); err == nil {
		v = decoded
	}
	if v == "" {
		return "", false
	}
	return v, true
}

func (m *RegexpMatcher) String() string { return m.re.String() }

// NewTemplateResource builds a TemplateResource after checking that the
// advertised URI template parses and declares exactly one variable, which is
// what the matcher hands to the handler.
func NewTemplateResource(desc mcp.ResourceTemplate, matcher URIMatcher, handler ResourceHandler) (TemplateResource, error) {
	tmpl, err := uritemplate.New(desc.URITemplate)
	if err != nil {
		return TemplateResource{}, fmt.Errorf("resource template %q: %w", desc.URITemplate, err)
	}
	if n := len(tmpl.Varnames()); n != 1 {
		return TemplateResource{}, fmt.Errorf("resource template %q: want exactly 1 variable, got %d", desc.URITemplate, n)
	}
	if matcher == nil {
		return TemplateResource{}, fmt.Errorf("resource template %q: missing matcher", desc.URITemplate)
	}
	return TemplateResource{Descriptor: desc, Matcher: matcher, Handler: handler}, nil
}
