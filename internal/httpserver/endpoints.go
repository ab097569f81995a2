package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/elnormous/contenttype"

	"github.com/listenrightmeow/mcps/mcpservice"
)

var (
	jsonMediaType  = contenttype.NewMediaType("application/json")
	textMediaType  = contenttype.NewMediaType("text/plain")
	infoMediaTypes = []contenttype.MediaType{jsonMediaType, textMediaType}
)

const healthTimeLayout = "2006-01-02T15:04:05.000Z"

// HealthHandler answers {"status":"healthy","timestamp":"..."}.
func HealthHandler(now func() time.Time) http.Handler {
	if now == nil {
		now = time.Now
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"timestamp": now().UTC().Format(healthTimeLayout),
		})
	})
}

// ToolInfo is a tool summary shown on the info endpoint.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Info describes the server on the root endpoint.
type Info struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
	Tools       []ToolInfo        `json:"tools"`
}

// NewInfo describes svc, listing its tools in registration order.
func NewInfo(ctx context.Context, svc *mcpservice.Server, endpoints map[string]string) (Info, error) {
	impl := svc.ServerInfo()
	tools, err := svc.ListTools(ctx)
	if err != nil {
		return Info{}, err
	}
	info := Info{
		Name:        impl.Name,
		Version:     impl.Version,
		Description: svc.Instructions(),
		Endpoints:   endpoints,
		Tools:       make([]ToolInfo, 0, len(tools.Tools)),
	}
	for _, t := range tools.Tools {
		info.Tools = append(info.Tools, ToolInfo{Name: t.Name, Description: t.Description})
	}
	return info, nil
}

// InfoHandler serves info as JSON or, when the client prefers it, as plain
// text. Unacceptable Accept headers get 406. Only the root path is served.
func InfoHandler(info Info) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
			return
		}
		mt, _, err := contenttype.GetAcceptableMediaType(r, infoMediaTypes)
		if err != nil {
			writeJSON(w, http.StatusNotAcceptable, map[string]string{"error": "Not acceptable"})
			return
		}
		if mt.Matches(textMediaType) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = fmt.Fprint(w, info.text())
			return
		}
		writeJSON(w, http.StatusOK, info)
	})
}

func (i Info) text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n%s\n\nEndpoints:\n", i.Name, i.Version, i.Description)
	keys := make([]string, 0, len(i.Endpoints))
	for k := range i.Endpoints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %s\n", k, i.Endpoints[k])
	}
	b.WriteString("\nTools:\n")
	for _, t := range i.Tools {
		fmt.Fprintf(&b, "  %s: %s\n", t.Name, t.Description)
	}
	return b.String()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", jsonMediaType.String())
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
