package mcp

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/foomo/contentserver-portfolio/service/vo"
	"github.com/foomo/contentserver-portfolio/widget"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// httpRequestKey is a custom context key for storing the original HTTP request
type httpRequestKey struct{}

// withHTTPRequest adds the original HTTP request to the context
func withHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, req)
}

// httpRequestFromContext extracts the original HTTP request from the context
func httpRequestFromContext(ctx context.Context) (*http.Request, bool) {
	req, ok := ctx.Value(httpRequestKey{}).(*http.Request)
	return req, ok
}

func httpContextFunc(ctx context.Context, r *http.Request) context.Context {
	return withHTTPRequest(ctx, r)
}

// RequestContextFromHTTP reads the rendered view from the query parameters
// view, post_type and taxonomy.
func RequestContextFromHTTP(r *http.Request) vo.RequestContext {
	q := r.URL.Query()
	return vo.RequestContext{
		View:     vo.View(q.Get("view")),
		PostType: q.Get("post_type"),
		Taxonomy: q.Get("taxonomy"),
	}
}

// NewMcpHTTPServer creates a streamable HTTP MCP server that keeps the
// originating request in the tool context
func NewMcpHTTPServer(s *server.MCPServer, endpoint string) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath(endpoint),
		server.WithHTTPContextFunc(httpContextFunc),
	)
}

// McpHTTPServer serves the MCP endpoint next to plain widget endpoints
type McpHTTPServer struct {
	mux *http.ServeMux
}

// NewMcpHTTPHandler mounts the MCP server at endpoint, the rendered widget at
// endpoint/widget and the widget registry at endpoint/widgets
func NewMcpHTTPHandler(logger *zap.Logger, s *server.MCPServer, widgets *widget.Registry, endpoint string) *McpHTTPServer {
	mux := http.NewServeMux()
	mux.Handle(endpoint, NewMcpHTTPServer(s, endpoint))

	mux.HandleFunc(endpoint+"/widget", func(w http.ResponseWriter, r *http.Request) {
		portfolioWidget, ok := widgets.Get(widget.IDBase)
		if !ok {
			http.Error(w, "widget not registered", http.StatusNotFound)
			return
		}
		instance := portfolioWidget.Update(map[string]string{"title": r.URL.Query().Get("title")}, nil)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := portfolioWidget.Render(r.Context(), w, vo.WidgetArgs{
			BeforeWidget: `<section class="widget ` + widget.IDBase + `">`,
			AfterWidget:  `</section>`,
			BeforeTitle:  `<h2 class="widget-title">`,
			AfterTitle:   `</h2>`,
		}, instance); err != nil {
			logger.Error("failed to write widget", zap.Error(err))
		}
	})
	mux.HandleFunc(endpoint+"/widgets", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]interface{}{
			"widgets": widgets.List(),
		}); err != nil {
			logger.Error("failed to write widget list", zap.Error(err))
		}
	})

	return &McpHTTPServer{mux: mux}
}

// ServeHTTP implements http.Handler
func (s *McpHTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
