package server

import (
	"encoding/json"
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// DefaultEndpoint is the path of the MCP endpoint.
const DefaultEndpoint = "/mcp"

// MCPHandler serves an MCP server over stateless streamable HTTP.
type MCPHandler struct {
	endpoint string
	http     *mcpserver.StreamableHTTPServer
}

// NewMCPHandler mounts s at endpoint ([DefaultEndpoint] when empty).
func NewMCPHandler(s *mcpserver.MCPServer, endpoint string) *MCPHandler {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &MCPHandler{
		endpoint: endpoint,
		http: mcpserver.NewStreamableHTTPServer(s,
			mcpserver.WithStateLess(true),
			mcpserver.WithEndpointPath(endpoint),
		),
	}
}

// Routes returns the MCP endpoint path.
func (h *MCPHandler) Routes() []string {
	return []string{h.endpoint}
}

func (h *MCPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.http.ServeHTTP(w, r)
}

// HealthHandler reports liveness.
type HealthHandler struct {
	Name    string
	Version string
}

// Routes returns the health check path.
func (h HealthHandler) Routes() []string {
	return []string{"GET /health"}
}

func (h HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"name":    h.Name,
		"version": h.Version,
	})
}
