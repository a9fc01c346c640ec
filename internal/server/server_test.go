package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func TestBasicRouter(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	t.Run("Handle filters method", func(t *testing.T) {
		r := NewBasicRouter()
		r.Handle("get", "/thing", ok)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/thing", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
			t.Errorf("expected 200 ok, got %d %q", rec.Code, rec.Body.String())
		}

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/thing", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
		if rec.Header().Get("Allow") != "GET" {
			t.Errorf("expected Allow: GET, got %q", rec.Header().Get("Allow"))
		}
	})

	t.Run("middleware order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		r := NewBasicRouter()
		r.Use(mark("first"), mark("second"))
		r.Handle(http.MethodGet, "/", ok)
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if strings.Join(order, ",") != "first,second" {
			t.Errorf("expected first,second, got %v", order)
		}
	})

	t.Run("Handler registers routes", func(t *testing.T) {
		r := NewBasicRouter()
		r.Handler(HealthHandler{Name: "spotimcp", Version: "0.1"})
		r.Handle(http.MethodPost, "/other", ok)

		routes := r.Routes()
		if len(routes) != 2 || routes[0] != "GET /health" || routes[1] != "POST /other" {
			t.Errorf("unexpected routes %v", routes)
		}
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("RequestID assigns id", func(t *testing.T) {
		h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Header().Get(RequestIDHeader) == "" {
			t.Error("expected request id header")
		}
	})

	t.Run("RequestID echoes client id", func(t *testing.T) {
		h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Header().Get(RequestIDHeader) != "abc" {
			t.Errorf("expected abc, got %q", rec.Header().Get(RequestIDHeader))
		}
	})

	t.Run("Logging records status", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(&buf)
		h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))

		out := buf.String()
		for _, want := range []string{"request", "/brew", "418"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected log to contain %q, got %q", want, out)
			}
		}
	})
}

func TestHandlers(t *testing.T) {
	t.Run("HealthHandler", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HealthHandler{Name: "spotimcp", Version: "0.1"}.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["status"] != "ok" || body["version"] != "0.1" {
			t.Errorf("unexpected body %v", body)
		}
	})

	t.Run("MCPHandler answers initialize", func(t *testing.T) {
		h := NewMCPHandler(mcpserver.NewMCPServer("spotimcp-test", "0.1", mcpserver.WithToolCapabilities(true)), "")
		if h.Routes()[0] != DefaultEndpoint {
			t.Errorf("expected %s, got %v", DefaultEndpoint, h.Routes())
		}

		body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`
		req := httptest.NewRequest(http.MethodPost, DefaultEndpoint, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json, text/event-stream")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "spotimcp-test") {
			t.Errorf("expected server info in response, got %s", rec.Body.String())
		}
	})
}

func TestServer(t *testing.T) {
	router := NewBasicRouter()
	router.Handler(HealthHandler{Name: "spotimcp", Version: "0.1"})

	srv := New("127.0.0.1:0", router, log.New(io.Discard))
	if err := srv.Listen(); err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	resp, err := http.Get("http://" + srv.Addr() + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
