package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchWildcardRoute(t *testing.T) {
	tests := []struct {
		path, pattern string
		want          bool
	}{
		{"/api/v1/topologies/abc", "/api/v1/topologies/*", true},
		{"/api/v1/topologies/abc/errors", "/api/v1/topologies/*", true},
		{"/api/v1/topologies", "/api/v1/topologies/*", false},
		{"/api/v1/topologies/", "/api/v1/topologies/*", false},
		{"/api/v1/topologies/abc/errors", "/api/v1/topologies/*/errors", true},
		{"/api/v1/topologies/abc/diagnostics", "/api/v1/topologies/*/errors", false},
		{"/api/v1/topologies//errors", "/api/v1/topologies/*/errors", false},
		{"/swagger/index.html", "/swagger/*", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchWildcardRoute(tt.path, tt.pattern), "%s ~ %s", tt.path, tt.pattern)
	}
}

func TestParam(t *testing.T) {
	assert.Equal(t, "abc", Param("/api/v1/topologies/abc/errors", "/api/v1/topologies/*/errors"))
	assert.Equal(t, "abc", Param("/api/v1/topologies/abc", "/api/v1/topologies/*"))
	assert.Equal(t, "", Param("/other", "/api/v1/topologies/*"))
}

func newTestRouter() *Router {
	r := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	write := func(body string) HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) { io.WriteString(w, body) }
	}
	r.GET("/items", write("list"))
	r.GET("/items/*/errors", write("errors"))
	r.GET("/items/*", write("item"))
	r.DELETE("/items/*", write("deleted"))
	return r
}

func TestRouterDispatch(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		method, path string
		status       int
		body         string
	}{
		{http.MethodGet, "/items", http.StatusOK, "list"},
		{http.MethodGet, "/items/1/errors", http.StatusOK, "errors"},
		{http.MethodGet, "/items/1", http.StatusOK, "item"},
		{http.MethodDelete, "/items/1", http.StatusOK, "deleted"},
		{http.MethodPost, "/items/1", http.StatusMethodNotAllowed, ""},
		{http.MethodPost, "/items", http.StatusMethodNotAllowed, ""},
		{http.MethodGet, "/nothing", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestRouterOrderIsStable(t *testing.T) {
	// the generic route must not shadow the specific one, however often we ask
	r := newTestRouter()
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/x/errors", nil))
		assert.Equal(t, "errors", rec.Body.String())
	}
}
