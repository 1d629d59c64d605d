package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wolfman30/clinic-embed/pkg/logging"
)

func TestHealthEndpoint(t *testing.T) {
	r := New(&Config{Logger: logging.Default()})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != `{"status": "ok"}` {
		t.Errorf("unexpected health body: %s", rr.Body.String())
	}
}

func TestUnmountedRoutesAre404(t *testing.T) {
	// Handlers are optional; a router without them must still serve /health.
	r := New(&Config{})

	for _, path := range []string{"/embed/demo", "/heightsync", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusNotFound {
			t.Errorf("expected 404 for %s, got %d", path, rr.Code)
		}
	}
}
