package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveProvider(t *testing.T) {
	before := testutil.ToFloat64(ProviderRequests.WithLabelValues("commonplayerinfo", "error"))

	ObserveProvider("commonplayerinfo", errors.New("boom"), 50*time.Millisecond)

	after := testutil.ToFloat64(ProviderRequests.WithLabelValues("commonplayerinfo", "error"))
	if after-before != 1 {
		t.Errorf("error counter delta = %v; want 1", after-before)
	}
}

func TestObserveCache(t *testing.T) {
	hits := testutil.ToFloat64(CacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(CacheLookups.WithLabelValues("miss"))

	ObserveCache(true)
	ObserveCache(false)
	ObserveCache(false)

	if d := testutil.ToFloat64(CacheLookups.WithLabelValues("hit")) - hits; d != 1 {
		t.Errorf("hit delta = %v; want 1", d)
	}
	if d := testutil.ToFloat64(CacheLookups.WithLabelValues("miss")) - misses; d != 2 {
		t.Errorf("miss delta = %v; want 2", d)
	}
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/players/{playerID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/players/{playerID}", "418"))

	req := httptest.NewRequest(http.MethodGet, "/players/2544", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/players/{playerID}", "418"))
	if after-before != 1 {
		t.Errorf("request counter delta = %v; want 1", after-before)
	}
}
