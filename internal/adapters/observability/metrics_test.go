package observability_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"worldacross/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample per family so they show up in the output
	observability.ObserveHTTP("/api/destinations", "GET", 200, 12*time.Millisecond)
	observability.ObserveAPICall("destinations.getAll", "ok")
	observability.ObserveSeed("package", errors.New("boom"))
	observability.ObserveCache("redis", "hit")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, want := range []string{
		"worldacross_http_requests_total",
		`worldacross_api_calls_total{op="destinations.getAll",outcome="ok"}`,
		`worldacross_seeded_records_total{kind="package",result="error"}`,
		`worldacross_cache_events_total{cache="redis",event="hit"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in metrics output", want)
		}
	}
}
