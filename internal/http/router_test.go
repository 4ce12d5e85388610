package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"portfolio/internal/cache"
	"portfolio/internal/mock"
	cl "portfolio/pkg/catalog"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	tm "github.com/twitsprout/tools/mock"
)

func TestRouteLabels(t *testing.T) {
	var mu sync.Mutex
	var got [][]string
	h := Handler{
		Cache: &mock.CatalogCache{
			CatalogFn: func(ctx context.Context) (cl.Catalog, error) {
				return cl.Catalog{}, nil
			},
		},
		Logger: tm.NopLogger,
		Stats: &mock.StatsClient{
			HistogramFn: func(name string, _ float64, labels []string) {
				mu.Lock()
				got = append(got, append([]string{name}, labels...))
				mu.Unlock()
			},
			HandlerFn: func() http.Handler { return http.NotFoundHandler() },
		},
	}
	h.Handler()

	for _, url := range []string{"/v1/catalog", "/version"} {
		wr := httptest.NewRecorder()
		h.router.ServeHTTP(wr, httptest.NewRequest("GET", url, nil))
	}

	exp := [][]string{
		{"http_request_duration_seconds", "200", "catalog"},
		{"http_request_duration_seconds", "200", "version"},
	}
	mu.Lock()
	defer mu.Unlock()
	if !cmp.Equal(got, exp) {
		t.Fatalf("unexpected durations recorded: %s", cmp.Diff(exp, got))
	}
}

func TestMemoMiddleware(t *testing.T) {
	var mu sync.Mutex
	var calls int
	src := &mock.CatalogSource{
		ListPublishedAlbumsFn: func(ctx context.Context) ([]cl.Album, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			return nil, errors.New("connection refused")
		},
	}

	table := []struct {
		label    string
		memo     bool
		expCalls int
	}{
		{label: "should query the source once per request", memo: true, expCalls: 1},
		{label: "should query the source for each view without a memo", memo: false, expCalls: 2},
	}
	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			mu.Lock()
			calls = 0
			mu.Unlock()

			h := Handler{
				Cache:  cache.New(src, tm.NopLogger),
				Logger: tm.NopLogger,
			}
			var handler http.Handler = http.HandlerFunc(h.Home)
			if ts.memo {
				handler = MemoMiddleware(handler)
			}
			wr := httptest.NewRecorder()
			handler.ServeHTTP(wr, httptest.NewRequest("GET", "/v1/home", nil))

			if wr.Code != http.StatusOK {
				t.Fatalf("unexpected response code returned: %s", cmp.Diff(http.StatusOK, wr.Code))
			}
			if wr.Header().Get(HeaderCatalogUnavailable) != "true" {
				t.Fatal("expected the response to be flagged unavailable")
			}
			mu.Lock()
			defer mu.Unlock()
			if calls != ts.expCalls {
				t.Fatalf("unexpected source calls: %s", cmp.Diff(ts.expCalls, calls))
			}
		})
	}
}

func TestVersion(t *testing.T) {
	h := Handler{
		AppName: "portfolio",
		Version: "v1.2.3",
		Logger:  tm.NopLogger,
	}
	h.Handler()
	for _, url := range []string{"/", "/version"} {
		wr := httptest.NewRecorder()
		h.router.ServeHTTP(wr, httptest.NewRequest("GET", url, nil))
		if wr.Code != http.StatusOK {
			t.Fatalf("unexpected response code returned for %s: %s", url, cmp.Diff(http.StatusOK, wr.Code))
		}
	}
}
