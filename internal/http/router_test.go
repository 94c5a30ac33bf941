package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/housefest/board-service/internal/http/handlers"
	"github.com/housefest/board-service/internal/testutil"
)

type countingRefresher struct{ calls int }

func (c *countingRefresher) Trigger() bool {
	c.calls++
	return true
}

func newTestRouter(t *testing.T, admin *handlers.AdminHandler) http.Handler {
	t.Helper()
	snap := testutil.SampleSnapshot()
	svc, _ := testutil.NewBoardService(&snap)
	logger, _ := testutil.NewBufferLogger()
	return NewRouter(Routes{Board: handlers.NewHandler(svc, nil, nil), Admin: admin}, logger, nil)
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newTestRouter(t, nil)

	cases := map[string]int{
		"/health":                               http.StatusOK,
		"/ready":                                http.StatusOK,
		"/api/v1/board":                         http.StatusOK,
		"/api/v1/standings":                     http.StatusOK,
		"/api/v1/standings/chart.png":           http.StatusOK,
		"/api/v1/events/volleyball/leaderboard": http.StatusOK,
		"/api/v1/events/volleyball/schedule":    http.StatusOK,
		"/api/v1/events/curling/schedule":       http.StatusNotFound,
		"/api/v1/announcements":                 http.StatusOK,
		"/api/v1/gallery":                       http.StatusOK,
	}

	for path, expected := range cases {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
		if got := rr.Header().Get("Cache-Control"); got != "no-store" {
			t.Fatalf("route %s expected no-store, got %q", path, got)
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id on fallback response")
	}
}

func TestRouterWrongMethodReturns405(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/board", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestRouterAdminMountedOnlyWithHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	rr := httptest.NewRecorder()
	newTestRouter(t, nil).ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected admin route to be absent, got %d", rr.Code)
	}

	refresher := &countingRefresher{}
	router := newTestRouter(t, handlers.NewAdminHandler(refresher, "secret", nil))
	req = httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rr.Code)
	}
	if refresher.calls != 1 {
		t.Fatalf("expected one trigger, got %d", refresher.calls)
	}
}
