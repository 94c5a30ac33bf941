package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appboard "github.com/housefest/board-service/internal/app/board"
	"github.com/housefest/board-service/internal/poller"
	"github.com/housefest/board-service/internal/store"
	"github.com/housefest/board-service/internal/testutil"
)

func readyHandler(t *testing.T) *Handler {
	t.Helper()
	snap := testutil.SampleSnapshot()
	svc, _ := testutil.NewBoardService(&snap)
	return NewHandler(svc, nil, nil)
}

func eventRequest(path, eventID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	return mux.SetURLVars(req, map[string]string{EventIDVar: eventID})
}

func TestHealth(t *testing.T) {
	h := readyHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := readyHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req.WithContext(ctx))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestReadyFollowsStoreWithoutPoller(t *testing.T) {
	svc, _ := testutil.NewBoardService(nil)
	h := NewHandler(svc, nil, nil)
	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	rr = testutil.Serve(http.HandlerFunc(readyHandler(t).Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestReadyUsesPollerStatus(t *testing.T) {
	svc, _ := testutil.NewBoardService(nil)
	status := poller.Status{State: poller.StateError, ConsecutiveFailures: 3, LastError: "sheets down", LastSuccess: time.Now()}
	h := NewHandler(svc, nil, func() poller.Status { return status })

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "sheets down" {
		t.Fatalf("expected last error surfaced, got %q", resp["error"])
	}

	status = poller.Status{State: poller.StateReady, LastSuccess: time.Now()}
	rr = testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestBoard(t *testing.T) {
	h := readyHandler(t)
	rr := testutil.Serve(http.HandlerFunc(h.Board), http.MethodGet, "/api/v1/board", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var view appboard.BoardView
	testutil.DecodeJSON(t, rr, &view)
	assert.True(t, view.Ready)
	assert.Equal(t, testutil.SampleLabel, view.LastUpdated)
	require.NotNil(t, view.Leader)
	assert.Equal(t, "BENILDE", view.Leader.Team)
	require.Len(t, view.Days, 1)
	assert.Equal(t, "BENILDE", view.Days[0].Events[1].Standings[0].Team)
}

func TestBoardBeforeFirstSnapshot(t *testing.T) {
	svc, _ := testutil.NewBoardService(nil)
	h := NewHandler(svc, nil, nil)
	rr := testutil.Serve(http.HandlerFunc(h.Board), http.MethodGet, "/api/v1/board", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var view appboard.BoardView
	testutil.DecodeJSON(t, rr, &view)
	assert.False(t, view.Ready)
	assert.Equal(t, store.PlaceholderLabel, view.LastUpdated)
	assert.Nil(t, view.Leader)
}

func TestStandings(t *testing.T) {
	h := readyHandler(t)
	rr := testutil.Serve(http.HandlerFunc(h.Standings), http.MethodGet, "/api/v1/standings", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var view appboard.StandingsView
	testutil.DecodeJSON(t, rr, &view)
	require.Len(t, view.Teams, 3)
	assert.Equal(t, []int{15, 9, 0}, []int{view.Teams[0].Points, view.Teams[1].Points, view.Teams[2].Points})
	assert.Equal(t, "#c0392b", view.Teams[0].Style.Color)
}

func TestStandingsChart(t *testing.T) {
	h := readyHandler(t)
	rr := testutil.Serve(http.HandlerFunc(h.StandingsChart), http.MethodGet, "/api/v1/standings/chart.png", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rr.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("expected image/png, got %s", got)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("expected png body")
	}
}

func TestEventLeaderboard(t *testing.T) {
	h := readyHandler(t)
	rr := testutil.ServeRequest(http.HandlerFunc(h.EventLeaderboard), eventRequest("/api/v1/events/volleyball/leaderboard", "volleyball"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var view appboard.LeaderboardView
	testutil.DecodeJSON(t, rr, &view)
	assert.Equal(t, "volleyball", view.Event.ID)
	require.Len(t, view.Teams, 3)
	assert.Equal(t, "1st", view.Teams[0].Rank)
	assert.Equal(t, "Nth", view.Teams[2].Rank)
}

func TestEventScheduleAndNotFound(t *testing.T) {
	h := readyHandler(t)
	rr := testutil.ServeRequest(http.HandlerFunc(h.EventSchedule), eventRequest("/api/v1/events/volleyball/schedule", "volleyball"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var view appboard.ScheduleView
	testutil.DecodeJSON(t, rr, &view)
	require.Len(t, view.SubEvents, 1)
	assert.Equal(t, "Semifinals", view.SubEvents[0].Round)

	for _, handler := range []http.HandlerFunc{h.EventSchedule, h.EventLeaderboard} {
		rr = testutil.ServeRequest(handler, eventRequest("/api/v1/events/curling/schedule", "curling"))
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	}
}

func TestAnnouncementsAndGallery(t *testing.T) {
	h := readyHandler(t)

	rr := testutil.Serve(http.HandlerFunc(h.Announcements), http.MethodGet, "/api/v1/announcements", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var ann appboard.AnnouncementsView
	testutil.DecodeJSON(t, rr, &ann)
	assert.Equal(t, []string{"General"}, ann.Categories)

	rr = testutil.Serve(http.HandlerFunc(h.Gallery), http.MethodGet, "/api/v1/gallery", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var gallery appboard.GalleryView
	testutil.DecodeJSON(t, rr, &gallery)
	require.Len(t, gallery.Images, 1)
	assert.Equal(t, "p1", gallery.Images[0].ID)
}

func TestFallbackHandlers(t *testing.T) {
	h := readyHandler(t)
	testutil.AssertStatus(t, testutil.Serve(http.HandlerFunc(h.NotFound), http.MethodGet, "/nope", nil), http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(http.HandlerFunc(h.MethodNotAllowed), http.MethodDelete, "/health", nil), http.StatusMethodNotAllowed)
}
