package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/housefest/board-service/internal/testutil"
)

type stubRefresher struct {
	calls  int
	accept bool
}

func (s *stubRefresher) Trigger() bool {
	s.calls++
	return s.accept
}

func adminRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAdminRefreshRequiresAuth(t *testing.T) {
	refresher := &stubRefresher{accept: true}
	h := NewAdminHandler(refresher, "secret", nil)

	for _, token := range []string{"", "wrong"} {
		rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest(token))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	}
	if refresher.calls != 0 {
		t.Fatalf("expected no refresh for unauthorized calls, got %d", refresher.calls)
	}
}

func TestAdminRefreshWithoutTokenConfiguredRejects(t *testing.T) {
	h := NewAdminHandler(&stubRefresher{}, "", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest(""))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminRefreshTriggers(t *testing.T) {
	refresher := &stubRefresher{accept: true}
	h := NewAdminHandler(refresher, "secret", nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusAccepted)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "queued" {
		t.Fatalf("expected queued, got %s", resp["status"])
	}
	if refresher.calls != 1 {
		t.Fatalf("expected one trigger, got %d", refresher.calls)
	}
}

func TestAdminRefreshCoalesced(t *testing.T) {
	h := NewAdminHandler(&stubRefresher{accept: false}, "secret", nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusAccepted)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "pending" {
		t.Fatalf("expected pending, got %s", resp["status"])
	}
}

func TestAdminRefreshWithoutRefresher(t *testing.T) {
	h := NewAdminHandler(nil, "secret", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}
