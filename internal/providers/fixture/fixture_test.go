package fixture

import (
	"context"
	"testing"
	"time"

	"github.com/housefest/board-service/internal/config"
	"github.com/housefest/board-service/internal/schedule"
)

func TestFetchRawReturnsDemoBoard(t *testing.T) {
	p := New()

	raw, err := p.FetchRaw(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(raw.MatchRows) == 0 || len(raw.OverallRows) != 4 {
		t.Fatalf("unexpected rows: %d match, %d overall", len(raw.MatchRows), len(raw.OverallRows))
	}
	if len(raw.ScheduleRows) != scheduleRows {
		t.Fatalf("expected %d schedule rows, got %d", scheduleRows, len(raw.ScheduleRows))
	}
	if raw.Files[0].ID != "fixture-photo-3" {
		t.Fatalf("expected newest photo first, got %s", raw.Files[0].ID)
	}
	if p.Name() != "fixture" {
		t.Fatalf("unexpected name %s", p.Name())
	}
}

func TestDemoScheduleFitsDefaultLayout(t *testing.T) {
	layout, err := config.DefaultLayout()
	if err != nil {
		t.Fatalf("default layout: %v", err)
	}
	raw, _ := New().FetchRaw(context.Background(), time.Now())

	events := schedule.Parse(raw.ScheduleRows, layout.Schedule)

	if got := len(events["bball-boys"]); got != 2 {
		t.Fatalf("expected 2 basketball matches (open final excluded), got %d", got)
	}
	if got := events["volleyball"][1].Round; got != "Semifinals" {
		t.Fatalf("expected round fill-down, got %q", got)
	}
	if got := events["frisbee"][1].Division; got != "Girls" {
		t.Fatalf("expected window division, got %q", got)
	}
	if got := len(events["swimming"]); got != 3 {
		t.Fatalf("expected 3 heats, got %d", got)
	}
	if got := len(events["badminton"]); got != 0 {
		t.Fatalf("expected empty badminton schedule, got %d", got)
	}
}

func TestFetchRawHonoursCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().FetchRaw(ctx, time.Now()); err == nil {
		t.Fatalf("expected context error")
	}
}
