// Package fixture serves a deterministic demo board for local runs and tests.
package fixture

import (
	"context"
	"time"

	"github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/sheet"
)

const providerName = "fixture"

// scheduleRows is the height of the demo schedule grid; it covers every default window.
const scheduleRows = 136

// Provider returns a static board shaped like the production spreadsheet.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return providerName
}

// FetchRaw returns the demo rows. The result is rebuilt on every call so callers may
// keep it without aliasing.
func (p *Provider) FetchRaw(ctx context.Context, hint time.Time) (board.RawData, error) {
	_ = hint
	if err := ctx.Err(); err != nil {
		return board.RawData{}, err
	}
	return board.RawData{
		MatchRows: []sheet.Row{
			{"volleyball", "Mutien", "3", "1", "2", "Finished"},
			{"volleyball", "Benilde", "4", "0", "1", "Finished"},
			{"bball-boys", "Jaime", "2", "0", "1", "Started"},
			{"bball-boys", "Miguel", "1", "1", "2", "Started"},
			{"bball-boys", "Mutien", "0", "2", "", "Started"},
			{"swimming", "Benilde", "", "", "1st", "Finished"},
			{"swimming", "Miguel", "", "", "2nd", "Finished"},
		},
		OverallRows: []sheet.Row{
			{"MUTIEN", "85"},
			{"BENILDE", "120"},
			{"JAIME", "60"},
			{"MIGUEL", "95"},
		},
		Announcements: []sheet.Row{
			{"2026-02-04", "Opening Ceremony", "Assemble at the <b>Covered Courts</b> by 7:45 AM.", "Logistics"},
			{"2026-02-04", "Volleyball results", "Benilde takes the volleyball crown.", "Results"},
			{"", "Water stations", "Refill stations are beside the Pergola and SMG.", ""},
		},
		ScheduleRows: demoSchedule(),
		Files: []board.MediaFile{
			{ID: "fixture-photo-3", Name: "volleyball-finals.jpg", MimeType: "image/jpeg"},
			{ID: "fixture-photo-2", Name: "tug-of-war.jpg", MimeType: "image/jpeg"},
			{ID: "fixture-photo-1", Name: "opening.png", MimeType: "image/png"},
		},
	}, nil
}

func demoSchedule() []sheet.Row {
	grid := make([]sheet.Row, scheduleRows)
	place := func(index int, cells ...any) {
		grid[index] = sheet.Row(cells)
	}

	place(0, "BASKETBALL BOYS")
	place(1, "Eliminations", "", "Mutien", "vs", "Benilde", "9:00 AM", "Covered Courts")
	place(2, "", "", "Jaime", "vs", "Miguel", "10:00 AM", "Covered Courts")
	place(3, "Finals", "", "TBD", "vs", "", "4:00 PM", "Covered Courts")

	place(9, "BASKETBALL GIRLS")
	place(10, "Round Robin", "", "Benilde", "vs", "Jaime", "9:00 AM", "SMG")

	place(18, "VOLLEYBALL")
	place(19, "Semifinals", "Mixed", "Mutien", "vs", "Miguel", "9:00 AM", "Pergola")
	place(20, "", "Mixed", "Benilde", "vs", "Jaime", "10:30 AM", "Pergola")
	place(21, "Finals", "Mixed", "Benilde", "vs", "Mutien", "1:00 PM", "Pergola")

	place(50, "Round 1", "", "Mutien", "vs", "Jaime", "9:00 AM", "Quad")
	place(59, "Round 1", "", "Benilde", "vs", "Miguel", "9:00 AM", "Quad")

	place(69, "50m Freestyle", "Boys")
	place(70, "50m Freestyle", "Girls")
	place(71, "4x50m Relay", "Mixed")

	place(124, "Quarterfinals", "", "Jaime", "vs", "Benilde", "1:00 PM", "SMG")
	return grid
}
