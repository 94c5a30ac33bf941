// Package schedule slices per-event sub-schedules out of the flat schedule sheet.
package schedule

import (
	"github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/sheet"
)

// Column layout of match rows. Column 3 carries the literal "vs" and is skipped.
const (
	colRound    = 0
	colDivision = 1
	colTeamA    = 2
	colTeamB    = 4
	colTime     = 5
	colVenue    = 6
)

// Parse reads every configured window out of grid. Every event in the table gets an
// entry, possibly empty; windows past the end of the grid contribute nothing.
func Parse(grid []sheet.Row, table Table) map[string][]board.SubEvent {
	events := make(map[string][]board.SubEvent, len(table))
	for _, ew := range table {
		entries := events[ew.EventID]
		if entries == nil {
			entries = []board.SubEvent{}
		}
		for _, w := range ew.Windows {
			for i := w.Start; i <= w.End; i++ {
				row := sheet.At(grid, i)
				var (
					entry board.SubEvent
					ok    bool
				)
				if ew.kind() == KindHeats {
					entry, ok = parseHeatRow(row, ew)
				} else {
					entry, ok = parseMatchRow(row, w.Division)
				}
				if ok {
					entries = append(entries, entry)
				}
			}
		}
		events[ew.EventID] = entries
	}

	for id, entries := range events {
		events[id] = FillDownRounds(entries)
	}
	return events
}

func parseMatchRow(row sheet.Row, defaultDivision string) (board.SubEvent, bool) {
	teamA := sheet.Cell(row, colTeamA)
	teamB := sheet.Cell(row, colTeamB)
	if teamA == "" || teamB == "" {
		return board.SubEvent{}, false
	}
	division := sheet.Cell(row, colDivision)
	if division == "" {
		division = defaultDivision
	}
	return board.SubEvent{
		Round:    sheet.Cell(row, colRound),
		Division: division,
		Match:    teamA + " vs " + teamB,
		Time:     sheet.Cell(row, colTime),
		Location: sheet.Cell(row, colVenue),
	}, true
}

func parseHeatRow(row sheet.Row, ew EventWindows) (board.SubEvent, bool) {
	name := sheet.Cell(row, 0)
	if name == "" {
		return board.SubEvent{}, false
	}
	division := sheet.Cell(row, 1)
	return board.SubEvent{
		Division: division,
		Match:    name + " (" + division + ")",
		Time:     ew.heatTime(),
		Location: ew.heatLocation(),
	}, true
}

// FillDownRounds carries the last non-empty round into following entries that omit it.
// It returns a new slice and leaves entries untouched.
func FillDownRounds(entries []board.SubEvent) []board.SubEvent {
	out := make([]board.SubEvent, len(entries))
	last := ""
	for i, e := range entries {
		if e.Round != "" {
			last = e.Round
		} else {
			e.Round = last
		}
		out[i] = e
	}
	return out
}
