package board

import (
	"strings"

	"github.com/housefest/board-service/internal/sheet"
)

// Column layout of the match results sheet.
const (
	colMatchEvent = iota
	colMatchTeam
	colMatchWins
	colMatchLosses
	colMatchRank
	colMatchStatus
)

// ParseMatchRows turns normalized match-result rows into typed rows. Rows without an
// event id or team are dropped; malformed numbers fall back to defaults.
func ParseMatchRows(rows []sheet.Row) []MatchRow {
	out := make([]MatchRow, 0, len(rows))
	for _, row := range rows {
		eventID := sheet.Cell(row, colMatchEvent)
		team := sheet.Cell(row, colMatchTeam)
		if eventID == "" || team == "" {
			continue
		}
		label := sheet.Cell(row, colMatchRank)
		out = append(out, MatchRow{
			EventID:   eventID,
			Team:      team,
			Wins:      intOrZero(sheet.Cell(row, colMatchWins)),
			Losses:    intOrZero(sheet.Cell(row, colMatchLosses)),
			Rank:      ParseRank(label),
			RankLabel: label,
			Status:    ParseStatus(sheet.Cell(row, colMatchStatus)),
		})
	}
	return out
}

// ParseOverallRows turns normalized overall rows (team, points) into typed rows.
func ParseOverallRows(rows []sheet.Row) []OverallRow {
	out := make([]OverallRow, 0, len(rows))
	for _, row := range rows {
		team := sheet.Cell(row, 0)
		if team == "" {
			continue
		}
		out = append(out, OverallRow{Team: team, Points: intOrZero(sheet.Cell(row, 1))})
	}
	return out
}

// ParseRank returns the declared rank, or UnrankedRank for blank, zero or non-numeric values.
func ParseRank(label string) int {
	n, ok := sheet.LeadingInt(label)
	if !ok || n == 0 {
		return UnrankedRank
	}
	return n
}

// ParseStatus maps the free-text status column onto MatchStatus.
func ParseStatus(raw string) MatchStatus {
	switch sheet.NormalizeKey(raw) {
	case "finished", "done", "final", "complete", "completed", "ended":
		return StatusFinished
	case "started", "ongoing", "live", "inprogress", "playing":
		return StatusStarted
	default:
		return StatusNotStarted
	}
}

func intOrZero(raw string) int {
	n, ok := sheet.LeadingInt(strings.TrimSpace(raw))
	if !ok {
		return 0
	}
	return n
}
