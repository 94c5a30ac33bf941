// Package standings ranks teams per event and overall. Every function is pure.
package standings

import (
	"sort"
	"strconv"

	"github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/sheet"
)

const (
	// MissingStat is displayed for wins and losses of a team with no row for the event.
	MissingStat = "-"
	// MissingRank is displayed for the rank of a team with no row for the event.
	MissingRank = "Nth"
)

// EventStanding is one team's line on an event leaderboard.
type EventStanding struct {
	Team      string            `json:"team"`
	Wins      string            `json:"wins"`
	Losses    string            `json:"losses"`
	Rank      string            `json:"rank"`
	Status    board.MatchStatus `json:"status"`
	Reported  bool              `json:"reported"`
	// RankValue is the sort key; unranked lines carry board.UnrankedRank.
	RankValue int               `json:"rankValue"`
	WinCount  int               `json:"-"`
}

// RankEventTeams builds the leaderboard of eventID over the team catalog. Teams are
// matched to rows by normalized name. Order is declared rank ascending (unranked
// last), then wins descending, then team name ascending.
func RankEventTeams(rows []board.MatchRow, eventID string, teams []board.Team) []EventStanding {
	eventKey := sheet.NormalizeKey(eventID)
	byTeam := make(map[string]board.MatchRow)
	for _, row := range rows {
		if sheet.NormalizeKey(row.EventID) != eventKey {
			continue
		}
		key := sheet.NormalizeKey(row.Team)
		if _, seen := byTeam[key]; seen {
			continue
		}
		byTeam[key] = row
	}

	out := make([]EventStanding, 0, len(teams))
	for _, team := range teams {
		row, ok := byTeam[sheet.NormalizeKey(team.Name)]
		if !ok {
			out = append(out, EventStanding{
				Team:      team.Name,
				Wins:      MissingStat,
				Losses:    MissingStat,
				Rank:      MissingRank,
				Status:    board.StatusNotStarted,
				RankValue: board.UnrankedRank,
			})
			continue
		}
		label := row.RankLabel
		if label == "" {
			label = MissingRank
		}
		out = append(out, EventStanding{
			Team:      team.Name,
			Wins:      strconv.Itoa(row.Wins),
			Losses:    strconv.Itoa(row.Losses),
			Rank:      label,
			Status:    row.Status,
			Reported:  true,
			RankValue: row.Rank,
			WinCount:  row.Wins,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.RankValue != b.RankValue {
			return a.RankValue < b.RankValue
		}
		if a.WinCount != b.WinCount {
			return a.WinCount > b.WinCount
		}
		return a.Team < b.Team
	})
	return out
}
