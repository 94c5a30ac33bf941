package standings

import (
	"sort"
	"strconv"

	"github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/sheet"
)

var ordinalSuffixes = []string{"st", "nd", "rd"}

// TeamStanding is one team's place in the overall table.
type TeamStanding struct {
	Team      string  `json:"team"`
	Points    int     `json:"points"`
	Rank      int     `json:"rank"`
	Ordinal   string  `json:"ordinal"`
	Magnitude float64 `json:"magnitude"`
}

// Overall ranks the whole team catalog by points, highest first. Teams without a row
// score 0. Equal points are ordered by team name.
func Overall(rows []board.OverallRow, teams []board.Team, scale Scale) []TeamStanding {
	points := make(map[string]int, len(rows))
	for _, row := range rows {
		key := sheet.NormalizeKey(row.Team)
		if _, seen := points[key]; seen {
			continue
		}
		points[key] = row.Points
	}

	out := make([]TeamStanding, 0, len(teams))
	maxPoints := 0
	for _, team := range teams {
		p := points[sheet.NormalizeKey(team.Name)]
		if p > maxPoints {
			maxPoints = p
		}
		out = append(out, TeamStanding{Team: team.Name, Points: p})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Team < out[j].Team
	})

	for i := range out {
		out[i].Rank = i + 1
		out[i].Ordinal = Ordinal(i)
		out[i].Magnitude = Magnitude(out[i].Points, maxPoints, scale)
	}
	return out
}

// RankOverall returns the overall standing of a single team. ok is false when the team
// is not part of the catalog.
func RankOverall(rows []board.OverallRow, teams []board.Team, team string, scale Scale) (TeamStanding, bool) {
	key := sheet.NormalizeKey(team)
	for _, s := range Overall(rows, teams, scale) {
		if sheet.NormalizeKey(s.Team) == key {
			return s, true
		}
	}
	return TeamStanding{}, false
}

// Ordinal labels a zero-based position: 1st, 2nd, 3rd, then "th" for everything after.
func Ordinal(index int) string {
	suffix := "th"
	if index >= 0 && index < len(ordinalSuffixes) {
		suffix = ordinalSuffixes[index]
	}
	return strconv.Itoa(index+1) + suffix
}

// Leader returns the first-placed team when it has scored.
func Leader(standings []TeamStanding) (TeamStanding, bool) {
	if len(standings) == 0 || standings[0].Points <= 0 {
		return TeamStanding{}, false
	}
	return standings[0], true
}
