package testutil

import (
	"github.com/housefest/board-service/internal/config"
	"github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/schedule"
	"github.com/housefest/board-service/internal/standings"
)

// SampleLayout returns a two-event layout with three teams.
func SampleLayout() config.Layout {
	return config.Layout{
		Teams: []board.Team{
			{Name: "MUTIEN", Color: "#1f8a3b"},
			{Name: "BENILDE", Color: "#c0392b"},
			{Name: "JAIME", Color: "#2e86c1"},
		},
		Days: []board.EventDay{{
			Label: "Day 1",
			Events: []board.EventDefinition{
				{ID: "opening", Title: "Opening Ceremony"},
				{ID: "volleyball", Title: "Volleyball", HasScores: true},
			},
		}},
		Schedule: schedule.Table{{EventID: "volleyball", Windows: []schedule.Window{{Start: 0, End: 3}}}},
		Scale:    standings.DefaultScale,
	}
}

// SampleSnapshot returns a snapshot consistent with SampleLayout.
func SampleSnapshot() board.Snapshot {
	snap := board.EmptySnapshot()
	snap.MatchRows = []board.MatchRow{
		{EventID: "volleyball", Team: "Benilde", Wins: 3, Rank: 1, RankLabel: "1st", Status: board.StatusFinished},
		{EventID: "volleyball", Team: "Mutien", Wins: 2, Losses: 1, Rank: 2, RankLabel: "2nd", Status: board.StatusFinished},
	}
	snap.OverallRows = []board.OverallRow{{Team: "BENILDE", Points: 15}, {Team: "MUTIEN", Points: 9}}
	snap.Schedule["volleyball"] = []board.SubEvent{
		{Round: "Semifinals", Match: "MUTIEN vs JAIME", Time: "9:00 AM", Location: "Pergola"},
	}
	snap.Announcements = []board.Announcement{
		{Date: "2026-02-04", Title: "Opening", Message: "See you at the courts", Category: "General"},
	}
	snap.Gallery = []board.GalleryImage{{ID: "p1", DisplayName: "one.jpg"}}
	snap.FetchedAt = MustParseRFC3339("2026-02-04T01:00:00Z")
	return snap
}
