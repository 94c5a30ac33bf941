package board

import (
	domainboard "github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/standings"
)

// BoardView is the whole board as served to live clients.
type BoardView struct {
	Header
	Days          []DayView                 `json:"days"`
	Standings     []TeamView                `json:"standings"`
	Leader        *TeamView                 `json:"leader,omitempty"`
	Announcements AnnouncementsView         `json:"announcements"`
	Gallery       []domainboard.GalleryImage `json:"gallery"`
}

type DayView struct {
	Label  string      `json:"label"`
	Events []EventView `json:"events"`
}

// EventView is one catalog event with its sub-schedule and, for scored events, the
// ranked teams.
type EventView struct {
	domainboard.EventDefinition
	SubEvents []domainboard.SubEvent    `json:"subEvents"`
	Standings []standings.EventStanding `json:"standings,omitempty"`
}

// TeamView is an overall standing decorated with the team's styling.
type TeamView struct {
	standings.TeamStanding
	Style domainboard.Team `json:"style"`
}

type StandingsView struct {
	Header
	Teams  []TeamView `json:"teams"`
	Leader *TeamView  `json:"leader,omitempty"`
}

type LeaderboardView struct {
	Header
	Event domainboard.EventDefinition `json:"event"`
	Teams []standings.EventStanding   `json:"teams"`
}

type ScheduleView struct {
	Header
	Event     domainboard.EventDefinition `json:"event"`
	SubEvents []domainboard.SubEvent      `json:"subEvents"`
}

type AnnouncementsView struct {
	Items      []domainboard.Announcement            `json:"items"`
	Categories []string                              `json:"categories"`
	Groups     map[string][]domainboard.Announcement `json:"groups"`
}

type GalleryView struct {
	Header
	Images []domainboard.GalleryImage `json:"images"`
}
