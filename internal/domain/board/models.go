// Package board holds the domain model shared by the ingestion pipeline and its consumers.
package board

import (
	"time"

	"github.com/housefest/board-service/internal/sheet"
)

// UnrankedRank is the sort key used for a missing, zero or non-numeric rank.
const UnrankedRank = 999

// Team is one competing house. Name is the canonical uppercase identity.
type Team struct {
	Name      string `json:"name" yaml:"name" validate:"required"`
	Color     string `json:"color,omitempty" yaml:"color"`
	Gradient  string `json:"gradient,omitempty" yaml:"gradient"`
	TextColor string `json:"textColor,omitempty" yaml:"text_color"`
	Banner    string `json:"banner,omitempty" yaml:"banner"`
}

// MatchStatus mirrors the status column of the match results sheet.
type MatchStatus string

const (
	StatusNotStarted MatchStatus = "NOT_STARTED"
	StatusStarted    MatchStatus = "STARTED"
	StatusFinished   MatchStatus = "FINISHED"
)

// MatchRow is one (event, team) result row.
type MatchRow struct {
	EventID   string      `json:"eventId"`
	Team      string      `json:"team"`
	Wins      int         `json:"wins"`
	Losses    int         `json:"losses"`
	Rank      int         `json:"rank"`
	RankLabel string      `json:"rankLabel"`
	Status    MatchStatus `json:"status"`
}

// Ranked reports whether the sheet declared a usable rank for the row.
func (m MatchRow) Ranked() bool {
	return m.Rank != UnrankedRank
}

// OverallRow carries a team's authoritative total.
type OverallRow struct {
	Team   string `json:"team"`
	Points int    `json:"points"`
}

// SubEvent is one scheduled match or heat within an event.
type SubEvent struct {
	Round    string `json:"round"`
	Division string `json:"division"`
	Match    string `json:"match"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

// Announcement is one bulletin entry. Message is rich text and passed through untouched.
type Announcement struct {
	Date     string     `json:"date"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Category string     `json:"category"`
	PostedAt *time.Time `json:"postedAt,omitempty"`
}

// MediaFile is a raw entry of the media store listing.
type MediaFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType,omitempty"`
}

// GalleryImage is a directly renderable photo.
type GalleryImage struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	DisplayName string `json:"displayName"`
	DownloadURL string `json:"downloadUrl"`
}

// EventDefinition is the static skeleton of an event, independent of live data.
type EventDefinition struct {
	ID        string `json:"id" yaml:"id" validate:"required"`
	Title     string `json:"title" yaml:"title" validate:"required"`
	Time      string `json:"time" yaml:"time"`
	Location  string `json:"location" yaml:"location"`
	HasScores bool   `json:"hasScores" yaml:"has_scores"`
}

// EventDay groups event definitions under a day label.
type EventDay struct {
	Label  string            `json:"label" yaml:"label" validate:"required"`
	Events []EventDefinition `json:"events" yaml:"events" validate:"dive"`
}

// RawData is everything a source returns for one fetch cycle.
type RawData struct {
	MatchRows     []sheet.Row
	OverallRows   []sheet.Row
	Announcements []sheet.Row
	ScheduleRows  []sheet.Row
	Files         []MediaFile
}

// Snapshot is the immutable result of one successful fetch cycle.
type Snapshot struct {
	MatchRows     []MatchRow            `json:"matchRows"`
	OverallRows   []OverallRow          `json:"overallRows"`
	Announcements []Announcement        `json:"announcements"`
	Gallery       []GalleryImage        `json:"gallery"`
	Schedule      map[string][]SubEvent `json:"schedule"`
	FetchedAt     time.Time             `json:"fetchedAt"`
}

// EmptySnapshot is the explicit "no data" snapshot: empty, non-nil collections.
func EmptySnapshot() Snapshot {
	return Snapshot{
		MatchRows:     []MatchRow{},
		OverallRows:   []OverallRow{},
		Announcements: []Announcement{},
		Gallery:       []GalleryImage{},
		Schedule:      map[string][]SubEvent{},
	}
}

// IsEmpty reports whether the snapshot carries no data at all.
func (s Snapshot) IsEmpty() bool {
	return len(s.MatchRows) == 0 &&
		len(s.OverallRows) == 0 &&
		len(s.Announcements) == 0 &&
		len(s.Gallery) == 0 &&
		len(s.Schedule) == 0
}
