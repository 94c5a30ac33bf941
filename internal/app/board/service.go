package board

import (
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/housefest/board-service/internal/announcements"
	"github.com/housefest/board-service/internal/config"
	domainboard "github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/standings"
	"github.com/housefest/board-service/internal/store"
)

// ErrEventNotFound is returned for event ids missing from the layout.
var ErrEventNotFound = crerr.New("event not found")

// Store defines the read side of the snapshot store.
type Store interface {
	Current() (domainboard.Snapshot, store.Meta, bool)
}

// Service joins the static layout with the current snapshot into client views.
type Service struct {
	store  Store
	layout config.Layout
}

// NewService constructs a Service with the provided Store and layout.
func NewService(store Store, layout config.Layout) *Service {
	return &Service{store: store, layout: layout}
}

// Layout exposes the layout the views are built from.
func (s *Service) Layout() config.Layout {
	return s.layout
}

// Board returns the full board view.
func (s *Service) Board() BoardView {
	snap, meta, ready := s.current()
	teams := s.teamViews(snap)

	days := make([]DayView, 0, len(s.layout.Days))
	for _, day := range s.layout.Days {
		events := make([]EventView, 0, len(day.Events))
		for _, ev := range day.Events {
			events = append(events, s.eventView(snap, ev))
		}
		days = append(days, DayView{Label: day.Label, Events: events})
	}

	return BoardView{
		Header:        newHeader(snap, meta, ready),
		Days:          days,
		Standings:     teams,
		Leader:        leaderOf(teams),
		Announcements: s.announcementsView(snap),
		Gallery:       nonNilGallery(snap.Gallery),
	}
}

// Standings returns the overall table with team styling and the leader banner.
func (s *Service) Standings() StandingsView {
	snap, meta, ready := s.current()
	teams := s.teamViews(snap)
	return StandingsView{
		Header: newHeader(snap, meta, ready),
		Teams:  teams,
		Leader: leaderOf(teams),
	}
}

// OverallStandings returns the raw overall ranking, used by the chart renderer.
func (s *Service) OverallStandings() []standings.TeamStanding {
	snap, _, _ := s.current()
	return standings.Overall(snap.OverallRows, s.layout.Teams, s.layout.Scale)
}

// EventLeaderboard ranks the catalog teams for one event.
func (s *Service) EventLeaderboard(eventID string) (LeaderboardView, error) {
	ev, ok := s.layout.Event(eventID)
	if !ok {
		return LeaderboardView{}, crerr.Wrapf(ErrEventNotFound, "event %q", eventID)
	}
	snap, meta, ready := s.current()
	return LeaderboardView{
		Header: newHeader(snap, meta, ready),
		Event:  ev,
		Teams:  standings.RankEventTeams(snap.MatchRows, ev.ID, s.layout.Teams),
	}, nil
}

// EventSchedule returns the parsed sub-schedule of one event.
func (s *Service) EventSchedule(eventID string) (ScheduleView, error) {
	ev, ok := s.layout.Event(eventID)
	if !ok {
		return ScheduleView{}, crerr.Wrapf(ErrEventNotFound, "event %q", eventID)
	}
	snap, meta, ready := s.current()
	return ScheduleView{
		Header:    newHeader(snap, meta, ready),
		Event:     ev,
		SubEvents: subEventsFor(snap, ev.ID),
	}, nil
}

// Announcements returns announcements grouped by category.
func (s *Service) Announcements() AnnouncementsView {
	snap, _, _ := s.current()
	return s.announcementsView(snap)
}

// Gallery returns the resolved gallery images.
func (s *Service) Gallery() GalleryView {
	snap, meta, ready := s.current()
	return GalleryView{
		Header: newHeader(snap, meta, ready),
		Images: nonNilGallery(snap.Gallery),
	}
}

// Ready reports whether a snapshot has been accepted.
func (s *Service) Ready() bool {
	_, _, ready := s.current()
	return ready
}

func (s *Service) current() (domainboard.Snapshot, store.Meta, bool) {
	if s.store == nil {
		return domainboard.EmptySnapshot(), store.Meta{LastUpdated: store.PlaceholderLabel}, false
	}
	return s.store.Current()
}

func (s *Service) eventView(snap domainboard.Snapshot, ev domainboard.EventDefinition) EventView {
	view := EventView{
		EventDefinition: ev,
		SubEvents:       subEventsFor(snap, ev.ID),
	}
	if ev.HasScores {
		view.Standings = standings.RankEventTeams(snap.MatchRows, ev.ID, s.layout.Teams)
	}
	return view
}

func (s *Service) teamViews(snap domainboard.Snapshot) []TeamView {
	ranked := standings.Overall(snap.OverallRows, s.layout.Teams, s.layout.Scale)
	out := make([]TeamView, 0, len(ranked))
	for _, st := range ranked {
		style, _ := s.layout.Team(st.Team)
		out = append(out, TeamView{TeamStanding: st, Style: style})
	}
	return out
}

func (s *Service) announcementsView(snap domainboard.Snapshot) AnnouncementsView {
	items := snap.Announcements
	if items == nil {
		items = []domainboard.Announcement{}
	}
	groups := announcements.GroupByCategory(items)
	return AnnouncementsView{
		Items:      items,
		Categories: announcements.Categories(groups),
		Groups:     groups,
	}
}

func newHeader(snap domainboard.Snapshot, meta store.Meta, ready bool) Header {
	h := Header{Ready: ready, LastUpdated: meta.LastUpdated}
	if h.LastUpdated == "" {
		h.LastUpdated = store.PlaceholderLabel
	}
	if ready && !snap.FetchedAt.IsZero() {
		at := snap.FetchedAt.UTC()
		h.FetchedAt = &at
	}
	return h
}

func leaderOf(teams []TeamView) *TeamView {
	if len(teams) == 0 {
		return nil
	}
	plain := make([]standings.TeamStanding, len(teams))
	for i, t := range teams {
		plain[i] = t.TeamStanding
	}
	if _, ok := standings.Leader(plain); !ok {
		return nil
	}
	leader := teams[0]
	return &leader
}

func subEventsFor(snap domainboard.Snapshot, eventID string) []domainboard.SubEvent {
	if entries, ok := snap.Schedule[eventID]; ok && entries != nil {
		return entries
	}
	return []domainboard.SubEvent{}
}

func nonNilGallery(images []domainboard.GalleryImage) []domainboard.GalleryImage {
	if images == nil {
		return []domainboard.GalleryImage{}
	}
	return images
}

// Header is shared by every view: readiness plus the last-updated label.
type Header struct {
	Ready       bool       `json:"ready"`
	LastUpdated string     `json:"lastUpdated"`
	FetchedAt   *time.Time `json:"fetchedAt,omitempty"`
}
