package config

import (
	_ "embed"
	"os"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/gallery"
	"github.com/housefest/board-service/internal/schedule"
	"github.com/housefest/board-service/internal/sheet"
	"github.com/housefest/board-service/internal/standings"
)

//go:embed layout.yaml
var defaultLayout []byte

// ErrInvalidLayout wraps every layout validation failure.
var ErrInvalidLayout = crerr.New("invalid board layout")

// GalleryLayout configures the gallery URL transforms.
type GalleryLayout struct {
	PreviewTemplate string `yaml:"preview_template"`
	DownloadSize    string `yaml:"download_size"`
}

// Layout is the static description of the competition: teams, event catalog and
// where each event's sub-schedule sits in the schedule sheet.
type Layout struct {
	Teams    []board.Team     `yaml:"teams" validate:"required,min=1,dive"`
	Days     []board.EventDay `yaml:"days" validate:"required,min=1,dive"`
	Schedule schedule.Table   `yaml:"schedule" validate:"dive"`
	Scale    standings.Scale  `yaml:"scale"`
	Gallery  GalleryLayout    `yaml:"gallery"`
}

// DefaultLayout returns the built-in layout.
func DefaultLayout() (Layout, error) {
	return ParseLayout(defaultLayout)
}

// LoadLayout reads the layout at path, or the built-in one when path is empty.
func LoadLayout(path string) (Layout, error) {
	if path == "" {
		return DefaultLayout()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, crerr.Wrapf(err, "read layout %s", path)
	}
	return ParseLayout(data)
}

// ParseLayout decodes and validates a YAML layout.
func ParseLayout(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, crerr.Mark(crerr.Wrap(err, "decode layout"), ErrInvalidLayout)
	}
	if l.Scale == (standings.Scale{}) {
		l.Scale = standings.DefaultScale
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks field constraints plus cross references between sections.
func (l Layout) Validate() error {
	if err := validator.New().Struct(l); err != nil {
		return crerr.Mark(crerr.Wrap(err, "validate layout"), ErrInvalidLayout)
	}

	teams := make(map[string]struct{}, len(l.Teams))
	for _, t := range l.Teams {
		key := sheet.NormalizeKey(t.Name)
		if _, dup := teams[key]; dup {
			return crerr.Mark(crerr.Newf("duplicate team %q", t.Name), ErrInvalidLayout)
		}
		teams[key] = struct{}{}
	}

	events := make(map[string]struct{})
	for _, ev := range l.Events() {
		if _, dup := events[ev.ID]; dup {
			return crerr.Mark(crerr.Newf("duplicate event id %q", ev.ID), ErrInvalidLayout)
		}
		events[ev.ID] = struct{}{}
	}

	windows := make(map[string]struct{}, len(l.Schedule))
	for _, ew := range l.Schedule {
		if _, ok := events[ew.EventID]; !ok {
			return crerr.Mark(crerr.Newf("schedule windows for unknown event %q", ew.EventID), ErrInvalidLayout)
		}
		if _, dup := windows[ew.EventID]; dup {
			return crerr.Mark(crerr.Newf("schedule windows for %q declared twice", ew.EventID), ErrInvalidLayout)
		}
		windows[ew.EventID] = struct{}{}
	}
	return nil
}

// Events flattens the catalog in day order.
func (l Layout) Events() []board.EventDefinition {
	var out []board.EventDefinition
	for _, d := range l.Days {
		out = append(out, d.Events...)
	}
	return out
}

// Event looks up an event definition by id.
func (l Layout) Event(id string) (board.EventDefinition, bool) {
	for _, d := range l.Days {
		for _, ev := range d.Events {
			if ev.ID == id {
				return ev, true
			}
		}
	}
	return board.EventDefinition{}, false
}

// Team looks up a team by normalized name.
func (l Layout) Team(name string) (board.Team, bool) {
	key := sheet.NormalizeKey(name)
	for _, t := range l.Teams {
		if sheet.NormalizeKey(t.Name) == key {
			return t, true
		}
	}
	return board.Team{}, false
}

// Resolver builds the gallery resolver for this layout.
func (l Layout) Resolver() gallery.Resolver {
	return gallery.NewResolver(l.Gallery.PreviewTemplate, l.Gallery.DownloadSize)
}
