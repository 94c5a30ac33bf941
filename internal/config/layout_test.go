package config

import (
	"os"
	"path/filepath"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/housefest/board-service/internal/schedule"
	"github.com/housefest/board-service/internal/standings"
)

func TestDefaultLayout(t *testing.T) {
	l, err := DefaultLayout()
	require.NoError(t, err)

	require.Len(t, l.Teams, 4)
	assert.Equal(t, "MUTIEN", l.Teams[0].Name)
	assert.Equal(t, "#000000", l.Teams[0].TextColor)
	require.Len(t, l.Days, 2)
	assert.Len(t, l.Events(), 16)
	assert.Equal(t, standings.DefaultScale, l.Scale)

	opening, ok := l.Event("opening")
	require.True(t, ok)
	assert.False(t, opening.HasScores)

	assert.Equal(t, []string{
		"bball-boys", "bball-girls", "volleyball", "tug-of-war", "frisbee",
		"swimming", "table-tennis", "badminton", "dodgeball",
	}, l.Schedule.EventIDs())
	assert.Equal(t, schedule.KindHeats, l.Schedule[5].Kind)
	assert.Equal(t, "Girls", l.Schedule[4].Windows[1].Division)

	team, ok := l.Team("benilde")
	require.True(t, ok)
	assert.Equal(t, "BENILDE", team.Name)
}

func TestLoadLayoutFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	data := []byte(`
teams: [{name: RED}, {name: BLUE}]
days:
  - label: Day 1
    events: [{id: relay, title: Relay, has_scores: true}]
schedule:
  - event: relay
    windows: [{start: 0, end: 3}]
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	l, err := LoadLayout(path)
	require.NoError(t, err)

	assert.Len(t, l.Teams, 2)
	assert.Equal(t, standings.DefaultScale, l.Scale, "scale defaults when omitted")
	assert.Equal(t, "https://drive.google.com/thumbnail?id=x&sz=w1000", l.Resolver().PreviewURL("x"))
}

func TestLoadLayoutMissingFile(t *testing.T) {
	_, err := LoadLayout(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseLayoutRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"window end before start": `
teams: [{name: RED}]
days: [{label: D, events: [{id: a, title: A}]}]
schedule: [{event: a, windows: [{start: 5, end: 2}]}]`,
		"unknown event in schedule": `
teams: [{name: RED}]
days: [{label: D, events: [{id: a, title: A}]}]
schedule: [{event: b, windows: [{start: 0, end: 2}]}]`,
		"duplicate event ids": `
teams: [{name: RED}]
days: [{label: D, events: [{id: a, title: A}, {id: a, title: B}]}]`,
		"no teams": `
days: [{label: D, events: [{id: a, title: A}]}]`,
		"duplicate team": `
teams: [{name: RED}, {name: red}]
days: [{label: D, events: [{id: a, title: A}]}]`,
		"unknown kind": `
teams: [{name: RED}]
days: [{label: D, events: [{id: a, title: A}]}]
schedule: [{event: a, kind: relay, windows: [{start: 0, end: 2}]}]`,
		"not yaml": `teams: [`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLayout([]byte(doc))
			require.Error(t, err)
			assert.True(t, crerr.Is(err, ErrInvalidLayout), "expected ErrInvalidLayout, got %v", err)
		})
	}
}
