package announcements

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/sheet"
)

var ref = time.Date(2026, time.February, 4, 9, 0, 0, 0, time.UTC)

func TestParseDefaultsAndSkips(t *testing.T) {
	rows := []sheet.Row{
		{"2026-02-04", "Opening", "<b>Welcome</b>", ""},
		{"", "", "", "Sports"},
		{"Feb", `"Bus schedule"`, "", " Logistics "},
	}

	got := Parse(rows, ref)

	require.Len(t, got, 2)
	assert.Equal(t, DefaultCategory, got[0].Category)
	assert.Equal(t, "<b>Welcome</b>", got[0].Message, "rich text is passed through")
	require.NotNil(t, got[0].PostedAt)
	assert.Equal(t, time.Date(2026, time.February, 4, 0, 0, 0, 0, time.UTC), *got[0].PostedAt)
	assert.Equal(t, "Bus schedule", got[1].Title)
	assert.Equal(t, "Logistics", got[1].Category)
}

func TestParseUnknownDateLeavesPostedAtNil(t *testing.T) {
	got := Parse([]sheet.Row{{"zzz", "Title", "", ""}}, ref)

	require.Len(t, got, 1)
	assert.Nil(t, got[0].PostedAt)
	assert.Equal(t, "zzz", got[0].Date)
}

func TestGroupByCategoryIsStable(t *testing.T) {
	items := []board.Announcement{
		{Title: "a", Category: "Sports"},
		{Title: "b", Category: "General"},
		{Title: "c", Category: "Sports"},
		{Title: "d"},
	}

	groups := GroupByCategory(items)

	require.Len(t, groups, 2)
	assert.Equal(t, []string{"a", "c"}, titles(groups["Sports"]))
	assert.Equal(t, []string{"b", "d"}, titles(groups["General"]))
	assert.Equal(t, []string{"General", "Sports"}, Categories(groups))
}

func TestGroupByCategoryEmpty(t *testing.T) {
	groups := GroupByCategory(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, Categories(groups))
}

func titles(items []board.Announcement) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}
