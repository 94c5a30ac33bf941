// Package announcements parses and groups bulletin rows.
package announcements

import (
	"sort"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/sheet"
)

// DefaultCategory is used when the category cell is blank.
const DefaultCategory = "General"

const (
	colDate = iota
	colTitle
	colMessage
	colCategory
)

var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Parse reads announcement rows in source order. Rows with neither title nor message
// are skipped. ref anchors relative dates such as "today".
func Parse(rows []sheet.Row, ref time.Time) []board.Announcement {
	parser := newDateParser()
	out := make([]board.Announcement, 0, len(rows))
	for _, row := range rows {
		title := sheet.Cell(row, colTitle)
		message := sheet.Cell(row, colMessage)
		if title == "" && message == "" {
			continue
		}
		category := sheet.Cell(row, colCategory)
		if category == "" {
			category = DefaultCategory
		}
		date := sheet.Cell(row, colDate)
		out = append(out, board.Announcement{
			Date:     date,
			Title:    title,
			Message:  message,
			Category: category,
			PostedAt: parser.parse(date, ref),
		})
	}
	return out
}

// GroupByCategory buckets items by category, keeping source order inside each bucket.
func GroupByCategory(items []board.Announcement) map[string][]board.Announcement {
	groups := make(map[string][]board.Announcement)
	for _, item := range items {
		category := item.Category
		if category == "" {
			category = DefaultCategory
		}
		groups[category] = append(groups[category], item)
	}
	return groups
}

// Categories returns the group keys sorted for deterministic rendering.
func Categories(groups map[string][]board.Announcement) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type dateParser struct {
	w *when.Parser
}

func newDateParser() dateParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return dateParser{w: w}
}

func (p dateParser) parse(raw string, ref time.Time) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	loc := ref.Location()
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return &t
		}
	}
	r, err := p.w.Parse(strings.ToLower(raw), ref)
	if err != nil || r == nil {
		return nil
	}
	t := r.Time.In(loc)
	return &t
}
