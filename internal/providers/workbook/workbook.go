// Package workbook reads the board ranges from a local spreadsheet export, for
// rehearsals and venues without connectivity.
package workbook

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/providers"
	"github.com/housefest/board-service/internal/sheet"
)

const providerName = "workbook"

// sheetRange mirrors an A1 range: the sheet, how many header rows to skip and how
// many columns to keep.
type sheetRange struct {
	Sheet    string
	SkipRows int
	Columns  int
}

var (
	matchResults  = sheetRange{Sheet: "Match_Results", SkipRows: 1, Columns: 6}
	overall       = sheetRange{Sheet: "Overall_Standings", SkipRows: 1, Columns: 3}
	announcements = sheetRange{Sheet: "Announcements", SkipRows: 1, Columns: 4}
	scheduleGrid  = sheetRange{Sheet: "Schedule", Columns: 8}
)

// Provider re-reads the workbook on every fetch so edits are picked up.
type Provider struct {
	path string
}

func New(path string) *Provider {
	return &Provider{path: path}
}

func (p *Provider) Name() string {
	return providerName
}

// FetchRaw reads the four board sheets. Workbooks carry no media.
func (p *Provider) FetchRaw(ctx context.Context, hint time.Time) (board.RawData, error) {
	_ = hint
	if p.path == "" {
		return board.RawData{}, crerr.Wrap(providers.ErrMissingCredentials, "workbook: WORKBOOK_PATH is required")
	}
	if err := ctx.Err(); err != nil {
		return board.RawData{}, err
	}

	f, err := excelize.OpenFile(p.path)
	if err != nil {
		return board.RawData{}, crerr.Wrapf(err, "workbook: open %s", p.path)
	}
	defer f.Close()

	raw := board.RawData{Files: []board.MediaFile{}}
	for _, target := range []struct {
		r    sheetRange
		dest *[]sheet.Row
	}{
		{matchResults, &raw.MatchRows},
		{overall, &raw.OverallRows},
		{announcements, &raw.Announcements},
		{scheduleGrid, &raw.ScheduleRows},
	} {
		rows, err := readRange(f, target.r)
		if err != nil {
			return board.RawData{}, err
		}
		*target.dest = rows
	}
	return raw, nil
}

func readRange(f *excelize.File, r sheetRange) ([]sheet.Row, error) {
	grid, err := f.GetRows(r.Sheet)
	if err != nil {
		return nil, crerr.Wrapf(err, "workbook: read sheet %q", r.Sheet)
	}
	if r.SkipRows >= len(grid) {
		return []sheet.Row{}, nil
	}
	grid = grid[r.SkipRows:]
	for i, cells := range grid {
		if r.Columns > 0 && len(cells) > r.Columns {
			grid[i] = cells[:r.Columns]
		}
	}
	return sheet.Rows(grid), nil
}
