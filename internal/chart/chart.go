// Package chart renders the overall standings as a PNG bar chart.
package chart

import (
	"bytes"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/sheet"
	"github.com/housefest/board-service/internal/standings"
)

const (
	chartWidth       = 800
	chartHeight      = 400
	barWidth         = 80
	chartTitle       = "Overall Standings"
	placeholderLabel = "No standings yet"
)

var (
	backgroundColor = drawing.ColorFromHex("101820")
	textColor       = drawing.ColorFromHex("f2f2f2")
)

// RenderStandings draws one bar per team, height = points, filled with the team color
// from teams when it has one. An empty ranking renders a placeholder chart.
func RenderStandings(ranked []standings.TeamStanding, teams []board.Team) ([]byte, error) {
	if len(ranked) == 0 {
		return renderPlaceholder()
	}

	colors := make(map[string]drawing.Color, len(teams))
	for _, t := range teams {
		if c, ok := parseHexColor(t.Color); ok {
			colors[sheet.NormalizeKey(t.Name)] = c
		}
	}

	maxPoints := 0
	bars := make([]gochart.Value, 0, len(ranked))
	for _, st := range ranked {
		if st.Points > maxPoints {
			maxPoints = st.Points
		}
		bar := gochart.Value{
			Label: fmt.Sprintf("%s (%d)", st.Team, st.Points),
			Value: float64(st.Points),
		}
		if c, ok := colors[sheet.NormalizeKey(st.Team)]; ok {
			bar.Style = gochart.Style{FillColor: c, StrokeColor: c}
		}
		bars = append(bars, bar)
	}

	return render(newBarChart(bars, maxPoints))
}

func renderPlaceholder() ([]byte, error) {
	bars := []gochart.Value{{
		Label: placeholderLabel,
		Value: 0,
		Style: gochart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent},
	}}
	return render(newBarChart(bars, 0))
}

func newBarChart(bars []gochart.Value, maxPoints int) gochart.BarChart {
	if maxPoints < 1 {
		maxPoints = 1
	}
	return gochart.BarChart{
		Title:      chartTitle,
		TitleStyle: gochart.Style{FontColor: textColor},
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth,
		Background: gochart.Style{FillColor: backgroundColor},
		Canvas:     gochart.Style{FillColor: backgroundColor},
		XAxis:      gochart.Style{FontColor: textColor, StrokeColor: textColor},
		YAxis: gochart.YAxis{
			Style: gochart.Style{FontColor: textColor, StrokeColor: textColor},
			// Bars start at zero even when every team has the same score.
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(maxPoints)},
		},
		Bars: bars,
	}
}

func render(c gochart.BarChart) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(gochart.PNG, &buf); err != nil {
		return nil, crerr.Wrap(err, "render standings chart")
	}
	return buf.Bytes(), nil
}

// parseHexColor accepts "#rgb" and "#rrggbb"; drawing.ColorFromHex panics on anything shorter.
func parseHexColor(raw string) (drawing.Color, bool) {
	hex := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(hex) != 3 && len(hex) != 6 {
		return drawing.Color{}, false
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return drawing.Color{}, false
		}
	}
	return drawing.ColorFromHex(hex), true
}
