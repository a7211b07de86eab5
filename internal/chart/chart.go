// Package chart renders a ResultSet as a bar chart: an interactive
// go-echarts page for the browser and a static PNG for export.
package chart

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"number_generator/internal/widget"
)

// ErrEmpty is returned by PNG when there is nothing to draw.
var ErrEmpty = errors.New("chart: empty result set")

const (
	pngHeight   = 300
	pngMinWidth = 480
	pngMaxWidth = 4096
	seriesName  = "values"
)

// Labels returns one x-axis label per value, the value itself.
func Labels(rs widget.ResultSet) []string {
	out := make([]string, len(rs))
	for i, v := range rs {
		out[i] = strconv.FormatInt(v, 10)
	}
	return out
}

// Bar writes a self-contained echarts page with one bar per value.
func Bar(w io.Writer, rs widget.ResultSet, theme widget.Theme) error {
	p := theme.Palette()

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       "Numbers",
			Width:           "100%",
			Height:          "280px",
			BackgroundColor: p.ResultBox,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:      fmt.Sprintf("%d numbers", len(rs)),
			TitleStyle: &opts.TextStyle{Color: p.Foreground},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	data := make([]opts.BarData, len(rs))
	for i, v := range rs {
		data[i] = opts.BarData{Value: v}
	}
	bar.SetXAxis(Labels(rs)).
		AddSeries(seriesName, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: p.Bar}))

	return bar.Render(w)
}

// PNG writes the same chart as a PNG image. It returns ErrEmpty for an empty set.
func PNG(w io.Writer, rs widget.ResultSet, theme widget.Theme) error {
	if len(rs) == 0 {
		return ErrEmpty
	}
	p := theme.Palette()
	bg := drawing.ColorFromHex(trimHash(p.ResultBox))
	fg := drawing.ColorFromHex(trimHash(p.Foreground))
	fill := drawing.ColorFromHex(trimHash(p.Bar))

	bars := make([]gochart.Value, len(rs))
	for i, v := range rs {
		bars[i] = gochart.Value{
			Value: float64(v),
			Label: strconv.FormatInt(v, 10),
			Style: gochart.Style{FillColor: fill, StrokeColor: fill},
		}
	}

	width, barWidth := pngLayout(len(rs))
	lo, hi := valueRange(rs)
	bc := gochart.BarChart{
		Height:     pngHeight,
		Width:      width,
		BarWidth:   barWidth,
		BarSpacing: barWidth / 2,
		Background: gochart.Style{
			Padding:   gochart.Box{Top: 20, Left: 10, Right: 10, Bottom: 10},
			FillColor: bg,
		},
		Canvas: gochart.Style{FillColor: bg},
		XAxis:  gochart.Style{FontColor: fg, StrokeColor: fg},
		YAxis: gochart.YAxis{
			Style: gochart.Style{FontColor: fg, StrokeColor: fg},
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}
	return bc.Render(gochart.PNG, w)
}

// valueRange returns y-axis bounds that include zero and are never degenerate.
func valueRange(rs widget.ResultSet) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, v := range rs {
		f := float64(v)
		if f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi
}

func pngLayout(n int) (width, barWidth int) {
	barWidth = 24
	width = n*(barWidth+barWidth/2) + 80
	if width < pngMinWidth {
		width = pngMinWidth
	}
	if width > pngMaxWidth {
		width = pngMaxWidth
		barWidth = (pngMaxWidth - 80) * 2 / (3 * n)
		if barWidth < 1 {
			barWidth = 1
		}
	}
	return width, barWidth
}

func trimHash(hex string) string {
	if len(hex) > 0 && hex[0] == '#' {
		return hex[1:]
	}
	return hex
}
