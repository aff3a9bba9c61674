package report

import (
	"fmt"
	"io"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/chengju279/viability-calculator/internal/app"
)

// ChartOptions defines optional settings for configuration.
type ChartOptions struct {
	Width  int
	Height int
}

// RenderChart writes a PNG bar chart of normalized test-well viability.
func RenderChart(r app.Report, opts ChartOptions, w io.Writer) error {
	wells := r.TestWells()
	if len(wells) == 0 {
		return fmt.Errorf("no test wells with normalized values")
	}

	bars := make([]chart.Value, 0, len(wells))
	for _, well := range wells {
		v, err := strconv.ParseFloat(well.Normalized, 64)
		if err != nil {
			continue
		}
		bars = append(bars, chart.Value{Value: v, Label: well.Ref})
	}
	if len(bars) == 0 {
		return fmt.Errorf("no test wells with normalized values")
	}

	width := opts.Width
	if width <= 0 {
		width = 1024
	}
	height := opts.Height
	if height <= 0 {
		height = 512
	}

	ch := chart.BarChart{
		Title:  "Viability (%)",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		BarWidth: 40,
		Bars:     bars,
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
