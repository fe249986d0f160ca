package report

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/vibejudge/vibejudge/analysis"
)

// RenderTimelineChart draws the sentiment-over-time line chart as a PNG.
// An empty timeline produces no file and no error.
func RenderTimelineChart(bins []analysis.TimelineBin, outPath string) error {
	if len(bins) < 2 {
		return nil
	}

	xs := make([]float64, len(bins))
	ys := make([]float64, len(bins))
	for i, b := range bins {
		xs[i] = b.StartTime
		ys[i] = b.AvgSentiment
	}

	graph := chart.Chart{
		Title:  "Sentiment Over Time",
		Width:  900,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Time",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return analysis.FormatTimestamp(f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:  "Sentiment",
			Range: &chart.ContinuousRange{Min: -1.1, Max: 1.1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Sentiment",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("3498db"),
					StrokeWidth: 3,
				},
			},
		},
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
