package charts

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"tmdb-analyzer/models"
)

// maxTitleLen bounds bar labels so long titles do not squeeze the plot area.
const maxTitleLen = 40

// TopBars draws ranked movies as horizontal bars, the first movie at the top.
// Each bar takes the next color from stops. An empty ranking yields the
// titled axes with no bars.
func TopBars(ranked []*models.Movie, field, title, xLabel string, stops []color.Color) (*plot.Plot, error) {
	p := newPlot(title, xLabel, "Movie Title")
	p.X.Min = 0
	if len(ranked) == 0 {
		p.X.Max = 1
		p.Y.Min, p.Y.Max = 0, 1
		p.Add(plotter.NewGrid())
		return p, nil
	}

	// Nominal Y positions count upward, so the ranking is laid out in reverse.
	n := len(ranked)
	labels := make([]string, n)
	for i, m := range ranked {
		pos := n - 1 - i
		labels[pos] = truncate(m.Title, maxTitleLen)

		vals := make(plotter.Values, n)
		vals[pos] = m.Field(field)
		bar, err := plotter.NewBarChart(vals, vg.Points(18))
		if err != nil {
			return nil, err
		}
		bar.Horizontal = true
		bar.Color = pick(stops, i, n)
		bar.LineStyle.Width = vg.Length(0)
		p.Add(bar)
	}

	p.NominalY(labels...)
	p.Add(plotter.NewGrid())
	return p, nil
}
