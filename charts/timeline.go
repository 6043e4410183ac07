package charts

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"tmdb-analyzer/models"
)

// MoviesPerYear draws the per-year release counts as a line, in the order
// given (ascending by year). With no dated movies the axes are drawn empty.
func MoviesPerYear(perYear []models.YearCount) (*plot.Plot, error) {
	p := newPlot("Movies Released Per Year", "Year", "Number of Movies")
	p.Add(plotter.NewGrid())
	p.Y.Min = 0
	if len(perYear) == 0 {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Max = 1
		return p, nil
	}

	pts := make(plotter.XYs, len(perYear))
	for i, yc := range perYear {
		pts[i].X = float64(yc.Year)
		pts[i].Y = float64(yc.Count)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = purple
	line.Width = vg.Points(2)
	p.Add(line)
	return p, nil
}
