package charts

import (
	"errors"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"tmdb-analyzer/models"
)

// BudgetVsRating scatters budget against vote_average.
func BudgetVsRating(movies []*models.Movie) (*plot.Plot, error) {
	p := newPlot("Budget vs Rating", "Budget ($)", "Rating")
	if err := addScatter(p, movies, models.ColBudget, models.ColVoteAverage, tomato); err != nil {
		return nil, err
	}
	p.X.Tick.Marker = moneyTicks
	return p, nil
}

// BudgetVsRevenue scatters budget against revenue.
func BudgetVsRevenue(movies []*models.Movie) (*plot.Plot, error) {
	p := newPlot("Budget vs Revenue", "Budget ($)", "Revenue ($)")
	if err := addScatter(p, movies, models.ColBudget, models.ColRevenue, green); err != nil {
		return nil, err
	}
	p.X.Tick.Marker = moneyTicks
	p.Y.Tick.Marker = moneyTicks
	return p, nil
}

func addScatter(p *plot.Plot, movies []*models.Movie, xField, yField string, c color.Color) error {
	if len(movies) == 0 {
		return errors.New("no movies to plot")
	}

	pts := make(plotter.XYs, len(movies))
	for i, m := range movies {
		pts[i].X = m.Field(xField)
		pts[i].Y = m.Field(yField)
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = c
	scatter.GlyphStyle.Radius = vg.Points(3)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(plotter.NewGrid())
	p.Add(scatter)
	return nil
}
