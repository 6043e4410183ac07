package charts

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"tmdb-analyzer/models"
)

// kdePoints is the number of samples along the density curve.
const kdePoints = 200

// RatingDistribution is a histogram of vote_average with a Gaussian kernel
// density estimate drawn over it, scaled to bin counts.
func RatingDistribution(movies []*models.Movie, bins int) (*plot.Plot, error) {
	if len(movies) == 0 {
		return nil, errors.New("no ratings to plot")
	}

	ratings := make(plotter.Values, len(movies))
	for i, m := range movies {
		ratings[i] = m.VoteAverage
	}

	p := newPlot("Distribution of Movie Ratings", "Rating (out of 10)", "Number of Movies")

	hist, err := plotter.NewHist(ratings, bins)
	if err != nil {
		return nil, err
	}
	hist.FillColor = steelBlue
	hist.LineStyle.Color = navy
	hist.LineStyle.Width = vg.Points(0.5)
	p.Add(hist)

	if curve := KDE(ratings, hist.Width, kdePoints); len(curve) > 0 {
		line, err := plotter.NewLine(curve)
		if err != nil {
			return nil, err
		}
		line.Color = navy
		line.Width = vg.Points(2)
		p.Add(line)
	}

	p.Add(plotter.NewGrid())
	return p, nil
}

// KDE samples a Gaussian kernel density estimate of values over their range,
// using Scott's rule for the bandwidth. The density is multiplied by
// len(values)*binWidth so the curve sits on the same scale as histogram
// counts. It returns nil when the bandwidth would be zero.
func KDE(values []float64, binWidth float64, points int) plotter.XYs {
	n := len(values)
	if n < 2 || points < 2 {
		return nil
	}
	bw := stat.StdDev(values, nil) * math.Pow(float64(n), -0.2)
	if bw == 0 || math.IsNaN(bw) {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	scale := float64(n) * binWidth
	step := (hi - lo) / float64(points-1)
	kernel := distuv.Normal{Mu: 0, Sigma: bw}

	xys := make(plotter.XYs, points)
	for i := range xys {
		x := lo + float64(i)*step
		var density float64
		for _, v := range values {
			density += kernel.Prob(x - v)
		}
		xys[i].X = x
		xys[i].Y = density / float64(n) * scale
	}
	return xys
}
