package charts

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"tmdb-analyzer/models"
	"tmdb-analyzer/utils"
)

// Output file names, in rendering order.
const (
	FileRatingDistribution = "chart1_rating_distribution.png"
	FileTopRated           = "chart2_top10_movies.png"
	FileTopPopular         = "chart3_top10_popular.png"
	FileBudgetVsRating     = "chart4_budget_vs_rating.png"
	FileBudgetVsRevenue    = "chart5_budget_vs_revenue.png"
	FileMoviesPerYear      = "chart6_movies_per_year.png"
	FileCorrelationHeatmap = "chart7_heatmap.png"
)

// Files lists every chart file name in rendering order.
var Files = []string{
	FileRatingDistribution,
	FileTopRated,
	FileTopPopular,
	FileBudgetVsRating,
	FileBudgetVsRevenue,
	FileMoviesPerYear,
	FileCorrelationHeatmap,
}

// Options controls chart geometry and output location.
type Options struct {
	OutputDir     string
	WidthInches   float64
	HeightInches  float64
	HistogramBins int
	TopN          int
}

// Renderer draws the report charts to PNG files.
type Renderer struct {
	opts   Options
	logger *utils.Logger
}

// NewRenderer creates a Renderer, filling unset options with defaults.
func NewRenderer(opts Options, logger *utils.Logger) *Renderer {
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.WidthInches <= 0 {
		opts.WidthInches = 10
	}
	if opts.HeightInches <= 0 {
		opts.HeightInches = 6
	}
	if opts.HistogramBins <= 0 {
		opts.HistogramBins = 20
	}
	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	return &Renderer{opts: opts, logger: logger}
}

// RenderAll draws the seven charts one after another. Each chart is written
// to disk before the next one is computed; the first failure stops the run.
// saved, if non-nil, is called after each file is written with its 1-based
// chart number.
func (r *Renderer) RenderAll(report *models.InsightReport, movies []*models.Movie, saved func(n int, path string)) ([]string, error) {
	if err := os.MkdirAll(r.opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("charts: create output dir: %w", err)
	}

	steps := []struct {
		file  string
		build func() (*plot.Plot, error)
	}{
		{FileRatingDistribution, func() (*plot.Plot, error) { return RatingDistribution(movies, r.opts.HistogramBins) }},
		{FileTopRated, func() (*plot.Plot, error) {
			return TopBars(report.TopRated, models.ColVoteAverage, r.topTitle("Highest Rated Movies"), "Rating", viridis)
		}},
		{FileTopPopular, func() (*plot.Plot, error) {
			return TopBars(report.TopPopular, models.ColPopularity, r.topTitle("Most Popular Movies"), "Popularity Score", magma)
		}},
		{FileBudgetVsRating, func() (*plot.Plot, error) { return BudgetVsRating(movies) }},
		{FileBudgetVsRevenue, func() (*plot.Plot, error) { return BudgetVsRevenue(movies) }},
		{FileMoviesPerYear, func() (*plot.Plot, error) { return MoviesPerYear(report.PerYear) }},
		{FileCorrelationHeatmap, func() (*plot.Plot, error) { return CorrelationHeatmap(report.Corr) }},
	}

	paths := make([]string, 0, len(steps))
	for i, step := range steps {
		p, err := step.build()
		if err != nil {
			return paths, fmt.Errorf("charts: build %s: %w", step.file, err)
		}
		path, err := r.save(p, step.file)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
		r.logger.Debug("[charts] Wrote %s", path)
		if saved != nil {
			saved(i+1, path)
		}
	}
	return paths, nil
}

func (r *Renderer) save(p *plot.Plot, name string) (string, error) {
	path := filepath.Join(r.opts.OutputDir, name)
	w := vg.Length(r.opts.WidthInches) * vg.Inch
	h := vg.Length(r.opts.HeightInches) * vg.Inch
	if err := p.Save(w, h, path); err != nil {
		return "", fmt.Errorf("charts: save %s: %w", path, err)
	}
	return path, nil
}

// topTitle names a ranking chart after the configured N, however many movies
// made the list.
func (r *Renderer) topTitle(what string) string {
	return fmt.Sprintf("Top %d %s", r.opts.TopN, what)
}

// newPlot creates a plot with the shared title styling.
func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}
