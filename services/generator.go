package services

import (
	"fmt"
	"io"

	"tmdb-analyzer/charts"
	"tmdb-analyzer/models"
	"tmdb-analyzer/utils"
)

// GeneratorOptions configures one report run.
type GeneratorOptions struct {
	DatasetPath string
	ShowProfile bool
	TopN        int
	Charts      charts.Options
}

// Result is what a successful run produced.
type Result struct {
	Dataset    *models.Dataset
	Movies     []*models.Movie
	Report     *models.InsightReport
	ChartPaths []string
}

// Generator runs the load → clean → chart → print pipeline. It is
// single-threaded and any failing step aborts the run.
type Generator struct {
	opts     GeneratorOptions
	out      io.Writer
	logger   *utils.Logger
	loader   *Loader
	profiler *Profiler
	cleaner  *Cleaner
	insights *InsightService
	renderer *charts.Renderer
}

// NewGenerator wires the pipeline stages. Report text goes to out.
func NewGenerator(opts GeneratorOptions, out io.Writer, logger *utils.Logger) *Generator {
	if opts.Charts.TopN == 0 {
		opts.Charts.TopN = opts.TopN
	}
	return &Generator{
		opts:     opts,
		out:      out,
		logger:   logger,
		loader:   NewLoader(logger),
		profiler: NewProfiler(logger),
		cleaner:  NewCleaner(logger),
		insights: NewInsightService(logger, opts.TopN),
		renderer: charts.NewRenderer(opts.Charts, logger),
	}
}

// Run executes the pipeline once.
func (g *Generator) Run() (*Result, error) {
	ds, err := g.loader.Load(g.opts.DatasetPath)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(g.out, "Dataset loaded: %d rows\n", len(ds.Rows))

	if g.opts.ShowProfile {
		if err := g.profiler.Profile(g.opts.DatasetPath, g.out); err != nil {
			return nil, err
		}
	}

	movies, err := g.cleaner.Clean(ds)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(g.out, "\nAfter cleaning: %d of %d movies kept\n", len(movies), len(ds.Rows))

	report := g.insights.Generate(movies, len(ds.Rows))

	paths, err := g.renderer.RenderAll(report, movies, func(n int, path string) {
		fmt.Fprintf(g.out, "Chart %d saved: %s\n", n, path)
	})
	if err != nil {
		return nil, err
	}

	if err := g.insights.Print(g.out, report); err != nil {
		return nil, fmt.Errorf("generator: print summary: %w", err)
	}

	return &Result{
		Dataset:    ds,
		Movies:     movies,
		Report:     report,
		ChartPaths: paths,
	}, nil
}
