package storage

import "tmdb-analyzer/models"

// MovieWriter is the interface any export backend for the cleaned dataset
// must satisfy.
type MovieWriter interface {
	Write(movies []*models.Movie) error
	Close() error
}

// ReportWriter is implemented by backends that can also store the computed
// insights next to the movies.
type ReportWriter interface {
	WriteReport(report *models.InsightReport) error
}
