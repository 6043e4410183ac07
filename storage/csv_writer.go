package storage

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"tmdb-analyzer/models"
)

// CSVWriter writes the cleaned dataset, with the derived year, to a CSV file.
type CSVWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	header := append(append([]string(nil), models.RequiredColumns...), "year")
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{path: path, file: f, writer: w}, nil
}

// Write appends one row per movie. Absent values are written as empty fields.
func (c *CSVWriter) Write(movies []*models.Movie) error {
	for _, m := range movies {
		year := ""
		if y, ok := m.Year(); ok {
			year = strconv.Itoa(y)
		}
		release := ""
		if !m.ReleaseDate.IsZero() {
			release = m.ReleaseDate.Format("2006-01-02")
		}

		row := []string{
			m.Title,
			formatFloat(m.VoteAverage),
			formatFloat(m.VoteCount),
			formatFloat(m.Budget),
			formatFloat(m.Revenue),
			formatFloat(m.Popularity),
			release,
			year,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
