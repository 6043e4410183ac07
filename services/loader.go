package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"tmdb-analyzer/models"
	"tmdb-analyzer/utils"
)

// Loader reads the movie CSV into memory.
type Loader struct {
	logger *utils.Logger
}

// NewLoader creates a Loader with the given logger.
func NewLoader(logger *utils.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load opens path and parses every row. Only the required columns are kept;
// any others are ignored.
func (l *Loader) Load(path string) (*models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %q: %w", path, err)
	}
	defer f.Close()

	ds, err := l.Read(f)
	if err != nil {
		return nil, err
	}
	ds.Path = path

	l.logger.Info("[loader] Loaded %d rows from %s", len(ds.Rows), path)
	return ds, nil
}

// Read parses CSV data from r.
func (l *Loader) Read(r io.Reader) (*models.Dataset, error) {
	reader := csv.NewReader(r)
	// Short rows are padded with absent values; long rows are rejected.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("loader: read header: %w", ErrEmptyDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("loader: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = h
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	cols := make([]int, len(models.RequiredColumns))
	for i, name := range models.RequiredColumns {
		idx, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("loader: %w: %q", ErrMissingColumn, name)
		}
		cols[i] = idx
	}

	ds := &models.Dataset{Header: header}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("loader: read row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if len(row) > len(header) {
			return nil, fmt.Errorf("loader: line %d: expected %d fields, saw %d", line, len(header), len(row))
		}
		field := func(i int) string {
			if cols[i] >= len(row) {
				return ""
			}
			return row[cols[i]]
		}

		ds.Rows = append(ds.Rows, &models.RawMovie{
			Line:        line,
			Title:       field(0),
			VoteAverage: field(1),
			VoteCount:   field(2),
			Budget:      field(3),
			Revenue:     field(4),
			Popularity:  field(5),
			ReleaseDate: field(6),
		})
	}

	l.logger.Debug("[loader] Header has %d columns, %d rows read", len(header), len(ds.Rows))
	return ds, nil
}
