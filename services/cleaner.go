package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"tmdb-analyzer/models"
	"tmdb-analyzer/utils"
)

// releaseLayouts are tried in order when parsing release_date.
var releaseLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006",
}

// Cleaner turns raw rows into typed movies and drops unusable records.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean parses every row and keeps only movies whose vote_average, budget
// and revenue are present and strictly positive. Input order is preserved.
func (c *Cleaner) Clean(ds *models.Dataset) ([]*models.Movie, error) {
	result := make([]*models.Movie, 0, len(ds.Rows))

	for _, r := range ds.Rows {
		m, err := c.parse(r)
		if err != nil {
			return nil, err
		}
		if !keep(m) {
			c.logger.Debug("[cleaner] Dropping line %d (%s): rating=%v budget=%v revenue=%v",
				r.Line, m.Title, m.VoteAverage, m.Budget, m.Revenue)
			continue
		}
		result = append(result, m)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d movies (dropped %d)",
		len(ds.Rows), len(result), len(ds.Rows)-len(result))

	if len(result) == 0 {
		return nil, fmt.Errorf("cleaner: %w", ErrEmptyDataset)
	}
	return result, nil
}

// keep reports whether the three required fields are present and positive.
// NaN compares false, so absent values are dropped too.
func keep(m *models.Movie) bool {
	return m.VoteAverage > 0 && m.Budget > 0 && m.Revenue > 0
}

func (c *Cleaner) parse(r *models.RawMovie) (*models.Movie, error) {
	m := &models.Movie{Title: r.Title}

	fields := []struct {
		col string
		raw string
		dst *float64
	}{
		{models.ColVoteAverage, r.VoteAverage, &m.VoteAverage},
		{models.ColVoteCount, r.VoteCount, &m.VoteCount},
		{models.ColBudget, r.Budget, &m.Budget},
		{models.ColRevenue, r.Revenue, &m.Revenue},
		{models.ColPopularity, r.Popularity, &m.Popularity},
	}
	for _, f := range fields {
		v, err := parseNumber(f.raw)
		if err != nil {
			return nil, fmt.Errorf("cleaner: %w: line %d column %q value %q",
				ErrMalformedField, r.Line, f.col, f.raw)
		}
		*f.dst = v
	}

	m.ReleaseDate = c.parseReleaseDate(r.ReleaseDate)
	return m, nil
}

// parseNumber returns NaN for an empty or NA-style field and an error for
// any other text that is not a number.
func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "", "na", "nan", "null", "none":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// parseReleaseDate returns the zero time when the value cannot be parsed.
func (c *Cleaner) parseReleaseDate(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range releaseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	c.logger.Debug("[cleaner] Unparseable release date: %q", raw)
	return time.Time{}
}
