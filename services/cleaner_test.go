package services

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"tmdb-analyzer/models"
	"tmdb-analyzer/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard, utils.LevelError) }

func rawDataset(rows ...*models.RawMovie) *models.Dataset {
	for i, r := range rows {
		r.Line = i + 2
	}
	return &models.Dataset{Header: models.RequiredColumns, Rows: rows}
}

func TestCleanerKeepsOnlyPositiveRequiredFields(t *testing.T) {
	c := NewCleaner(newTestLogger())
	ds := rawDataset(
		&models.RawMovie{Title: "Zero", VoteAverage: "0", Budget: "0", Revenue: "0"},
		&models.RawMovie{Title: "Five", VoteAverage: "5", Budget: "100", Revenue: "50"},
		&models.RawMovie{Title: "Eight", VoteAverage: "8", Budget: "200", Revenue: "300"},
	)

	cleaned, err := c.Clean(ds)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(cleaned) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(cleaned))
	}
	if cleaned[0].Title != "Five" || cleaned[1].Title != "Eight" {
		t.Errorf("order not preserved: %q, %q", cleaned[0].Title, cleaned[1].Title)
	}
	if got := meanRating(cleaned); got != 6.5 {
		t.Errorf("mean rating: got %v, want 6.5", got)
	}
}

func TestCleanerDropsMissingAndNegative(t *testing.T) {
	c := NewCleaner(newTestLogger())
	ds := rawDataset(
		&models.RawMovie{Title: "No rating", VoteAverage: "", Budget: "10", Revenue: "10"},
		&models.RawMovie{Title: "No budget", VoteAverage: "6", Budget: "", Revenue: "10"},
		&models.RawMovie{Title: "Loss", VoteAverage: "6", Budget: "10", Revenue: "-5"},
		&models.RawMovie{Title: "NA revenue", VoteAverage: "6", Budget: "10", Revenue: "NA"},
		&models.RawMovie{Title: "Good", VoteAverage: "6", Budget: "10", Revenue: "10"},
	)

	cleaned, err := c.Clean(ds)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(cleaned) != 1 || cleaned[0].Title != "Good" {
		t.Fatalf("expected only %q, got %d movies", "Good", len(cleaned))
	}
	if len(cleaned) > len(ds.Rows) {
		t.Error("cleaned dataset larger than input")
	}
	for _, m := range cleaned {
		if !(m.VoteAverage > 0 && m.Budget > 0 && m.Revenue > 0) {
			t.Errorf("invariant violated for %q", m.Title)
		}
	}
}

func TestCleanerOptionalFieldsBecomeNaN(t *testing.T) {
	c := NewCleaner(newTestLogger())
	ds := rawDataset(&models.RawMovie{
		Title: "  Spaced   Title ", VoteAverage: "7", Budget: "1", Revenue: "2",
		VoteCount: "", Popularity: " ",
	})

	cleaned, err := c.Clean(ds)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	m := cleaned[0]
	if m.Title != "Spaced Title" {
		t.Errorf("Title: got %q, want %q", m.Title, "Spaced Title")
	}
	if !math.IsNaN(m.VoteCount) || !math.IsNaN(m.Popularity) {
		t.Errorf("expected NaN for absent vote_count/popularity, got %v/%v", m.VoteCount, m.Popularity)
	}
}

func TestCleanerMalformedFieldAborts(t *testing.T) {
	c := NewCleaner(newTestLogger())
	ds := rawDataset(&models.RawMovie{Title: "Bad", VoteAverage: "7", Budget: "lots", Revenue: "2"})

	_, err := c.Clean(ds)
	if !errors.Is(err, ErrMalformedField) {
		t.Fatalf("expected ErrMalformedField, got %v", err)
	}
	if !strings.Contains(err.Error(), "budget") {
		t.Errorf("error should name the column: %v", err)
	}
}

func TestCleanerEmptyResult(t *testing.T) {
	c := NewCleaner(newTestLogger())
	ds := rawDataset(&models.RawMovie{Title: "Zero", VoteAverage: "0", Budget: "0", Revenue: "0"})

	if _, err := c.Clean(ds); !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestCleanerParseReleaseDate(t *testing.T) {
	c := NewCleaner(newTestLogger())

	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"2009-12-10", 2009, true},
		{"1997/11/18", 1997, true},
		{"07/16/2010", 2010, true},
		{"2015-06-09T00:00:00Z", 2015, true},
		{"1985", 1985, true},
		{"", 0, false},
		{"someday", 0, false},
		{"2010-13-45", 0, false},
	}

	for _, tt := range tests {
		m := &models.Movie{ReleaseDate: c.parseReleaseDate(tt.raw)}
		got, ok := m.Year()
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseReleaseDate(%q) year = (%d, %v); want (%d, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantNaN bool
		wantErr bool
	}{
		{"237000000", 237000000, false, false},
		{" 7.2 ", 7.2, false, false},
		{"1e3", 1000, false, false},
		{"", 0, true, false},
		{"NaN", 0, true, false},
		{"null", 0, true, false},
		{"$100", 0, false, true},
	}

	for _, tt := range tests {
		got, err := parseNumber(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseNumber(%q) err = %v; wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if tt.wantNaN {
			if !math.IsNaN(got) {
				t.Errorf("parseNumber(%q) = %v; want NaN", tt.raw, got)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("parseNumber(%q) = %v; want %v", tt.raw, got, tt.want)
		}
	}
}

func TestCleanKeepsTitleVerbatim(t *testing.T) {
	c := NewCleaner(newTestLogger())
	ds := rawDataset(
		&models.RawMovie{Title: "Star  Wars:\tEpisode IV", VoteAverage: "8", Budget: "11000000", Revenue: "775398007"},
	)

	cleaned, err := c.Clean(ds)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if got := cleaned[0].Title; got != "Star  Wars:\tEpisode IV" {
		t.Errorf("Title: got %q, want it unchanged", got)
	}
}
