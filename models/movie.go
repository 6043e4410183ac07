package models

import (
	"math"
	"time"
)

// Column names the loader requires in the CSV header.
const (
	ColTitle       = "title"
	ColVoteAverage = "vote_average"
	ColVoteCount   = "vote_count"
	ColBudget      = "budget"
	ColRevenue     = "revenue"
	ColPopularity  = "popularity"
	ColReleaseDate = "release_date"
)

// RequiredColumns lists the header names in the order the loader resolves them.
var RequiredColumns = []string{
	ColTitle, ColVoteAverage, ColVoteCount, ColBudget, ColRevenue, ColPopularity, ColReleaseDate,
}

// NumericColumns are the fields the correlation matrix is computed over.
var NumericColumns = []string{
	ColVoteAverage, ColVoteCount, ColBudget, ColRevenue, ColPopularity,
}

// RawMovie holds one CSV row as text, before any parsing.
type RawMovie struct {
	Line        int
	Title       string
	VoteAverage string
	VoteCount   string
	Budget      string
	Revenue     string
	Popularity  string
	ReleaseDate string
}

// Dataset is the loaded file. It is not modified after loading.
type Dataset struct {
	Path   string
	Header []string
	Rows   []*RawMovie
}

// Movie is a parsed record. Absent numeric values are NaN; an absent or
// unparseable release date is the zero time.
type Movie struct {
	Title       string
	VoteAverage float64
	VoteCount   float64
	Budget      float64
	Revenue     float64
	Popularity  float64
	ReleaseDate time.Time
}

// Year returns the Derived Year and whether the release date was valid.
func (m *Movie) Year() (int, bool) {
	if m.ReleaseDate.IsZero() {
		return 0, false
	}
	return m.ReleaseDate.Year(), true
}

// Field returns the numeric value for one of NumericColumns, NaN otherwise.
func (m *Movie) Field(name string) float64 {
	switch name {
	case ColVoteAverage:
		return m.VoteAverage
	case ColVoteCount:
		return m.VoteCount
	case ColBudget:
		return m.Budget
	case ColRevenue:
		return m.Revenue
	case ColPopularity:
		return m.Popularity
	default:
		return math.NaN()
	}
}

// YearCount is the number of cleaned movies released in a year.
type YearCount struct {
	Year  int
	Count int
}

// CorrMatrix is a symmetric Pearson correlation matrix, Values[i][j] being
// the coefficient between Columns[i] and Columns[j].
type CorrMatrix struct {
	Columns []string
	Values  [][]float64
}

// InsightReport holds the computed analytics over the cleaned dataset.
type InsightReport struct {
	RawCount   int
	TotalCount int
	MeanRating float64

	HighestRated  *Movie
	LowestRated   *Movie
	BiggestBudget *Movie
	TopRevenue    *Movie
	MostPopular   *Movie

	TopRated   []*Movie
	TopPopular []*Movie
	PerYear    []YearCount
	Corr       *CorrMatrix
}
