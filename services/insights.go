package services

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"

	"tmdb-analyzer/models"
	"tmdb-analyzer/utils"
)

// InsightService computes descriptive statistics over the cleaned dataset
// and prints the key-insights summary.
type InsightService struct {
	logger *utils.Logger
	topN   int
}

// NewInsightService creates an InsightService producing top-n lists.
func NewInsightService(logger *utils.Logger, topN int) *InsightService {
	if topN < 1 {
		topN = 10
	}
	return &InsightService{logger: logger, topN: topN}
}

// Generate builds the report. rawCount is the size of the dataset before cleaning.
func (s *InsightService) Generate(movies []*models.Movie, rawCount int) *models.InsightReport {
	report := &models.InsightReport{
		RawCount:   rawCount,
		TotalCount: len(movies),
	}
	if len(movies) == 0 {
		return report
	}

	report.MeanRating = meanRating(movies)
	report.HighestRated = extreme(movies, models.ColVoteAverage, true)
	report.LowestRated = extreme(movies, models.ColVoteAverage, false)
	report.BiggestBudget = extreme(movies, models.ColBudget, true)
	report.TopRevenue = extreme(movies, models.ColRevenue, true)
	report.MostPopular = extreme(movies, models.ColPopularity, true)

	report.TopRated = TopN(movies, models.ColVoteAverage, s.topN)
	report.TopPopular = TopN(movies, models.ColPopularity, s.topN)
	report.PerYear = PerYear(movies)
	report.Corr = Correlation(movies, models.NumericColumns)

	s.logger.Debug("[insights] %d movies, %d years, mean rating %.4f",
		report.TotalCount, len(report.PerYear), report.MeanRating)
	return report
}

// meanRating is the arithmetic mean of vote_average.
func meanRating(movies []*models.Movie) float64 {
	ratings := make([]float64, len(movies))
	for i, m := range movies {
		ratings[i] = m.VoteAverage
	}
	return stat.Mean(ratings, nil)
}

// extreme returns the first movie holding the maximum (or minimum) of field.
// NaN values are skipped; nil is returned when every value is NaN.
func extreme(movies []*models.Movie, field string, max bool) *models.Movie {
	var best *models.Movie
	bestVal := math.NaN()
	for _, m := range movies {
		v := m.Field(field)
		if math.IsNaN(v) {
			continue
		}
		if best == nil || (max && v > bestVal) || (!max && v < bestVal) {
			best, bestVal = m, v
		}
	}
	return best
}

// TopN returns at most n movies sorted descending by field. Ties keep input
// order and movies without a value for field are skipped.
func TopN(movies []*models.Movie, field string, n int) []*models.Movie {
	ranked := make([]*models.Movie, 0, len(movies))
	for _, m := range movies {
		if !math.IsNaN(m.Field(field)) {
			ranked = append(ranked, m)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Field(field) > ranked[j].Field(field)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// PerYear counts movies per Derived Year, ascending by year. Movies without
// a valid release date are not counted.
func PerYear(movies []*models.Movie) []models.YearCount {
	counts := make(map[int]int)
	for _, m := range movies {
		if y, ok := m.Year(); ok {
			counts[y]++
		}
	}

	out := make([]models.YearCount, 0, len(counts))
	for y, c := range counts {
		out = append(out, models.YearCount{Year: y, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Correlation computes pairwise Pearson coefficients. Each pair uses only the
// rows where both values are present; a pair with fewer than two such rows,
// or with zero variance, is NaN.
func Correlation(movies []*models.Movie, columns []string) *models.CorrMatrix {
	n := len(columns)
	cm := &models.CorrMatrix{
		Columns: append([]string(nil), columns...),
		Values:  make([][]float64, n),
	}
	for i := range cm.Values {
		cm.Values[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := pairwisePearson(movies, columns[i], columns[j])
			cm.Values[i][j] = r
			cm.Values[j][i] = r
		}
	}
	return cm
}

func pairwisePearson(movies []*models.Movie, a, b string) float64 {
	xs := make([]float64, 0, len(movies))
	ys := make([]float64, 0, len(movies))
	for _, m := range movies {
		x, y := m.Field(a), m.Field(b)
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	return r
}

// Print writes the key-insights summary. The output depends only on the
// report, so unchanged input yields identical bytes.
func (s *InsightService) Print(w io.Writer, r *models.InsightReport) error {
	sep := strings.Repeat("=", 50)
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", sep)
	fmt.Fprintf(&b, "KEY INSIGHTS FROM THE DATA\n")
	fmt.Fprintf(&b, "%s\n", sep)

	if r.TotalCount == 0 {
		fmt.Fprintf(&b, "No movies to analyze\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "Highest rated movie  : %s\n", titleWith(r.HighestRated, func(m *models.Movie) string {
		return FormatRating(m.VoteAverage)
	}))
	fmt.Fprintf(&b, "Lowest rated movie   : %s\n", titleWith(r.LowestRated, func(m *models.Movie) string {
		return FormatRating(m.VoteAverage)
	}))
	fmt.Fprintf(&b, "Biggest budget movie : %s\n", titleWith(r.BiggestBudget, func(m *models.Movie) string {
		return FormatMoney(m.Budget)
	}))
	fmt.Fprintf(&b, "Highest revenue movie: %s\n", titleWith(r.TopRevenue, func(m *models.Movie) string {
		return FormatMoney(m.Revenue)
	}))
	if r.MostPopular != nil {
		fmt.Fprintf(&b, "Most popular movie   : %s\n", r.MostPopular.Title)
	} else {
		fmt.Fprintf(&b, "Most popular movie   : n/a\n")
	}
	fmt.Fprintf(&b, "Average rating       : %.2f\n", r.MeanRating)
	fmt.Fprintf(&b, "Total movies analyzed: %d\n", r.TotalCount)
	fmt.Fprintf(&b, "%s\n", sep)

	_, err := io.WriteString(w, b.String())
	return err
}

func titleWith(m *models.Movie, detail func(*models.Movie) string) string {
	if m == nil {
		return "n/a"
	}
	return fmt.Sprintf("%s (%s)", m.Title, detail(m))
}

// FormatRating renders a rating in its shortest form, keeping one decimal
// for integral values ("8.0", "7.25").
func FormatRating(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") && !math.IsNaN(v) && !math.IsInf(v, 0) {
		s += ".0"
	}
	return s
}

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders a dollar amount with thousands separators.
func FormatMoney(v float64) string {
	return moneyPrinter.Sprintf("$%.0f", v)
}
