package services

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"tmdb-analyzer/models"
)

func date(y int) time.Time { return time.Date(y, 6, 1, 0, 0, 0, 0, time.UTC) }

func sampleMovies() []*models.Movie {
	return []*models.Movie{
		{Title: "Avatar", VoteAverage: 7.2, VoteCount: 11800, Budget: 237000000, Revenue: 2787965087, Popularity: 150.4, ReleaseDate: date(2009)},
		{Title: "Spectre", VoteAverage: 6.3, VoteCount: 4466, Budget: 245000000, Revenue: 880674609, Popularity: 107.4, ReleaseDate: date(2015)},
		{Title: "The Dark Knight Rises", VoteAverage: 7.6, VoteCount: 9106, Budget: 250000000, Revenue: 1084939099, Popularity: 112.3, ReleaseDate: date(2012)},
		{Title: "John Carter", VoteAverage: 6.1, VoteCount: 2124, Budget: 260000000, Revenue: 284139100, Popularity: 43.9, ReleaseDate: date(2012)},
		{Title: "Interstellar", VoteAverage: 8.1, VoteCount: 10867, Budget: 165000000, Revenue: 675120017, Popularity: 724.2, ReleaseDate: date(2014)},
		{Title: "Inception", VoteAverage: 8.1, VoteCount: 13752, Budget: 160000000, Revenue: 825532764, Popularity: 167.5, ReleaseDate: date(2010)},
		{Title: "Undated", VoteAverage: 5.0, VoteCount: math.NaN(), Budget: 1000, Revenue: 2000, Popularity: math.NaN()},
	}
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 10)
	r := svc.Generate(sampleMovies(), 9)
	if r.TotalCount != 7 {
		t.Errorf("TotalCount: got %d, want 7", r.TotalCount)
	}
	if r.RawCount != 9 {
		t.Errorf("RawCount: got %d, want 9", r.RawCount)
	}
}

func TestInsightMeanRating(t *testing.T) {
	movies := sampleMovies()
	svc := NewInsightService(newTestLogger(), 10)
	r := svc.Generate(movies, len(movies))

	var sum float64
	for _, m := range movies {
		sum += m.VoteAverage
	}
	want := sum / float64(len(movies))
	if math.Abs(r.MeanRating-want) > 1e-12 {
		t.Errorf("MeanRating: got %v, want %v", r.MeanRating, want)
	}
}

func TestInsightExtremes(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 10)
	r := svc.Generate(sampleMovies(), 7)

	tests := []struct {
		name string
		got  *models.Movie
		want string
	}{
		// Interstellar and Inception tie on 8.1; the first one wins.
		{"HighestRated", r.HighestRated, "Interstellar"},
		{"LowestRated", r.LowestRated, "Undated"},
		{"BiggestBudget", r.BiggestBudget, "John Carter"},
		{"TopRevenue", r.TopRevenue, "Avatar"},
		{"MostPopular", r.MostPopular, "Interstellar"},
	}
	for _, tt := range tests {
		if tt.got == nil {
			t.Errorf("%s: got nil", tt.name)
			continue
		}
		if tt.got.Title != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got.Title, tt.want)
		}
	}
}

func TestTopNSortedAndBounded(t *testing.T) {
	movies := sampleMovies()

	top := TopN(movies, models.ColVoteAverage, 3)
	if len(top) != 3 {
		t.Fatalf("len: got %d, want 3", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].VoteAverage > top[i-1].VoteAverage {
			t.Errorf("not descending at %d: %v > %v", i, top[i].VoteAverage, top[i-1].VoteAverage)
		}
	}
	if top[0].Title != "Interstellar" || top[1].Title != "Inception" {
		t.Errorf("ties should keep input order, got %q then %q", top[0].Title, top[1].Title)
	}

	all := TopN(movies, models.ColVoteAverage, 10)
	if len(all) != len(movies) {
		t.Errorf("smaller dataset: got %d, want %d", len(all), len(movies))
	}

	popular := TopN(movies, models.ColPopularity, 10)
	if len(popular) != 6 {
		t.Errorf("NaN popularity should be skipped: got %d, want 6", len(popular))
	}
	if popular[0].Title != "Interstellar" {
		t.Errorf("most popular: got %q", popular[0].Title)
	}
}

func TestTopNDoesNotReorderInput(t *testing.T) {
	movies := sampleMovies()
	first := movies[0].Title
	_ = TopN(movies, models.ColBudget, 2)
	if movies[0].Title != first {
		t.Errorf("input reordered: got %q first", movies[0].Title)
	}
}

func TestPerYearAscending(t *testing.T) {
	got := PerYear(sampleMovies())
	want := []models.YearCount{
		{Year: 2009, Count: 1},
		{Year: 2010, Count: 1},
		{Year: 2012, Count: 2},
		{Year: 2014, Count: 1},
		{Year: 2015, Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("len: got %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d]: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCorrelationMatrix(t *testing.T) {
	cm := Correlation(sampleMovies(), models.NumericColumns)
	n := len(models.NumericColumns)
	if len(cm.Values) != n {
		t.Fatalf("rows: got %d, want %d", len(cm.Values), n)
	}
	for i := 0; i < n; i++ {
		if math.Abs(cm.Values[i][i]-1) > 1e-9 {
			t.Errorf("diagonal [%d]: got %v, want 1", i, cm.Values[i][i])
		}
		for j := 0; j < n; j++ {
			if cm.Values[i][j] != cm.Values[j][i] {
				t.Errorf("not symmetric at (%d,%d)", i, j)
			}
			if v := cm.Values[i][j]; v < -1-1e-9 || v > 1+1e-9 {
				t.Errorf("out of range at (%d,%d): %v", i, j, v)
			}
		}
	}
}

func TestCorrelationPerfectAndDegenerate(t *testing.T) {
	movies := []*models.Movie{
		{VoteAverage: 1, Budget: 10, Revenue: 5, VoteCount: 3, Popularity: math.NaN()},
		{VoteAverage: 2, Budget: 20, Revenue: 5, VoteCount: 2, Popularity: 1},
		{VoteAverage: 3, Budget: 30, Revenue: 5, VoteCount: 1, Popularity: math.NaN()},
	}
	cm := Correlation(movies, []string{models.ColVoteAverage, models.ColBudget, models.ColRevenue, models.ColVoteCount, models.ColPopularity})

	if r := cm.Values[0][1]; math.Abs(r-1) > 1e-12 {
		t.Errorf("rating/budget: got %v, want 1", r)
	}
	if r := cm.Values[0][3]; math.Abs(r+1) > 1e-12 {
		t.Errorf("rating/vote_count: got %v, want -1", r)
	}
	if r := cm.Values[0][2]; !math.IsNaN(r) {
		t.Errorf("constant revenue: got %v, want NaN", r)
	}
	if r := cm.Values[0][4]; !math.IsNaN(r) {
		t.Errorf("single popularity pair: got %v, want NaN", r)
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 10)
	r := svc.Generate(nil, 0)
	if r.TotalCount != 0 || r.HighestRated != nil {
		t.Errorf("expected empty report, got %+v", r)
	}

	var buf bytes.Buffer
	if err := svc.Print(&buf, r); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(buf.String(), "No movies to analyze") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestPrintSummary(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 10)
	r := svc.Generate(sampleMovies(), 7)

	var buf bytes.Buffer
	if err := svc.Print(&buf, r); err != nil {
		t.Fatalf("Print: %v", err)
	}
	out := buf.String()

	wantLines := []string{
		"KEY INSIGHTS FROM THE DATA",
		"Highest rated movie  : Interstellar (8.1)",
		"Lowest rated movie   : Undated (5.0)",
		"Biggest budget movie : John Carter ($260,000,000)",
		"Highest revenue movie: Avatar ($2,787,965,087)",
		"Most popular movie   : Interstellar",
		"Total movies analyzed: 7",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPrintMeanFromExample(t *testing.T) {
	movies := []*models.Movie{
		{Title: "Five", VoteAverage: 5, Budget: 100, Revenue: 50, Popularity: 1},
		{Title: "Eight", VoteAverage: 8, Budget: 200, Revenue: 300, Popularity: 2},
	}
	svc := NewInsightService(newTestLogger(), 10)
	r := svc.Generate(movies, 3)

	var buf bytes.Buffer
	if err := svc.Print(&buf, r); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(buf.String(), "Average rating       : 6.50\n") {
		t.Errorf("mean line missing:\n%s", buf.String())
	}
}

func TestPrintIsDeterministic(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 10)

	var first, second bytes.Buffer
	if err := svc.Print(&first, svc.Generate(sampleMovies(), 7)); err != nil {
		t.Fatal(err)
	}
	if err := svc.Print(&second, svc.Generate(sampleMovies(), 7)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("outputs differ:\n%s\n---\n%s", first.String(), second.String())
	}
}

func TestFormatRating(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{8, "8.0"},
		{7.2, "7.2"},
		{6.25, "6.25"},
		{10, "10.0"},
	}
	for _, tt := range tests {
		if got := FormatRating(tt.v); got != tt.want {
			t.Errorf("FormatRating(%v) = %q; want %q", tt.v, got, tt.want)
		}
	}
}
