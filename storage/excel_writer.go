package storage

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"tmdb-analyzer/models"
)

// Sheet names in the exported workbook.
const (
	SheetMovies      = "Movies"
	SheetSummary     = "Summary"
	SheetPerYear     = "Per Year"
	SheetCorrelation = "Correlation"
)

// ExcelWriter exports the cleaned dataset and the insights to an .xlsx
// workbook. Nothing is written to disk until Close.
type ExcelWriter struct {
	path string
	f    *excelize.File
}

// NewExcelWriter prepares a workbook that will be saved at path.
func NewExcelWriter(path string) (*ExcelWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("excel: create output dir: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetMovies); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("excel: rename sheet: %w", err)
	}
	return &ExcelWriter{path: path, f: f}, nil
}

// Write fills the Movies sheet, one row per movie after a header row.
func (e *ExcelWriter) Write(movies []*models.Movie) error {
	header := append(append([]any(nil), toAny(models.RequiredColumns)...), "year")
	if err := e.f.SetSheetRow(SheetMovies, "A1", &header); err != nil {
		return fmt.Errorf("excel: write header: %w", err)
	}

	for i, m := range movies {
		row := []any{
			m.Title,
			m.VoteAverage,
			cellFloat(m.VoteCount),
			m.Budget,
			m.Revenue,
			cellFloat(m.Popularity),
			"",
			"",
		}
		if y, ok := m.Year(); ok {
			row[6] = m.ReleaseDate.Format("2006-01-02")
			row[7] = y
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("excel: cell name: %w", err)
		}
		if err := e.f.SetSheetRow(SheetMovies, cell, &row); err != nil {
			return fmt.Errorf("excel: write row %d: %w", i+2, err)
		}
	}

	if err := e.f.SetColWidth(SheetMovies, "A", "A", 40); err != nil {
		return fmt.Errorf("excel: set width: %w", err)
	}
	return nil
}

// WriteReport adds the Summary, Per Year and Correlation sheets.
func (e *ExcelWriter) WriteReport(r *models.InsightReport) error {
	if _, err := e.f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("excel: new sheet: %w", err)
	}

	rows := [][]any{
		{"Metric", "Movie", "Value"},
		{"Highest rated", titleOf(r.HighestRated), valueOf(r.HighestRated, models.ColVoteAverage)},
		{"Lowest rated", titleOf(r.LowestRated), valueOf(r.LowestRated, models.ColVoteAverage)},
		{"Biggest budget", titleOf(r.BiggestBudget), valueOf(r.BiggestBudget, models.ColBudget)},
		{"Highest revenue", titleOf(r.TopRevenue), valueOf(r.TopRevenue, models.ColRevenue)},
		{"Most popular", titleOf(r.MostPopular), valueOf(r.MostPopular, models.ColPopularity)},
		{"Average rating", "", math.Round(r.MeanRating*100) / 100},
		{"Movies analyzed", "", r.TotalCount},
		{"Rows loaded", "", r.RawCount},
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := e.f.SetSheetRow(SheetSummary, cell, &rows[i]); err != nil {
			return fmt.Errorf("excel: write summary: %w", err)
		}
	}
	if err := e.f.SetColWidth(SheetSummary, "A", "B", 30); err != nil {
		return fmt.Errorf("excel: set width: %w", err)
	}

	if _, err := e.f.NewSheet(SheetPerYear); err != nil {
		return fmt.Errorf("excel: new sheet: %w", err)
	}
	if err := e.f.SetSheetRow(SheetPerYear, "A1", &[]any{"Year", "Movies"}); err != nil {
		return fmt.Errorf("excel: write per-year header: %w", err)
	}
	for i, yc := range r.PerYear {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := e.f.SetSheetRow(SheetPerYear, cell, &[]any{yc.Year, yc.Count}); err != nil {
			return fmt.Errorf("excel: write per-year row: %w", err)
		}
	}

	if r.Corr == nil {
		return nil
	}
	if _, err := e.f.NewSheet(SheetCorrelation); err != nil {
		return fmt.Errorf("excel: new sheet: %w", err)
	}
	header := append([]any{""}, toAny(r.Corr.Columns)...)
	if err := e.f.SetSheetRow(SheetCorrelation, "A1", &header); err != nil {
		return fmt.Errorf("excel: write correlation header: %w", err)
	}
	for i, name := range r.Corr.Columns {
		row := []any{name}
		for _, v := range r.Corr.Values[i] {
			row = append(row, cellFloat(math.Round(v*100)/100))
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := e.f.SetSheetRow(SheetCorrelation, cell, &row); err != nil {
			return fmt.Errorf("excel: write correlation row: %w", err)
		}
	}
	return nil
}

// Close saves the workbook and releases it.
func (e *ExcelWriter) Close() error {
	saveErr := e.f.SaveAs(e.path)
	closeErr := e.f.Close()
	if saveErr != nil {
		return fmt.Errorf("excel: save %q: %w", e.path, saveErr)
	}
	return closeErr
}

// cellFloat maps NaN to an empty cell; excelize cannot store NaN.
func cellFloat(v float64) any {
	if math.IsNaN(v) {
		return ""
	}
	return v
}

func titleOf(m *models.Movie) string {
	if m == nil {
		return ""
	}
	return m.Title
}

func valueOf(m *models.Movie, field string) any {
	if m == nil {
		return ""
	}
	return cellFloat(m.Field(field))
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
