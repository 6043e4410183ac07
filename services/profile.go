package services

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"tmdb-analyzer/models"
	"tmdb-analyzer/utils"
)

// previewRows is the number of leading rows shown in the profile.
const previewRows = 5

// Profiler prints a first look at the raw file: leading rows, shape, column
// names, missing values per column and summary statistics.
type Profiler struct {
	logger *utils.Logger
}

// NewProfiler creates a Profiler with the given logger.
func NewProfiler(logger *utils.Logger) *Profiler {
	return &Profiler{logger: logger}
}

// Profile reads path into a DataFrame and writes the profile to w.
func (p *Profiler) Profile(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("profile: open %q: %w", path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.NaNValues([]string{"", "NA", "NaN", "<nil>"}),
		dataframe.WithLazyQuotes(true),
	)
	if df.Err != nil {
		return fmt.Errorf("profile: read %q: %w", path, df.Err)
	}
	return p.write(df, w)
}

func (p *Profiler) write(df dataframe.DataFrame, w io.Writer) error {
	var b strings.Builder

	focus := df
	if cols := presentColumns(df, models.RequiredColumns); len(cols) > 0 {
		focus = df.Select(cols)
	}

	n := previewRows
	if df.Nrow() < n {
		n = df.Nrow()
	}
	if n > 0 {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		fmt.Fprintf(&b, "\nFirst %d rows:\n%s\n", n, focus.Subset(idx))
	}

	fmt.Fprintf(&b, "\nShape (rows, columns): (%d, %d)\n", df.Nrow(), df.Ncol())
	fmt.Fprintf(&b, "\nColumn Names:\n%s\n", strings.Join(df.Names(), ", "))

	fmt.Fprintf(&b, "\nMissing Values:\n")
	for _, name := range df.Names() {
		missing := 0
		for _, nan := range df.Col(name).IsNaN() {
			if nan {
				missing++
			}
		}
		fmt.Fprintf(&b, "%-24s %d\n", name, missing)
	}

	if df.Nrow() > 0 {
		desc := focus.Describe()
		if desc.Err != nil {
			p.logger.Warn("[profile] describe failed: %v", desc.Err)
		} else {
			fmt.Fprintf(&b, "\nBasic Statistics:\n%s\n", desc)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func presentColumns(df dataframe.DataFrame, wanted []string) []string {
	have := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		have[n] = true
	}
	var out []string
	for _, n := range wanted {
		if have[n] {
			out = append(out, n)
		}
	}
	return out
}
