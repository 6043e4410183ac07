package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"math"
	"os"
	"path/filepath"

	"tmdb-analyzer/models"
	"tmdb-analyzer/services"
)

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"rating": services.FormatRating,
	"money":  services.FormatMoney,
	"inc":    func(i int) int { return i + 1 },
	"coef": func(v float64) string {
		if math.IsNaN(v) {
			return "nan"
		}
		return fmt.Sprintf("%.2f", v)
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>TMDB Movie Report</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2em; color: #222; }
h1 { border-bottom: 2px solid #4682b4; padding-bottom: .3em; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: left; }
th { background: #eef3f8; }
figure { margin: 1.5em 0; page-break-inside: avoid; }
img { max-width: 100%; }
</style>
</head>
<body>
<h1>TMDB Movie Report</h1>
{{with .Report}}
<p>{{.TotalCount}} of {{.RawCount}} movies analyzed. Average rating {{printf "%.2f" .MeanRating}}.</p>
<h2>Key insights</h2>
<table>
<tr><th>Metric</th><th>Movie</th><th>Value</th></tr>
{{with .HighestRated}}<tr><td>Highest rated</td><td>{{.Title}}</td><td>{{rating .VoteAverage}}</td></tr>{{end}}
{{with .LowestRated}}<tr><td>Lowest rated</td><td>{{.Title}}</td><td>{{rating .VoteAverage}}</td></tr>{{end}}
{{with .BiggestBudget}}<tr><td>Biggest budget</td><td>{{.Title}}</td><td>{{money .Budget}}</td></tr>{{end}}
{{with .TopRevenue}}<tr><td>Highest revenue</td><td>{{.Title}}</td><td>{{money .Revenue}}</td></tr>{{end}}
{{with .MostPopular}}<tr><td>Most popular</td><td>{{.Title}}</td><td>{{printf "%.1f" .Popularity}}</td></tr>{{end}}
</table>
<h2>Top rated</h2>
<table>
<tr><th>#</th><th>Title</th><th>Rating</th></tr>
{{range $i, $m := .TopRated}}<tr><td>{{inc $i}}</td><td>{{$m.Title}}</td><td>{{rating $m.VoteAverage}}</td></tr>
{{end}}</table>
<h2>Movies per year</h2>
<table>
<tr><th>Year</th><th>Movies</th></tr>
{{range .PerYear}}<tr><td>{{.Year}}</td><td>{{.Count}}</td></tr>
{{end}}</table>
{{with .Corr}}<h2>Correlation</h2>
<table>
<tr><th></th>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range $i, $row := .Values}}<tr><th>{{index $.Report.Corr.Columns $i}}</th>{{range $row}}<td>{{coef .}}</td>{{end}}</tr>
{{end}}</table>{{end}}
{{end}}
<h2>Charts</h2>
{{range .Charts}}<figure><img src="{{.Src}}" alt="{{.Name}}"><figcaption>{{.Name}}</figcaption></figure>
{{end}}
</body>
</html>
`))

type chartImage struct {
	Name string
	Src  template.URL
}

type pageData struct {
	Report *models.InsightReport
	Charts []chartImage
}

// WriteHTML renders a self-contained HTML report. Chart PNGs are embedded
// as data URIs so the file can be moved or printed on its own.
func WriteHTML(path string, r *models.InsightReport, chartPaths []string) error {
	data := pageData{Report: r}
	for _, cp := range chartPaths {
		raw, err := os.ReadFile(cp)
		if err != nil {
			return fmt.Errorf("report: read chart %q: %w", cp, err)
		}
		data.Charts = append(data.Charts, chartImage{
			Name: filepath.Base(cp),
			Src:  template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)),
		})
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("report: render html: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("report: create output dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("report: write %q: %w", path, err)
	}
	return nil
}
