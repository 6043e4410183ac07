package charts

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"tmdb-analyzer/models"
)

// heatmapShades is the number of discrete colors in the heatmap palette.
const heatmapShades = 255

// corrGrid adapts a CorrMatrix to plotter.GridXYZ. Row 0 of the matrix is
// drawn at the top. NaN coefficients are colored as zero.
type corrGrid struct {
	m *models.CorrMatrix
}

func (g corrGrid) Dims() (c, r int) {
	n := len(g.m.Columns)
	return n, n
}

func (g corrGrid) Z(c, r int) float64 {
	v := g.m.Values[len(g.m.Columns)-1-r][c]
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

// CorrelationHeatmap draws the matrix with a diverging blue-red scale fixed
// to [-1, 1] and writes each coefficient into its cell.
func CorrelationHeatmap(cm *models.CorrMatrix) (*plot.Plot, error) {
	if cm == nil || len(cm.Columns) == 0 {
		return nil, errors.New("empty correlation matrix")
	}
	n := len(cm.Columns)

	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(-1)
	cmap.SetMax(1)

	hm := plotter.NewHeatMap(corrGrid{m: cm}, cmap.Palette(heatmapShades))
	hm.Min = -1
	hm.Max = 1

	p := newPlot("Correlation Heatmap", "", "")
	p.Add(hm)

	pts := make(plotter.XYs, 0, n*n)
	texts := make([]string, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			pts = append(pts, plotter.XY{X: float64(j), Y: float64(n - 1 - i)})
			texts = append(texts, formatCoefficient(cm.Values[i][j]))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
		labels.TextStyle[i].Color = color.Black
		labels.TextStyle[i].Font.Size = vg.Points(12)
	}
	p.Add(labels)

	yNames := make([]string, n)
	for i, c := range cm.Columns {
		yNames[n-1-i] = c
	}
	p.NominalX(cm.Columns...)
	p.NominalY(yNames...)
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}

func formatCoefficient(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", v)
}
