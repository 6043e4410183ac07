package charts

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
)

var (
	steelBlue = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	navy      = color.RGBA{R: 25, G: 42, B: 86, A: 255}
	purple    = color.RGBA{R: 128, G: 0, B: 128, A: 255}
	// half-transparent scatter colors
	tomato = color.NRGBA{R: 255, G: 99, B: 71, A: 128}
	green  = color.NRGBA{R: 0, G: 128, B: 0, A: 128}
)

// viridis and magma are sampled stops of the matplotlib maps of the same name.
var (
	viridis = []color.Color{
		color.RGBA{R: 68, G: 1, B: 84, A: 255},
		color.RGBA{R: 72, G: 40, B: 120, A: 255},
		color.RGBA{R: 62, G: 74, B: 137, A: 255},
		color.RGBA{R: 49, G: 104, B: 142, A: 255},
		color.RGBA{R: 38, G: 130, B: 142, A: 255},
		color.RGBA{R: 31, G: 158, B: 137, A: 255},
		color.RGBA{R: 53, G: 183, B: 121, A: 255},
		color.RGBA{R: 109, G: 205, B: 89, A: 255},
		color.RGBA{R: 180, G: 222, B: 44, A: 255},
		color.RGBA{R: 253, G: 231, B: 37, A: 255},
	}
	magma = []color.Color{
		color.RGBA{R: 0, G: 0, B: 4, A: 255},
		color.RGBA{R: 28, G: 16, B: 68, A: 255},
		color.RGBA{R: 79, G: 18, B: 123, A: 255},
		color.RGBA{R: 129, G: 37, B: 129, A: 255},
		color.RGBA{R: 181, G: 54, B: 122, A: 255},
		color.RGBA{R: 229, G: 80, B: 100, A: 255},
		color.RGBA{R: 251, G: 135, B: 97, A: 255},
		color.RGBA{R: 254, G: 194, B: 135, A: 255},
		color.RGBA{R: 252, G: 253, B: 191, A: 255},
	}
)

// pick returns the color for position i of n, spread across the stops.
func pick(stops []color.Color, i, n int) color.Color {
	if n <= 1 {
		return stops[0]
	}
	idx := int(math.Round(float64(i) * float64(len(stops)-1) / float64(n-1)))
	return stops[idx]
}

// moneyTicks labels large currency axes in millions ("$250M").
var moneyTicks = plot.TickerFunc(func(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label == "" {
			continue
		}
		ticks[i].Label = formatMillions(ticks[i].Value)
	}
	return ticks
})

func formatMillions(v float64) string {
	m := v / 1e6
	if m == math.Trunc(m) {
		return fmt.Sprintf("$%.0fM", m)
	}
	return fmt.Sprintf("$%.1fM", m)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
