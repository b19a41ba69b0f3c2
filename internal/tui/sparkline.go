package tui

import (
	"math/big"
)

// sparklineChars maps values 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline converts values (0..100) into a sparkline string using
// Unicode blocks. Out-of-range values are clamped.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		v = min(max(v, 0), 100)
		runes[i] = sparklineChars[min(int(v/100.0*7.0), 7)]
	}
	return string(runes)
}

// GrowthSeries samples the bit length of up to width evenly spaced terms
// and scales them to 0..100 relative to the last term.
func GrowthSeries(seq []*big.Int, width int) []float64 {
	if len(seq) == 0 || width <= 0 {
		return nil
	}
	width = min(width, len(seq))
	top := float64(seq[len(seq)-1].BitLen())
	if top == 0 {
		return make([]float64, width)
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		idx := i * (len(seq) - 1)
		if width > 1 {
			idx /= width - 1
		}
		out[i] = float64(seq[idx].BitLen()) / top * 100
	}
	return out
}
