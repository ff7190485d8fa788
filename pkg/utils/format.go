package utils

import (
	"fmt"
	"math"
)

var quantitySuffixes = []struct {
	limit float64
	div   float64
	unit  string
}{
	{1e3, 1, ""},
	{1e6, 1e3, "k"},
	{1e9, 1e6, "M"},
	{1e12, 1e9, "G"},
	{1e15, 1e12, "T"},
}

// FormatQuantity renders a quantity with two decimals and a k/M/G/T suffix,
// e.g. 1234.5 -> "1.23k". The suffix is chosen after rounding, so 999.999
// reads "1.00k". Values beyond the largest suffix are printed whole.
func FormatQuantity(v float64) string {
	abs := math.Abs(v)
	for _, s := range quantitySuffixes {
		rounded := math.Round(abs/s.div*100) / 100
		if rounded >= s.limit/s.div {
			continue
		}
		if v < 0 && rounded > 0 {
			rounded = -rounded
		}
		return fmt.Sprintf("%.2f%s", rounded, s.unit)
	}
	return fmt.Sprintf("%.0f", v)
}
