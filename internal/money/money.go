// Package money holds currency rounding, summation and display helpers.
//
// Amounts travel as float64 through the models; arithmetic that must not
// drift (sums, ratios, rounding) goes through shopspring/decimal.
package money

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Places is the number of decimal places kept for currency amounts.
const Places = 2

// Sanitize maps NaN and infinities to 0.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Dec converts a float amount to a decimal, treating NaN/Inf as 0.
func Dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(Sanitize(v))
}

// Round rounds v half away from zero to two decimal places.
func Round(v float64) float64 {
	return RoundDec(Dec(v))
}

// RoundDec rounds d to two decimal places and returns a float.
func RoundDec(d decimal.Decimal) float64 {
	return d.Round(Places).InexactFloat64()
}

// Sum adds amounts exactly. Round the result at the output boundary.
func Sum(values ...float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(Dec(v))
	}
	return total
}

// Ptr returns a pointer to a copy of v.
func Ptr(v float64) *float64 {
	return &v
}

// FormatEUR renders an amount for display, e.g. "€1,234.56" or "-€12.50".
func FormatEUR(amount float64) string {
	d := Dec(amount).Round(Places)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + "€" + humanize.FormatFloat("#,###.##", d.InexactFloat64())
}
