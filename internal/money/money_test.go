package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"already rounded", 12.5, 12.5},
		{"half up", 15.499 + 40, 55.5},
		{"third decimal down", 1.234, 1.23},
		{"third decimal up", 1.235, 1.24},
		{"negative", -2.005, -2.01},
		{"NaN", math.NaN(), 0},
		{"Inf", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Round(tt.in))
		})
	}
}

func TestSum_IsExact(t *testing.T) {
	got := Sum(0.1, 0.2, 0.3)
	assert.Equal(t, "0.6", got.String())
	assert.Equal(t, 0.6, RoundDec(got))
}

func TestFormatEUR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "€0.00"},
		{12.5, "€12.50"},
		{1234.567, "€1,234.57"},
		{1000000, "€1,000,000.00"},
		{-12.5, "-€12.50"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEUR(tt.in))
		})
	}
}
