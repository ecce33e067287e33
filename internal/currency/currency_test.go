package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"currency with symbol and separators", "R$ 1.234,56", 1234.56},
		{"empty string", "", 0},
		{"zero value", "0,00", 0},
		{"no symbol", "987,65", 987.65},
		{"millions", "R$ 1.234.567,89", 1234567.89},
		{"integer only", "500", 500},
		{"negative value", "-1.000,50", -1000.50},
		{"garbage", "abc", 0},
		{"whitespace around symbol", "  R$  42,00  ", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw))
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want string
	}{
		{"thousands and cents", 1234.56, "R$ 1.234,56"},
		{"zero", 0, "R$ 0,00"},
		{"round thousand", 1000, "R$ 1.000,00"},
		{"cents only", 0.5, "R$ 0,50"},
		{"millions", 1234567.89, "R$ 1.234.567,89"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.v))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "25,00%", FormatPercent(25))
	assert.Equal(t, "0,00%", FormatPercent(0))
	assert.Equal(t, "33,33%", FormatPercent(33.333333))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 12.34, 1234.56, 987654.32} {
		assert.Equal(t, v, Parse(Format(v)))
	}
}
