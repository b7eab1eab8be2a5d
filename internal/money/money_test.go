package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10", "10"},
		{"12,5", "12.5"},
		{" 3,75 ", "3.75"},
		{"0.1", "0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1,000.50", "12e"} {
		_, err := Parse(in)
		assert.Truef(t, errors.Is(err, ErrInvalidNumericInput), "input %q: %v", in, err)
	}
}

func TestParseOptional(t *testing.T) {
	v, err := ParseOptional("  ")
	require.NoError(t, err)
	assert.False(t, v.Valid)

	v, err = ParseOptional("20,0")
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, "20", v.Decimal.String())

	_, err = ParseOptional("x")
	assert.ErrorIs(t, err, ErrInvalidNumericInput)
}

func TestParseDefault(t *testing.T) {
	v, err := ParseDefault("", decimal.Zero)
	require.NoError(t, err)
	assert.True(t, v.IsZero())
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, "0.13", Format(Round(decimal.RequireFromString("0.125"))))
	assert.Equal(t, "0.12", Format(Round(decimal.RequireFromString("0.1249"))))
	assert.Equal(t, "2070.00", Format(Round(decimal.NewFromInt(2070))))
}

func TestSumIsExact(t *testing.T) {
	// 0.1 + 0.2 drifts with floats.
	got := Sum(decimal.RequireFromString("0.1"), decimal.RequireFromString("0.2"))
	assert.True(t, got.Equal(decimal.RequireFromString("0.3")))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "", FormatPercent(decimal.NullDecimal{}))
	assert.Equal(t, "19.60%", FormatPercent(decimal.NewNullDecimal(decimal.RequireFromString("19.6"))))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "EUR 5.00", FormatCurrency(decimal.NewFromInt(5), "EUR"))
	assert.Equal(t, "5.00", FormatCurrency(decimal.NewFromInt(5), ""))
}
