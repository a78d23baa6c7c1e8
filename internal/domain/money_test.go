package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAmounts(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int64
		expected int64
		overflow bool
	}{
		{"Small", 60, 175, 235, false},
		{"Zero", 0, 0, 0, false},
		{"Exactly Max", math.MaxInt64 - 5, 5, math.MaxInt64, false},
		{"One Past Max", math.MaxInt64 - 5, 6, 0, true},
		{"Two Large Halves", 1 << 62, 1 << 62, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddAmounts(tt.a, tt.b)

			if tt.overflow {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrAmountOverflow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAddAmounts_RejectsNegative(t *testing.T) {
	_, err := AddAmounts(-1, 5)

	assert.Error(t, err)
}

func TestMulAmount(t *testing.T) {
	tests := []struct {
		name          string
		units, amount int64
		expected      int64
		overflow      bool
	}{
		{"Small", 3, 35, 105, false},
		{"Zero Units", 0, math.MaxInt64, 0, false},
		{"Fits", 2, math.MaxInt64 / 2, math.MaxInt64 - 1, false},
		{"Overflows", 2, 1<<62 + 1<<61, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MulAmount(tt.units, tt.amount)

			if tt.overflow {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrAmountOverflow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
