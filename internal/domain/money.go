package domain

import (
	"fmt"
	"math"
)

// AddAmounts returns a + b for non-negative amounts.
// Returns an error wrapping ErrAmountOverflow if the sum does not fit in an int64.
func AddAmounts(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("cannot add negative amounts %d and %d", a, b)
	}
	if a > math.MaxInt64-b {
		return 0, fmt.Errorf("%w: %d + %d", ErrAmountOverflow, a, b)
	}
	return a + b, nil
}

// MulAmount returns units * amount for non-negative operands.
// Returns an error wrapping ErrAmountOverflow if the product does not fit in an int64.
func MulAmount(units, amount int64) (int64, error) {
	if units < 0 || amount < 0 {
		return 0, fmt.Errorf("cannot multiply negative amounts %d and %d", units, amount)
	}
	if units != 0 && amount > math.MaxInt64/units {
		return 0, fmt.Errorf("%w: %d x %d", ErrAmountOverflow, units, amount)
	}
	return units * amount, nil
}
