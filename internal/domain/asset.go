package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Asset represents a purchasable unit (a "crop") in the domain layer.
// An Asset is defined once at configuration time and never mutated afterwards.
type Asset struct {
	Name            string // Label used only for reporting
	Cost            int64  // Price to acquire one unit
	Payoff          int64  // Amount credited when the unit matures
	MaturationDelay int    // Days between acquisition and payoff
}

// Validate ensures the asset adheres to domain rules
// Returns an error wrapping ErrInvalidConfiguration if validation fails
func (a Asset) Validate() error {
	if a.Name == "" {
		return configErrorf("asset name cannot be empty")
	}

	if a.Cost <= 0 {
		return configErrorf("asset %q cost must be positive", a.Name)
	}

	if a.Payoff <= 0 {
		return configErrorf("asset %q payoff must be positive", a.Name)
	}

	if a.MaturationDelay <= 0 {
		return configErrorf("asset %q maturation delay must be positive", a.Name)
	}

	return nil
}

// DailyYield returns (Payoff - Cost) / MaturationDelay.
// The value may be fractional, zero or negative. Negative-yield assets are not
// filtered out, they simply rank low.
func (a Asset) DailyYield() decimal.Decimal {
	if a.MaturationDelay <= 0 {
		return decimal.Zero
	}
	return a.netGain().Div(decimal.NewFromInt(int64(a.MaturationDelay)))
}

// CompareYield compares the daily yields of a and b exactly.
// Returns -1 if a yields less than b, 0 if they are equal and +1 if a yields more.
//
// The comparison cross-multiplies (gain_a * delay_b vs gain_b * delay_a) so that
// equal ratios such as 1/3 and 2/6 are treated as a tie rather than depending on
// the rounding of a decimal division.
func (a Asset) CompareYield(b Asset) int {
	left := a.netGain().Mul(decimal.NewFromInt(int64(b.MaturationDelay)))
	right := b.netGain().Mul(decimal.NewFromInt(int64(a.MaturationDelay)))
	return left.Cmp(right)
}

// MaturityDay returns the day on which a unit bought on purchaseDay pays out
func (a Asset) MaturityDay(purchaseDay int) int {
	return purchaseDay + a.MaturationDelay
}

// String implements fmt.Stringer
func (a Asset) String() string {
	return fmt.Sprintf("%s(cost=%d payoff=%d delay=%d)", a.Name, a.Cost, a.Payoff, a.MaturationDelay)
}

func (a Asset) netGain() decimal.Decimal {
	return decimal.NewFromInt(a.Payoff - a.Cost)
}
