package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAsset_Validate(t *testing.T) {
	tests := []struct {
		name    string
		asset   Asset
		wantErr bool
		errMsg  string
	}{
		{
			name:    "Valid asset should pass",
			asset:   Asset{Name: "Turnip", Cost: 20, Payoff: 35, MaturationDelay: 2},
			wantErr: false,
		},
		{
			name:    "Negative yield asset should pass",
			asset:   Asset{Name: "Orchid", Cost: 50, Payoff: 10, MaturationDelay: 4},
			wantErr: false,
		},
		{
			name:    "Empty name should fail",
			asset:   Asset{Name: "", Cost: 20, Payoff: 35, MaturationDelay: 2},
			wantErr: true,
			errMsg:  "asset name cannot be empty",
		},
		{
			name:    "Zero cost should fail",
			asset:   Asset{Name: "Turnip", Cost: 0, Payoff: 35, MaturationDelay: 2},
			wantErr: true,
			errMsg:  "cost must be positive",
		},
		{
			name:    "Negative cost should fail",
			asset:   Asset{Name: "Turnip", Cost: -5, Payoff: 35, MaturationDelay: 2},
			wantErr: true,
			errMsg:  "cost must be positive",
		},
		{
			name:    "Zero payoff should fail",
			asset:   Asset{Name: "Turnip", Cost: 20, Payoff: 0, MaturationDelay: 2},
			wantErr: true,
			errMsg:  "payoff must be positive",
		},
		{
			name:    "Negative payoff should fail",
			asset:   Asset{Name: "Turnip", Cost: 20, Payoff: -1, MaturationDelay: 2},
			wantErr: true,
			errMsg:  "payoff must be positive",
		},
		{
			name:    "Zero maturation delay should fail",
			asset:   Asset{Name: "Turnip", Cost: 20, Payoff: 35, MaturationDelay: 0},
			wantErr: true,
			errMsg:  "maturation delay must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.asset.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, IsConfigurationError(err), "error should wrap ErrInvalidConfiguration")
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAsset_DailyYield(t *testing.T) {
	tests := []struct {
		name     string
		asset    Asset
		expected string
	}{
		{"Cauliflower", Asset{Name: "Cauliflower", Cost: 80, Payoff: 175, MaturationDelay: 6}, "15.83"},
		{"Garlic", Asset{Name: "Garlic", Cost: 40, Payoff: 60, MaturationDelay: 6}, "3.33"},
		{"Kale", Asset{Name: "Kale", Cost: 70, Payoff: 110, MaturationDelay: 3}, "13.33"},
		{"Turnip", Asset{Name: "Turnip", Cost: 20, Payoff: 35, MaturationDelay: 2}, "7.5"},
		{"Break-even", Asset{Name: "Flat", Cost: 20, Payoff: 20, MaturationDelay: 2}, "0"},
		{"Loss", Asset{Name: "Loss", Cost: 30, Payoff: 20, MaturationDelay: 4}, "-2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected, err := decimal.NewFromString(tt.expected)
			assert.NoError(t, err)
			assert.True(t, tt.asset.DailyYield().Round(2).Equal(expected),
				"expected %s, got %s", tt.expected, tt.asset.DailyYield().String())
		})
	}
}

func TestAsset_CompareYield(t *testing.T) {
	kale := Asset{Name: "Kale", Cost: 70, Payoff: 110, MaturationDelay: 3}
	turnip := Asset{Name: "Turnip", Cost: 20, Payoff: 35, MaturationDelay: 2}
	third := Asset{Name: "Third", Cost: 10, Payoff: 11, MaturationDelay: 3}
	sixth := Asset{Name: "Sixth", Cost: 10, Payoff: 12, MaturationDelay: 6}

	assert.Equal(t, 1, kale.CompareYield(turnip))
	assert.Equal(t, -1, turnip.CompareYield(kale))
	assert.Equal(t, 0, third.CompareYield(sixth), "1/3 and 2/6 must tie exactly")
}

func TestAsset_MaturityDay(t *testing.T) {
	turnip := Asset{Name: "Turnip", Cost: 20, Payoff: 35, MaturationDelay: 2}

	// Planted on day 1 with a 2-day grow time, it pays out on day 3
	assert.Equal(t, 3, turnip.MaturityDay(1))
}
