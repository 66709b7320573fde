package schedule

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAdjustedBudget(t *testing.T) {
	tests := []struct {
		name        string
		budget      string
		budgetYear  int
		currentYear int
		want        string
	}{
		{"two years of escalation", "100", 2023, 2025, "108.16"},
		{"one year", "100", 2024, 2025, "104"},
		{"same year is a no-op", "100", 2025, 2025, "100"},
		{"future budget year clamps to no-op", "100", 2026, 2025, "100"},
		{"rounds to cents", "33.33", 2022, 2025, "37.49"},
		{"zero budget stays zero", "0", 2020, 2025, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := decimal.RequireFromString(tt.budget)
			got := AdjustedBudget(budget, tt.budgetYear, tt.currentYear)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
