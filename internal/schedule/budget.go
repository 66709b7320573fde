package schedule

import (
	"github.com/shopspring/decimal"

	"github.com/homechores/chores-api/internal/constants"
)

var escalationRate = decimal.RequireFromString(constants.BudgetEscalationRate)

// AdjustedBudget escalates a budget from its reference year to the current
// year at 4% annual compounding, rounded to cents. A BudgetYear in the future
// is a no-op, not a reduction: the exponent clamps at zero.
func AdjustedBudget(budget decimal.Decimal, budgetYear, currentYear int) decimal.Decimal {
	years := currentYear - budgetYear
	if years < 0 {
		years = 0
	}
	return budget.Mul(escalationRate.Pow(decimal.NewFromInt(int64(years)))).Round(2)
}
