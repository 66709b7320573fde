package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Completion is one immutable row of the Completions ledger.
type Completion struct {
	ID            int
	TaskID        int
	CompletedBy   string
	CompletedDate time.Time
	Cost          *decimal.Decimal
	Notes         string
}
