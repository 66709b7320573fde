package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Task is one row of the Items table, parsed into typed fields.
//
// ID, Realm through Notes are ground truth set at creation. LastDone,
// LastDoneBy, NextDue and TaskComplete are the projection maintained by the
// completion ledger. AdjBudget is deliberately absent: it is derived on demand
// and never trusted from the store.
type Task struct {
	ID            int
	Realm         Realm
	Type          TaskType
	RoomSubrealm  string
	Description   string
	AssignedTo    string
	FrequencyDays *int
	TaskDate      *time.Time
	Budget        *decimal.Decimal
	BudgetYear    int
	Priority      int
	Notes         string

	LastDone     *time.Time
	LastDoneBy   string
	NextDue      *time.Time
	TaskComplete bool
}

// Recurring reports whether the task advances its due date on completion.
func (t Task) Recurring() bool {
	return t.FrequencyDays != nil && *t.FrequencyDays > 0
}

// EffectiveDue is the date the task is next expected: NextDue when the
// projection has one, the seed TaskDate otherwise.
func (t Task) EffectiveDue() *time.Time {
	if t.NextDue != nil {
		return t.NextDue
	}
	return t.TaskDate
}
