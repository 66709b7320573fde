// Package store defines the minimal record-store contract the rest of the
// application is written against: two named logical tables whose rows are flat
// string-to-string mappings, with list, append and patch round-trips. The
// scheduling and ledger logic never sees anything richer than a Record.
package store

import (
	"context"
	"errors"
)

// Logical table names
const (
	TableItems       = "Items"
	TableCompletions = "Completions"
)

// Item field names
const (
	FieldID            = "ID"
	FieldRealm         = "Realm"
	FieldType          = "Type"
	FieldRoomSubrealm  = "Room_Subrealm"
	FieldDescription   = "Description"
	FieldAssignedTo    = "AssignedTo"
	FieldFrequencyDays = "Frequency_days"
	FieldTaskDate      = "TaskDate"
	FieldLastDone      = "LastDone"
	FieldLastDoneBy    = "LastDoneBy"
	FieldNextDue       = "NextDue"
	FieldBudget        = "Budget"
	FieldBudgetYear    = "BudgetYear"
	FieldAdjBudget     = "AdjBudget"
	FieldPriority      = "Priority"
	FieldNotes         = "Notes"
	FieldTaskComplete  = "TaskComplete"
)

// Completion field names
const (
	FieldTaskID        = "TaskID"
	FieldCompletedBy   = "CompletedBy"
	FieldCompletedDate = "CompletedDate"
	FieldCost          = "Cost"
)

// ErrDuplicateID is returned by Append when a record's ID column collides with
// an existing row. The allocator treats it as a retriable conflict.
var ErrDuplicateID = errors.New("duplicate record ID")

// Record is one row of a logical table, field name to serialized value.
// Dates cross this boundary as MM/DD/YYYY strings.
type Record map[string]string

// RecordStore is the abstract store over the Items and Completions tables.
type RecordStore interface {
	// List returns every row of the table.
	List(ctx context.Context, table string) ([]Record, error)

	// Append inserts new rows. Rows whose ID collides with an existing row
	// are rejected with ErrDuplicateID.
	Append(ctx context.Context, table string, records ...Record) error

	// Patch updates the named fields on the row matching id.
	Patch(ctx context.Context, table string, id int, fields Record) error
}
