package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/homechores/chores-api/internal/constants"
	apperrors "github.com/homechores/chores-api/internal/errors"
	"github.com/homechores/chores-api/internal/store"
)

// Allocator hands out the next numeric ID for a table. The counter is not a
// locked resource: it is recomputed from a fresh snapshot on every allocation,
// so two sessions can race to the same value. The contract is detect and
// retry, bounded, never a silent duplicate.
type Allocator struct {
	store store.RecordStore
}

func NewAllocator(s store.RecordStore) *Allocator {
	return &Allocator{store: s}
}

// NextID returns max(existing parseable positive IDs) + 1, or 1 for an empty
// table. Malformed and non-positive IDs are ignored.
func NextID(records []store.Record) int {
	max := 0
	for _, r := range records {
		id, err := strconv.Atoi(strings.TrimSpace(r[store.FieldID]))
		if err != nil || id <= 0 {
			continue
		}
		if id > max {
			max = id
		}
	}
	return max + 1
}

// Allocate reads a fresh snapshot of the table, computes the next ID, appends
// the record produced by build, and confirms the written ID is still uniquely
// present. A duplicate rejected by the store means another session won the
// race; the loop starts over with a fresh snapshot, up to
// constants.MaxAllocateAttempts before surfacing AllocationConflictError.
//
// A failed snapshot read aborts the allocation with no write attempted. A
// failed verification read after the append surfaces AllocationUnverifiedError
// carrying the written ID, since at that point the row exists.
func (a *Allocator) Allocate(ctx context.Context, table string, build func(id int) store.Record) (int, error) {
	for attempt := 1; attempt <= constants.MaxAllocateAttempts; attempt++ {
		records, err := a.store.List(ctx, table)
		if err != nil {
			return 0, err
		}

		id := NextID(records)
		if err := a.store.Append(ctx, table, build(id)); err != nil {
			if errors.Is(err, store.ErrDuplicateID) {
				continue
			}
			return 0, err
		}

		records, err = a.store.List(ctx, table)
		if err != nil {
			// The append already committed; callers must not re-run the
			// operation on the strength of this error.
			return 0, &apperrors.AllocationUnverifiedError{Table: table, ID: id, Err: err}
		}
		if countID(records, id) == 1 {
			return id, nil
		}
		// The store accepted a duplicate it should have rejected. Our row
		// cannot be told apart from the rival's, so appending again would
		// double-write; surface the conflict instead.
		return 0, &apperrors.AllocationConflictError{Table: table, Attempts: attempt}
	}
	return 0, &apperrors.AllocationConflictError{Table: table, Attempts: constants.MaxAllocateAttempts}
}

func countID(records []store.Record, id int) int {
	n := 0
	for _, r := range records {
		v, err := strconv.Atoi(strings.TrimSpace(r[store.FieldID]))
		if err == nil && v == id {
			n++
		}
	}
	return n
}
