package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/homechores/chores-api/internal/errors"
	"github.com/homechores/chores-api/internal/models"
	"github.com/homechores/chores-api/internal/schedule"
	"github.com/homechores/chores-api/internal/store"
)

// CompletionService is the append-only ledger over the Completions table. It
// records completion events and projects their effect back onto the task row:
// LastDone, LastDoneBy, NextDue and TaskComplete. Ledger rows are never
// mutated or deleted.
type CompletionService struct {
	store store.RecordStore
	alloc *Allocator
}

func NewCompletionService(s store.RecordStore) *CompletionService {
	return &CompletionService{
		store: s,
		alloc: NewAllocator(s),
	}
}

// CompletionInput carries one completion event.
type CompletionInput struct {
	CompletedBy   string
	CompletedDate time.Time
	Cost          *decimal.Decimal
	Notes         string
}

// RecordCompletion validates the input, verifies the task exists, appends the
// ledger row and patches the task projection. Validation and the reference
// check both run before any write, so a rejected completion leaves the store
// untouched. If the ledger append succeeds but the projection patch fails, the
// result is an InconsistencyError naming both rows; the ledger entry is still
// returned so the caller can recover by re-patching.
func (s *CompletionService) RecordCompletion(ctx context.Context, taskID int, input CompletionInput) (*models.Completion, *models.Task, error) {
	completedBy := strings.TrimSpace(input.CompletedBy)
	if completedBy == "" {
		return nil, nil, &apperrors.ValidationError{Field: store.FieldCompletedBy, Reason: "must not be empty"}
	}
	if input.CompletedDate.IsZero() {
		return nil, nil, &apperrors.ValidationError{Field: store.FieldCompletedDate, Reason: "must be a valid date"}
	}
	if input.Cost != nil && input.Cost.IsNegative() {
		return nil, nil, &apperrors.ValidationError{Field: store.FieldCost, Reason: "must not be negative"}
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}

	completion := &models.Completion{
		TaskID:        taskID,
		CompletedBy:   completedBy,
		CompletedDate: input.CompletedDate,
		Cost:          input.Cost,
		Notes:         input.Notes,
	}

	if _, err := s.alloc.Allocate(ctx, store.TableCompletions, func(id int) store.Record {
		completion.ID = id
		return completion.ToRecord()
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to record completion: %w", err)
	}

	done := completion.CompletedDate
	updated := *task
	updated.LastDone = &done
	updated.LastDoneBy = completedBy
	updated.NextDue = schedule.NextDue(*task, &done)
	updated.TaskComplete = true

	fields := store.Record{
		store.FieldLastDone:     models.FormatDate(done),
		store.FieldLastDoneBy:   completedBy,
		store.FieldNextDue:      models.FormatDatePtr(updated.NextDue),
		store.FieldTaskComplete: "TRUE",
	}
	if err := s.store.Patch(ctx, store.TableItems, taskID, fields); err != nil {
		return completion, nil, &apperrors.InconsistencyError{
			CompletionID: completion.ID,
			TaskID:       taskID,
			Err:          err,
		}
	}

	return completion, &updated, nil
}

// ListForTask returns the ledger entries referencing the given task, in
// insertion order.
func (s *CompletionService) ListForTask(ctx context.Context, taskID int) ([]models.Completion, error) {
	if _, err := s.findTask(ctx, taskID); err != nil {
		return nil, err
	}

	records, err := s.store.List(ctx, store.TableCompletions)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	completions := make([]models.Completion, 0, len(records))
	for _, r := range records {
		c := models.CompletionFromRecord(r)
		if c.ID > 0 && c.TaskID == taskID {
			completions = append(completions, c)
		}
	}
	return completions, nil
}

func (s *CompletionService) findTask(ctx context.Context, taskID int) (*models.Task, error) {
	records, err := s.store.List(ctx, store.TableItems)
	if err != nil {
		return nil, fmt.Errorf("failed to verify task: %w", err)
	}
	for _, r := range records {
		t := models.TaskFromRecord(r)
		if t.ID == taskID {
			return &t, nil
		}
	}
	return nil, &apperrors.ReferenceError{Table: store.TableItems, ID: taskID}
}
