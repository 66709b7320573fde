package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/homechores/chores-api/internal/constants"
	apperrors "github.com/homechores/chores-api/internal/errors"
	"github.com/homechores/chores-api/internal/models"
	"github.com/homechores/chores-api/internal/query"
	"github.com/homechores/chores-api/internal/schedule"
	"github.com/homechores/chores-api/internal/store"
)

// TaskService owns creation and retrieval of tasks in the Items table.
type TaskService struct {
	store  store.RecordStore
	alloc  *Allocator
	roster []string
	now    func() time.Time
}

// NewTaskService creates a TaskService over the given store and household
// roster.
func NewTaskService(s store.RecordStore, roster []string) *TaskService {
	return &TaskService{
		store:  s,
		alloc:  NewAllocator(s),
		roster: roster,
		now:    time.Now,
	}
}

// CreateTaskInput carries the ground-truth fields of a new task.
type CreateTaskInput struct {
	Realm         string
	Type          string
	RoomSubrealm  string
	Description   string
	AssignedTo    string
	FrequencyDays *int
	TaskDate      *time.Time
	Budget        *decimal.Decimal
	BudgetYear    int
	Priority      int
	Notes         string
}

// Create validates the input, allocates a fresh ID and appends the task.
// NextDue is seeded from TaskDate so a never-completed task already carries
// its first due date.
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	task, err := s.buildTask(input)
	if err != nil {
		return nil, err
	}

	if _, err := s.alloc.Allocate(ctx, store.TableItems, func(id int) store.Record {
		task.ID = id
		return task.ToRecord()
	}); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// List returns the filtered, ordered view of the Items table.
func (s *TaskService) List(ctx context.Context, filters query.Filters, sortBy query.SortBy) ([]models.Task, error) {
	records, err := s.store.List(ctx, store.TableItems)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]models.Task, len(records))
	for i, r := range records {
		tasks[i] = models.TaskFromRecord(r)
	}

	return query.Apply(tasks, filters, sortBy), nil
}

// Get returns the task with the given ID.
func (s *TaskService) Get(ctx context.Context, id int) (*models.Task, error) {
	records, err := s.store.List(ctx, store.TableItems)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	for _, r := range records {
		t := models.TaskFromRecord(r)
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, &apperrors.ReferenceError{Table: store.TableItems, ID: id}
}

func (s *TaskService) buildTask(input CreateTaskInput) (*models.Task, error) {
	realm := models.Realm(strings.TrimSpace(input.Realm))
	if !realm.Valid() {
		return nil, &apperrors.ValidationError{Field: store.FieldRealm, Reason: fmt.Sprintf("%q is not a known realm", input.Realm)}
	}

	taskType := models.TaskType(strings.TrimSpace(input.Type))
	if !taskType.Valid() {
		return nil, &apperrors.ValidationError{Field: store.FieldType, Reason: "must be Chore, Task or Expense"}
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, &apperrors.ValidationError{Field: store.FieldDescription, Reason: "must not be empty"}
	}

	assignedTo := strings.TrimSpace(input.AssignedTo)
	if assignedTo == "" {
		return nil, &apperrors.ValidationError{Field: store.FieldAssignedTo, Reason: "must not be empty"}
	}
	if !models.ValidAssignee(s.roster, assignedTo) {
		return nil, &apperrors.ValidationError{
			Field:  store.FieldAssignedTo,
			Reason: fmt.Sprintf("%q is not on the household roster (or All/Other)", assignedTo),
		}
	}

	if !models.AllowedSubrealm(realm, strings.TrimSpace(input.RoomSubrealm)) {
		return nil, &apperrors.ValidationError{
			Field:  store.FieldRoomSubrealm,
			Reason: fmt.Sprintf("%q is not an allowed subrealm for %s", input.RoomSubrealm, realm),
		}
	}

	if input.FrequencyDays != nil && *input.FrequencyDays <= 0 {
		return nil, &apperrors.ValidationError{Field: store.FieldFrequencyDays, Reason: "must be a positive number of days"}
	}
	// A one-off task has no recurrence to derive a due date from.
	if input.FrequencyDays == nil && input.TaskDate == nil {
		return nil, &apperrors.ValidationError{Field: store.FieldTaskDate, Reason: "required when Frequency_days is absent"}
	}

	if input.Budget != nil && input.Budget.IsNegative() {
		return nil, &apperrors.ValidationError{Field: store.FieldBudget, Reason: "must not be negative"}
	}

	priority := input.Priority
	if priority == 0 {
		priority = constants.DefaultPriority
	}
	if priority < constants.MinPriority || priority > constants.MaxPriority {
		return nil, &apperrors.ValidationError{Field: store.FieldPriority, Reason: "must be between 1 and 5"}
	}

	budgetYear := input.BudgetYear
	if budgetYear == 0 {
		budgetYear = s.now().Year()
	}

	task := &models.Task{
		Realm:         realm,
		Type:          taskType,
		RoomSubrealm:  strings.TrimSpace(input.RoomSubrealm),
		Description:   description,
		AssignedTo:    assignedTo,
		FrequencyDays: input.FrequencyDays,
		TaskDate:      input.TaskDate,
		Budget:        input.Budget,
		BudgetYear:    budgetYear,
		Priority:      priority,
		Notes:         input.Notes,
	}
	task.NextDue = schedule.NextDue(*task, nil)

	return task, nil
}
