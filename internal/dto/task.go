package dto

import (
	"github.com/shopspring/decimal"

	"github.com/homechores/chores-api/internal/models"
	"github.com/homechores/chores-api/internal/schedule"
	"github.com/homechores/chores-api/internal/utils"
)

// CreateTaskRequest is the POST /api/tasks body. Dates are MM/DD/YYYY strings,
// matching the store boundary.
type CreateTaskRequest struct {
	Realm         string           `json:"realm" binding:"required"`
	Type          string           `json:"type" binding:"required"`
	RoomSubrealm  string           `json:"room_subrealm"`
	Description   string           `json:"description" binding:"required"`
	AssignedTo    string           `json:"assigned_to" binding:"required"`
	FrequencyDays *int             `json:"frequency_days"`
	TaskDate      string           `json:"task_date"`
	Budget        *decimal.Decimal `json:"budget"`
	BudgetYear    int              `json:"budget_year"`
	Priority      int              `json:"priority"`
	Notes         string           `json:"notes"`
}

// CompleteTaskRequest is the POST /api/tasks/:id/complete body. CompletedBy
// defaults to the session's active member, CompletedDate to today.
type CompleteTaskRequest struct {
	CompletedBy   string           `json:"completed_by"`
	CompletedDate string           `json:"completed_date"`
	Cost          *decimal.Decimal `json:"cost"`
	Notes         string           `json:"notes"`
}

// TaskDTO represents a task in API responses. AdjBudget is computed from
// Budget and BudgetYear at response time.
type TaskDTO struct {
	ID            int              `json:"id"`
	Realm         string           `json:"realm"`
	Type          string           `json:"type"`
	RoomSubrealm  string           `json:"room_subrealm,omitempty"`
	Description   string           `json:"description"`
	AssignedTo    string           `json:"assigned_to"`
	FrequencyDays *int             `json:"frequency_days,omitempty"`
	TaskDate      string           `json:"task_date,omitempty"`
	LastDone      string           `json:"last_done,omitempty"`
	LastDoneBy    string           `json:"last_done_by,omitempty"`
	NextDue       string           `json:"next_due,omitempty"`
	Budget        *decimal.Decimal `json:"budget,omitempty"`
	BudgetYear    int              `json:"budget_year,omitempty"`
	AdjBudget     *decimal.Decimal `json:"adj_budget,omitempty"`
	Priority      int              `json:"priority"`
	Notes         string           `json:"notes,omitempty"`
	TaskComplete  bool             `json:"task_complete"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTaskDTO converts a Task model to TaskDTO, escalating the budget to the
// given year.
func ToTaskDTO(task models.Task, currentYear int) TaskDTO {
	dto := TaskDTO{
		ID:            task.ID,
		Realm:         string(task.Realm),
		Type:          string(task.Type),
		RoomSubrealm:  task.RoomSubrealm,
		Description:   task.Description,
		AssignedTo:    task.AssignedTo,
		FrequencyDays: task.FrequencyDays,
		TaskDate:      models.FormatDatePtr(task.TaskDate),
		LastDone:      models.FormatDatePtr(task.LastDone),
		LastDoneBy:    task.LastDoneBy,
		NextDue:       models.FormatDatePtr(task.NextDue),
		Budget:        task.Budget,
		BudgetYear:    task.BudgetYear,
		Priority:      task.Priority,
		Notes:         task.Notes,
		TaskComplete:  task.TaskComplete,
	}

	if task.Budget != nil {
		budgetYear := task.BudgetYear
		if budgetYear == 0 {
			budgetYear = currentYear
		}
		adjusted := schedule.AdjustedBudget(*task.Budget, budgetYear, currentYear)
		dto.AdjBudget = &adjusted
	}

	return dto
}

// ToTaskListResponse converts a page of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, currentYear int, pagination utils.PaginationResponse) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task, currentYear)
	}
	return TaskListResponse{
		Tasks:      items,
		Pagination: pagination,
	}
}
