package dto

import (
	"github.com/shopspring/decimal"

	"github.com/homechores/chores-api/internal/models"
)

// CompletionDTO represents a ledger entry in API responses.
type CompletionDTO struct {
	ID            int              `json:"id"`
	TaskID        int              `json:"task_id"`
	CompletedBy   string           `json:"completed_by"`
	CompletedDate string           `json:"completed_date"`
	Cost          *decimal.Decimal `json:"cost,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// CompleteTaskResponse pairs the new ledger entry with the task projection it
// produced.
type CompleteTaskResponse struct {
	Completion CompletionDTO `json:"completion"`
	Task       TaskDTO       `json:"task"`
}

// ToCompletionDTO converts a Completion model to CompletionDTO
func ToCompletionDTO(c models.Completion) CompletionDTO {
	return CompletionDTO{
		ID:            c.ID,
		TaskID:        c.TaskID,
		CompletedBy:   c.CompletedBy,
		CompletedDate: models.FormatDate(c.CompletedDate),
		Cost:          c.Cost,
		Notes:         c.Notes,
	}
}

// ToCompletionDTOs converts a slice of completions.
func ToCompletionDTOs(completions []models.Completion) []CompletionDTO {
	items := make([]CompletionDTO, len(completions))
	for i, c := range completions {
		items[i] = ToCompletionDTO(c)
	}
	return items
}
