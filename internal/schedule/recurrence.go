// Package schedule holds the pure scheduling rules: when a task is next due
// and what its budget is worth today. Both are plain functions of their inputs
// so the store never has to be trusted for derived values.
package schedule

import (
	"time"

	"github.com/homechores/chores-api/internal/models"
)

// NextDue computes a task's next due date.
//
// A recurring task completed on a given date is due again FrequencyDays later,
// by calendar arithmetic in local time. A recurring task that has never been
// completed is due on its seed TaskDate. A one-off task is due on TaskDate
// regardless of completions; it does not recur.
func NextDue(t models.Task, completed *time.Time) *time.Time {
	if t.Recurring() && completed != nil {
		due := completed.AddDate(0, 0, *t.FrequencyDays)
		return &due
	}
	if t.TaskDate == nil {
		return nil
	}
	due := *t.TaskDate
	return &due
}
