// Package query filters and orders the in-memory task collection. Apply is a
// pure function: filters arrive as an explicit struct, the input slice is
// never mutated, and equal sort keys keep their input order.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/homechores/chores-api/internal/models"
)

// SortBy selects the ordering of query results.
type SortBy string

const (
	SortByDate     SortBy = "date"
	SortByPriority SortBy = "priority"
)

// Valid reports whether s is a known sort order.
func (s SortBy) Valid() bool {
	return s == SortByDate || s == SortByPriority
}

// Filters are combined with logical AND; zero-valued fields match everything.
type Filters struct {
	AssignedTo       []string
	Priority         *int
	Realm            *models.Realm
	Type             *models.TaskType
	DueFrom          *time.Time
	DueTo            *time.Time
	ExcludeCompleted bool
}

// Tasks lacking any due date sort after every dated task.
var farFuture = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// Apply returns a new, filtered, ordered slice of tasks. Records without a
// usable ID are treated as blank rows and always dropped.
func Apply(tasks []models.Task, f Filters, sortBy SortBy) []models.Task {
	result := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID <= 0 {
			continue
		}
		if matches(t, f) {
			result = append(result, t)
		}
	}

	switch sortBy {
	case SortByPriority:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Priority < result[j].Priority
		})
	case SortByDate:
		sort.SliceStable(result, func(i, j int) bool {
			return sortDate(result[i]).Before(sortDate(result[j]))
		})
	}

	return result
}

func matches(t models.Task, f Filters) bool {
	if len(f.AssignedTo) > 0 && !assigneeIn(t.AssignedTo, f.AssignedTo) {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.Realm != nil && t.Realm != *f.Realm {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.DueFrom != nil || f.DueTo != nil {
		due := t.EffectiveDue()
		if due == nil {
			// A bounded range never matches a task with no due date.
			return false
		}
		if f.DueFrom != nil && due.Before(*f.DueFrom) {
			return false
		}
		if f.DueTo != nil && due.After(*f.DueTo) {
			return false
		}
	}
	if f.ExcludeCompleted && t.TaskComplete {
		return false
	}
	return true
}

func assigneeIn(name string, set []string) bool {
	for _, s := range set {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

func sortDate(t models.Task) time.Time {
	if due := t.EffectiveDue(); due != nil {
		return *due
	}
	return farFuture
}
