package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/homechores/chores-api/internal/store"
)

// DateLayout is the calendar-date form used on the store boundary.
const DateLayout = "01/02/2006"

// ParseDate parses an MM/DD/YYYY cell.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// FormatDate renders a date as MM/DD/YYYY.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDatePtr renders an optional date, blank when absent.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}

// TaskFromRecord parses an Items row. Parsing is lenient: garbage or blank
// cells become zero values, never errors, so one bad spreadsheet row cannot
// take the whole table down. Rows without a usable ID are dropped later by the
// query engine.
func TaskFromRecord(r store.Record) Task {
	return Task{
		ID:            parseID(r[store.FieldID]),
		Realm:         Realm(strings.TrimSpace(r[store.FieldRealm])),
		Type:          TaskType(strings.TrimSpace(r[store.FieldType])),
		RoomSubrealm:  strings.TrimSpace(r[store.FieldRoomSubrealm]),
		Description:   strings.TrimSpace(r[store.FieldDescription]),
		AssignedTo:    strings.TrimSpace(r[store.FieldAssignedTo]),
		FrequencyDays: parsePositiveInt(r[store.FieldFrequencyDays]),
		TaskDate:      parseDatePtr(r[store.FieldTaskDate]),
		Budget:        parseAmount(r[store.FieldBudget]),
		BudgetYear:    parseInt(r[store.FieldBudgetYear]),
		Priority:      parseInt(r[store.FieldPriority]),
		Notes:         r[store.FieldNotes],
		LastDone:      parseDatePtr(r[store.FieldLastDone]),
		LastDoneBy:    strings.TrimSpace(r[store.FieldLastDoneBy]),
		NextDue:       parseDatePtr(r[store.FieldNextDue]),
		TaskComplete:  parseFlag(r[store.FieldTaskComplete]),
	}
}

// ToRecord serializes the task back into the Items field contract. AdjBudget
// is always written blank: it is recomputed on read, never stored as truth.
func (t Task) ToRecord() store.Record {
	return store.Record{
		store.FieldID:            strconv.Itoa(t.ID),
		store.FieldRealm:         string(t.Realm),
		store.FieldType:          string(t.Type),
		store.FieldRoomSubrealm:  t.RoomSubrealm,
		store.FieldDescription:   t.Description,
		store.FieldAssignedTo:    t.AssignedTo,
		store.FieldFrequencyDays: formatIntPtr(t.FrequencyDays),
		store.FieldTaskDate:      FormatDatePtr(t.TaskDate),
		store.FieldLastDone:      FormatDatePtr(t.LastDone),
		store.FieldLastDoneBy:    t.LastDoneBy,
		store.FieldNextDue:       FormatDatePtr(t.NextDue),
		store.FieldBudget:        formatAmount(t.Budget),
		store.FieldBudgetYear:    formatInt(t.BudgetYear),
		store.FieldAdjBudget:     "",
		store.FieldPriority:      formatInt(t.Priority),
		store.FieldNotes:         t.Notes,
		store.FieldTaskComplete:  formatFlag(t.TaskComplete),
	}
}

// CompletionFromRecord parses a Completions row, as leniently as
// TaskFromRecord.
func CompletionFromRecord(r store.Record) Completion {
	var completedDate time.Time
	if d := parseDatePtr(r[store.FieldCompletedDate]); d != nil {
		completedDate = *d
	}
	return Completion{
		ID:            parseID(r[store.FieldID]),
		TaskID:        parseID(r[store.FieldTaskID]),
		CompletedBy:   strings.TrimSpace(r[store.FieldCompletedBy]),
		CompletedDate: completedDate,
		Cost:          parseAmount(r[store.FieldCost]),
		Notes:         r[store.FieldNotes],
	}
}

// ToRecord serializes the completion into the Completions field contract.
func (c Completion) ToRecord() store.Record {
	return store.Record{
		store.FieldID:            strconv.Itoa(c.ID),
		store.FieldTaskID:        strconv.Itoa(c.TaskID),
		store.FieldCompletedBy:   c.CompletedBy,
		store.FieldCompletedDate: FormatDate(c.CompletedDate),
		store.FieldCost:          formatAmount(c.Cost),
		store.FieldNotes:         c.Notes,
	}
}

func parseID(s string) int {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func parsePositiveInt(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

func parseDatePtr(s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil
	}
	return &t
}

func parseAmount(s string) *decimal.Decimal {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func formatIntPtr(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func formatAmount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func formatFlag(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
