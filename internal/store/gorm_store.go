package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/homechores/chores-api/internal/errors"
)

// itemRow mirrors one row of the Items sheet. Every cell stays a string so the
// store round-trips exactly what the core hands it; parsing is the domain
// layer's job.
type itemRow struct {
	RowID         uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	SheetID       string `gorm:"column:sheet_id;uniqueIndex"`
	Realm         string
	Type          string
	RoomSubrealm  string
	Description   string
	AssignedTo    string
	FrequencyDays string
	TaskDate      string
	LastDone      string
	LastDoneBy    string
	NextDue       string
	Budget        string
	BudgetYear    string
	AdjBudget     string
	Priority      string
	Notes         string
	TaskComplete  string
}

func (itemRow) TableName() string { return "items" }

// completionRow mirrors one row of the Completions sheet.
type completionRow struct {
	RowID         uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	SheetID       string `gorm:"column:sheet_id;uniqueIndex"`
	TaskID        string
	CompletedBy   string
	CompletedDate string
	Cost          string
	Notes         string
}

func (completionRow) TableName() string { return "completions" }

var itemColumns = map[string]string{
	FieldID:            "sheet_id",
	FieldRealm:         "realm",
	FieldType:          "type",
	FieldRoomSubrealm:  "room_subrealm",
	FieldDescription:   "description",
	FieldAssignedTo:    "assigned_to",
	FieldFrequencyDays: "frequency_days",
	FieldTaskDate:      "task_date",
	FieldLastDone:      "last_done",
	FieldLastDoneBy:    "last_done_by",
	FieldNextDue:       "next_due",
	FieldBudget:        "budget",
	FieldBudgetYear:    "budget_year",
	FieldAdjBudget:     "adj_budget",
	FieldPriority:      "priority",
	FieldNotes:         "notes",
	FieldTaskComplete:  "task_complete",
}

var completionColumns = map[string]string{
	FieldID:            "sheet_id",
	FieldTaskID:        "task_id",
	FieldCompletedBy:   "completed_by",
	FieldCompletedDate: "completed_date",
	FieldCost:          "cost",
	FieldNotes:         "notes",
}

// GormStore implements RecordStore on a relational database, one wide
// string-typed table per sheet with a unique index on the sheet ID column.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a RecordStore backed by the given database.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the two backing tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&itemRow{}, &completionRow{}); err != nil {
		return fmt.Errorf("failed to migrate record tables: %w", err)
	}
	return nil
}

// List returns every row of the table in insertion order.
func (s *GormStore) List(ctx context.Context, table string) ([]Record, error) {
	switch table {
	case TableItems:
		var rows []itemRow
		if err := s.db.WithContext(ctx).Order("row_id").Find(&rows).Error; err != nil {
			return nil, &apperrors.StoreUnavailableError{Table: table, Op: "list", Err: err}
		}
		records := make([]Record, len(rows))
		for i := range rows {
			records[i] = rows[i].record()
		}
		return records, nil
	case TableCompletions:
		var rows []completionRow
		if err := s.db.WithContext(ctx).Order("row_id").Find(&rows).Error; err != nil {
			return nil, &apperrors.StoreUnavailableError{Table: table, Op: "list", Err: err}
		}
		records := make([]Record, len(rows))
		for i := range rows {
			records[i] = rows[i].record()
		}
		return records, nil
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
}

// Append inserts new rows, rejecting ID collisions with ErrDuplicateID.
func (s *GormStore) Append(ctx context.Context, table string, records ...Record) error {
	if len(records) == 0 {
		return nil
	}

	var err error
	switch table {
	case TableItems:
		rows := make([]itemRow, len(records))
		for i, r := range records {
			rows[i] = itemRowFromRecord(r)
		}
		err = s.db.WithContext(ctx).Create(&rows).Error
	case TableCompletions:
		rows := make([]completionRow, len(records))
		for i, r := range records {
			rows[i] = completionRowFromRecord(r)
		}
		err = s.db.WithContext(ctx).Create(&rows).Error
	default:
		return fmt.Errorf("unknown table %q", table)
	}

	if err != nil {
		if isDuplicateErr(err) {
			return fmt.Errorf("table %q: %w", table, ErrDuplicateID)
		}
		return &apperrors.StoreUnavailableError{Table: table, Op: "append", Err: err}
	}
	return nil
}

// Patch updates the named fields on the row whose sheet ID matches id.
func (s *GormStore) Patch(ctx context.Context, table string, id int, fields Record) error {
	columns, model, err := tableColumns(table)
	if err != nil {
		return err
	}

	updates := make(map[string]interface{}, len(fields))
	for field, value := range fields {
		column, ok := columns[field]
		if !ok {
			return fmt.Errorf("unknown field %q for table %q", field, table)
		}
		updates[column] = value
	}
	if len(updates) == 0 {
		return nil
	}

	result := s.db.WithContext(ctx).Model(model).
		Where("sheet_id = ?", strconv.Itoa(id)).
		Updates(updates)
	if result.Error != nil {
		if isDuplicateErr(result.Error) {
			return fmt.Errorf("table %q: %w", table, ErrDuplicateID)
		}
		return &apperrors.StoreUnavailableError{Table: table, Op: "patch", Err: result.Error}
	}
	// MySQL reports rows changed, not rows matched, so zero affected rows can
	// also mean the row already held these exact values. Absence is confirmed
	// with a count, never inferred from RowsAffected.
	if result.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(model).
			Where("sheet_id = ?", strconv.Itoa(id)).
			Count(&count).Error; err != nil {
			return &apperrors.StoreUnavailableError{Table: table, Op: "patch", Err: err}
		}
		if count == 0 {
			return &apperrors.ReferenceError{Table: table, ID: id}
		}
	}
	return nil
}

func tableColumns(table string) (map[string]string, interface{}, error) {
	switch table {
	case TableItems:
		return itemColumns, &itemRow{}, nil
	case TableCompletions:
		return completionColumns, &completionRow{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown table %q", table)
	}
}

func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	// Fallback for dialects without error translation enabled.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

func (r itemRow) record() Record {
	return Record{
		FieldID:            r.SheetID,
		FieldRealm:         r.Realm,
		FieldType:          r.Type,
		FieldRoomSubrealm:  r.RoomSubrealm,
		FieldDescription:   r.Description,
		FieldAssignedTo:    r.AssignedTo,
		FieldFrequencyDays: r.FrequencyDays,
		FieldTaskDate:      r.TaskDate,
		FieldLastDone:      r.LastDone,
		FieldLastDoneBy:    r.LastDoneBy,
		FieldNextDue:       r.NextDue,
		FieldBudget:        r.Budget,
		FieldBudgetYear:    r.BudgetYear,
		FieldAdjBudget:     r.AdjBudget,
		FieldPriority:      r.Priority,
		FieldNotes:         r.Notes,
		FieldTaskComplete:  r.TaskComplete,
	}
}

func itemRowFromRecord(r Record) itemRow {
	return itemRow{
		SheetID:       r[FieldID],
		Realm:         r[FieldRealm],
		Type:          r[FieldType],
		RoomSubrealm:  r[FieldRoomSubrealm],
		Description:   r[FieldDescription],
		AssignedTo:    r[FieldAssignedTo],
		FrequencyDays: r[FieldFrequencyDays],
		TaskDate:      r[FieldTaskDate],
		LastDone:      r[FieldLastDone],
		LastDoneBy:    r[FieldLastDoneBy],
		NextDue:       r[FieldNextDue],
		Budget:        r[FieldBudget],
		BudgetYear:    r[FieldBudgetYear],
		AdjBudget:     r[FieldAdjBudget],
		Priority:      r[FieldPriority],
		Notes:         r[FieldNotes],
		TaskComplete:  r[FieldTaskComplete],
	}
}

func (r completionRow) record() Record {
	return Record{
		FieldID:            r.SheetID,
		FieldTaskID:        r.TaskID,
		FieldCompletedBy:   r.CompletedBy,
		FieldCompletedDate: r.CompletedDate,
		FieldCost:          r.Cost,
		FieldNotes:         r.Notes,
	}
}

func completionRowFromRecord(r Record) completionRow {
	return completionRow{
		SheetID:       r[FieldID],
		TaskID:        r[FieldTaskID],
		CompletedBy:   r[FieldCompletedBy],
		CompletedDate: r[FieldCompletedDate],
		Cost:          r[FieldCost],
		Notes:         r[FieldNotes],
	}
}
