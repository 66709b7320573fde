package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homechores/chores-api/internal/store"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("03/15/2025")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDate("2025-03-15")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "01/08/2025", FormatDate(d))
	assert.Equal(t, "", FormatDatePtr(nil))
}

func TestTaskFromRecord_Lenient(t *testing.T) {
	task := TaskFromRecord(store.Record{
		store.FieldID:            "oops",
		store.FieldRealm:         "Home",
		store.FieldFrequencyDays: "-3",
		store.FieldTaskDate:      "not a date",
		store.FieldBudget:        "lots",
		store.FieldPriority:      "",
		store.FieldTaskComplete:  "maybe",
	})

	assert.Zero(t, task.ID, "a malformed ID marks a blank row")
	assert.Equal(t, RealmHome, task.Realm)
	assert.Nil(t, task.FrequencyDays, "non-positive frequency means one-off")
	assert.Nil(t, task.TaskDate)
	assert.Nil(t, task.Budget)
	assert.False(t, task.TaskComplete)
}

func TestTaskFromRecord_DollarSignBudget(t *testing.T) {
	task := TaskFromRecord(store.Record{
		store.FieldID:     "2",
		store.FieldBudget: "$49.99",
	})
	require.NotNil(t, task.Budget)
	assert.Equal(t, "49.99", task.Budget.String())
}

func TestTaskToRecord_NeverPersistsAdjBudget(t *testing.T) {
	freq := 14
	seed := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	task := Task{
		ID:            7,
		Realm:         RealmHome,
		Type:          TypeChore,
		Description:   "Vacuum upstairs",
		AssignedTo:    "Alex",
		FrequencyDays: &freq,
		TaskDate:      &seed,
		BudgetYear:    2025,
		Priority:      2,
	}

	record := task.ToRecord()
	assert.Equal(t, "7", record[store.FieldID])
	assert.Equal(t, "14", record[store.FieldFrequencyDays])
	assert.Equal(t, "05/01/2025", record[store.FieldTaskDate])
	assert.Equal(t, "FALSE", record[store.FieldTaskComplete])
	assert.Equal(t, "", record[store.FieldAdjBudget], "AdjBudget is derived, never stored as truth")

	// And it survives the trip back.
	parsed := TaskFromRecord(record)
	assert.Equal(t, task, parsed)
}

func TestEffectiveDue(t *testing.T) {
	seed := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, Task{}.EffectiveDue())
	assert.Equal(t, &seed, Task{TaskDate: &seed}.EffectiveDue())
	assert.Equal(t, &next, Task{TaskDate: &seed, NextDue: &next}.EffectiveDue())
}

func TestValidAssignee(t *testing.T) {
	roster := []string{"Mom", "Dad", "Alex"}
	assert.True(t, ValidAssignee(roster, "alex"))
	assert.True(t, ValidAssignee(roster, "All"))
	assert.True(t, ValidAssignee(roster, "Other"))
	assert.False(t, ValidAssignee(roster, "Stranger"))
}

func TestAllowedSubrealm(t *testing.T) {
	assert.True(t, AllowedSubrealm(RealmHome, ""))
	assert.True(t, AllowedSubrealm(RealmHome, "kitchen"))
	assert.False(t, AllowedSubrealm(RealmHome, "Moon Base"))
	assert.True(t, AllowedSubrealm(RealmAuto, "anything goes"))
}
