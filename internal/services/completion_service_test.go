package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "github.com/homechores/chores-api/internal/errors"
	"github.com/homechores/chores-api/internal/models"
	"github.com/homechores/chores-api/internal/store"
)

type CompletionServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	tasks   *TaskService
	service *CompletionService
	ctx     context.Context
}

func (suite *CompletionServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(store.Migrate(suite.db))

	recordStore := store.NewGormStore(suite.db)
	suite.tasks = NewTaskService(recordStore, testRoster)
	suite.service = NewCompletionService(recordStore)
	suite.ctx = context.Background()
}

func (suite *CompletionServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *CompletionServiceTestSuite) createRecurringTask(freqDays int) *models.Task {
	seed := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	task, err := suite.tasks.Create(suite.ctx, CreateTaskInput{
		Realm:         "Home",
		Type:          "Chore",
		RoomSubrealm:  "Kitchen",
		Description:   "Wipe the counters",
		AssignedTo:    "Sam",
		FrequencyDays: &freqDays,
		TaskDate:      &seed,
	})
	suite.Require().NoError(err)
	return task
}

func (suite *CompletionServiceTestSuite) createOneOffTask() *models.Task {
	due := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	task, err := suite.tasks.Create(suite.ctx, CreateTaskInput{
		Realm:       "Finance",
		Type:        "Task",
		Description: "File the taxes",
		AssignedTo:  "Mom",
		TaskDate:    &due,
	})
	suite.Require().NoError(err)
	return task
}

func (suite *CompletionServiceTestSuite) TestRecordCompletion_RecurringAdvancesNextDue() {
	task := suite.createRecurringTask(7)
	done := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	completion, updated, err := suite.service.RecordCompletion(suite.ctx, task.ID, CompletionInput{
		CompletedBy:   "Sam",
		CompletedDate: done,
	})
	suite.Require().NoError(err)

	suite.Equal(1, completion.ID)
	suite.Equal(task.ID, completion.TaskID)

	suite.Require().NotNil(updated.NextDue)
	suite.Equal(time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC), *updated.NextDue)
	suite.Require().NotNil(updated.LastDone)
	suite.Equal(done, *updated.LastDone)
	suite.Equal("Sam", updated.LastDoneBy)
	suite.True(updated.TaskComplete)

	// The projection is persisted, not just returned.
	reloaded, err := suite.tasks.Get(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(reloaded.LastDone)
	suite.Equal(done, *reloaded.LastDone)
	suite.Require().NotNil(reloaded.NextDue)
	suite.Equal(*updated.NextDue, *reloaded.NextDue)
	suite.True(reloaded.TaskComplete)
}

func (suite *CompletionServiceTestSuite) TestRecordCompletion_OneOffKeepsDueDate() {
	task := suite.createOneOffTask()

	_, updated, err := suite.service.RecordCompletion(suite.ctx, task.ID, CompletionInput{
		CompletedBy:   "Mom",
		CompletedDate: time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)

	suite.Require().NotNil(updated.NextDue)
	suite.Equal(*task.TaskDate, *updated.NextDue, "a one-off never moves its due date")
	suite.True(updated.TaskComplete)
}

func (suite *CompletionServiceTestSuite) TestRecordCompletion_Validation() {
	task := suite.createRecurringTask(7)
	negative := decimal.RequireFromString("-1")

	tests := []struct {
		name  string
		input CompletionInput
		field string
	}{
		{"blank completed_by", CompletionInput{CompletedDate: time.Now()}, store.FieldCompletedBy},
		{"zero date", CompletionInput{CompletedBy: "Sam"}, store.FieldCompletedDate},
		{"negative cost", CompletionInput{CompletedBy: "Sam", CompletedDate: time.Now(), Cost: &negative}, store.FieldCost},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, _, err := suite.service.RecordCompletion(suite.ctx, task.ID, tt.input)
			var validationErr *apperrors.ValidationError
			suite.Require().ErrorAs(err, &validationErr)
			suite.Equal(tt.field, validationErr.Field)
		})
	}

	// Nothing reached the ledger.
	completions, err := suite.service.ListForTask(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Empty(completions)
}

func (suite *CompletionServiceTestSuite) TestRecordCompletion_UnknownTask() {
	_, _, err := suite.service.RecordCompletion(suite.ctx, 404, CompletionInput{
		CompletedBy:   "Dad",
		CompletedDate: time.Now(),
	})

	var refErr *apperrors.ReferenceError
	suite.Require().ErrorAs(err, &refErr)
	suite.Equal(404, refErr.ID)

	records, err := suite.service.store.List(suite.ctx, store.TableCompletions)
	suite.Require().NoError(err)
	suite.Empty(records, "a failed reference check writes nothing")
}

func (suite *CompletionServiceTestSuite) TestRecordCompletion_PersistsCost() {
	task := suite.createRecurringTask(30)
	cost := decimal.RequireFromString("42.50")

	completion, _, err := suite.service.RecordCompletion(suite.ctx, task.ID, CompletionInput{
		CompletedBy:   "Alex",
		CompletedDate: time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC),
		Cost:          &cost,
		Notes:         "new filter included",
	})
	suite.Require().NoError(err)

	completions, err := suite.service.ListForTask(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Require().Len(completions, 1)
	suite.Equal(completion.ID, completions[0].ID)
	suite.Require().NotNil(completions[0].Cost)
	suite.True(cost.Equal(*completions[0].Cost))
	suite.Equal("new filter included", completions[0].Notes)
}

func (suite *CompletionServiceTestSuite) TestListForTask_FiltersByTask() {
	first := suite.createRecurringTask(7)
	second := suite.createRecurringTask(14)

	for i := 0; i < 2; i++ {
		_, _, err := suite.service.RecordCompletion(suite.ctx, first.ID, CompletionInput{
			CompletedBy:   "Sam",
			CompletedDate: time.Date(2025, time.May, 1+i, 0, 0, 0, 0, time.UTC),
		})
		suite.Require().NoError(err)
	}
	_, _, err := suite.service.RecordCompletion(suite.ctx, second.ID, CompletionInput{
		CompletedBy:   "Dad",
		CompletedDate: time.Date(2025, time.May, 3, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)

	completions, err := suite.service.ListForTask(suite.ctx, first.ID)
	suite.Require().NoError(err)
	suite.Require().Len(completions, 2)
	for _, c := range completions {
		suite.Equal(first.ID, c.TaskID)
	}

	_, err = suite.service.ListForTask(suite.ctx, 999)
	var refErr *apperrors.ReferenceError
	suite.ErrorAs(err, &refErr)
}

func TestCompletionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CompletionServiceTestSuite))
}

// failingPatchStore lets the ledger append succeed while the projection patch
// fails, the partial-write case RecordCompletion has to surface.
type failingPatchStore struct {
	store.RecordStore
	patchErr error
}

func (f *failingPatchStore) Patch(ctx context.Context, table string, id int, fields store.Record) error {
	return f.patchErr
}

func TestRecordCompletion_PatchFailureReportsInconsistency(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Migrate(db); err != nil {
		t.Fatal(err)
	}

	base := store.NewGormStore(db)
	tasks := NewTaskService(base, testRoster)
	seed := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	freq := 7
	task, err := tasks.Create(context.Background(), CreateTaskInput{
		Realm:         "Home",
		Type:          "Chore",
		Description:   "Take out recycling",
		AssignedTo:    "Alex",
		FrequencyDays: &freq,
		TaskDate:      &seed,
	})
	if err != nil {
		t.Fatal(err)
	}

	broken := &failingPatchStore{RecordStore: base, patchErr: gorm.ErrInvalidDB}
	service := NewCompletionService(broken)

	completion, updated, err := service.RecordCompletion(context.Background(), task.ID, CompletionInput{
		CompletedBy:   "Alex",
		CompletedDate: seed,
	})

	var inconsistency *apperrors.InconsistencyError
	if !errors.As(err, &inconsistency) {
		t.Fatalf("want InconsistencyError, got %v", err)
	}
	if inconsistency.TaskID != task.ID {
		t.Errorf("TaskID = %d, want %d", inconsistency.TaskID, task.ID)
	}
	if completion == nil || completion.ID != inconsistency.CompletionID {
		t.Errorf("ledger entry should come back with the error for recovery")
	}
	if updated != nil {
		t.Errorf("no projected task on a failed patch")
	}

	// The ledger row itself was written; only the projection is stale.
	records, listErr := base.List(context.Background(), store.TableCompletions)
	if listErr != nil {
		t.Fatal(listErr)
	}
	if len(records) != 1 {
		t.Fatalf("want 1 ledger row, got %d", len(records))
	}
}
