package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homechores/chores-api/internal/dto"
	apperrors "github.com/homechores/chores-api/internal/errors"
	"github.com/homechores/chores-api/internal/middleware"
	"github.com/homechores/chores-api/internal/models"
	"github.com/homechores/chores-api/internal/query"
	"github.com/homechores/chores-api/internal/services"
	"github.com/homechores/chores-api/internal/utils"
)

type TaskHandler struct {
	tasks  *services.TaskService
	ledger *services.CompletionService
}

func NewTaskHandler(tasks *services.TaskService, ledger *services.CompletionService) *TaskHandler {
	return &TaskHandler{
		tasks:  tasks,
		ledger: ledger,
	}
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateTaskInput{
		Realm:         req.Realm,
		Type:          req.Type,
		RoomSubrealm:  req.RoomSubrealm,
		Description:   req.Description,
		AssignedTo:    req.AssignedTo,
		FrequencyDays: req.FrequencyDays,
		Budget:        req.Budget,
		BudgetYear:    req.BudgetYear,
		Priority:      req.Priority,
		Notes:         req.Notes,
	}

	if req.TaskDate != "" {
		taskDate, err := models.ParseDate(req.TaskDate)
		if err != nil {
			apperrors.BadRequest(c, "task_date must be MM/DD/YYYY")
			return
		}
		input.TaskDate = &taskDate
	}

	task, err := h.tasks.Create(c.Request.Context(), input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task, time.Now().Year()))
}

// ListTasks returns the filtered, ordered, paginated task list
func (h *TaskHandler) ListTasks(c *gin.Context) {
	filters, sortBy, ok := parseQuery(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), filters, sortBy)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	params := utils.GetPaginationParams(c)
	start, end := utils.Bounds(len(tasks), params)

	c.JSON(http.StatusOK, dto.ToTaskListResponse(
		tasks[start:end],
		time.Now().Year(),
		utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int64(len(tasks)),
		},
	))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task, time.Now().Year()))
}

// CompleteTask appends a ledger entry and returns it with the updated task
// projection. The completing member defaults to the session's active member
// and the date to today.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	// An empty body is fine: everything defaults.
	var req dto.CompleteTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.BadRequest(c, "Invalid request body")
			return
		}
	}

	completedBy := strings.TrimSpace(req.CompletedBy)
	if completedBy == "" {
		if member, exists := middleware.GetMember(c); exists {
			completedBy = member
		}
	}

	input := services.CompletionInput{
		CompletedBy: completedBy,
		Cost:        req.Cost,
		Notes:       req.Notes,
	}

	if req.CompletedDate != "" {
		date, err := models.ParseDate(req.CompletedDate)
		if err != nil {
			apperrors.BadRequest(c, "completed_date must be MM/DD/YYYY")
			return
		}
		input.CompletedDate = date
	} else {
		now := time.Now()
		input.CompletedDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	completion, task, err := h.ledger.RecordCompletion(c.Request.Context(), id, input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CompleteTaskResponse{
		Completion: dto.ToCompletionDTO(*completion),
		Task:       dto.ToTaskDTO(*task, time.Now().Year()),
	})
}

// ListCompletions returns the ledger entries for one task
func (h *TaskHandler) ListCompletions(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	completions, err := h.ledger.ListForTask(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"completions": dto.ToCompletionDTOs(completions),
	})
}

func parseTaskID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		apperrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return id, true
}

func parseQuery(c *gin.Context) (query.Filters, query.SortBy, bool) {
	var filters query.Filters

	if assigned := c.Query("assigned_to"); assigned != "" {
		for _, name := range strings.Split(assigned, ",") {
			if name = strings.TrimSpace(name); name != "" {
				filters.AssignedTo = append(filters.AssignedTo, name)
			}
		}
	}

	if priorityStr := c.Query("priority"); priorityStr != "" {
		priority, err := strconv.Atoi(priorityStr)
		if err != nil || priority < 1 || priority > 5 {
			apperrors.BadRequest(c, "priority must be between 1 and 5")
			return filters, "", false
		}
		filters.Priority = &priority
	}

	if realmStr := c.Query("realm"); realmStr != "" {
		realm := models.Realm(realmStr)
		if !realm.Valid() {
			apperrors.BadRequest(c, "unknown realm")
			return filters, "", false
		}
		filters.Realm = &realm
	}

	if typeStr := c.Query("type"); typeStr != "" {
		taskType := models.TaskType(typeStr)
		if !taskType.Valid() {
			apperrors.BadRequest(c, "type must be Chore, Task or Expense")
			return filters, "", false
		}
		filters.Type = &taskType
	}

	if fromStr := c.Query("due_from"); fromStr != "" {
		from, err := models.ParseDate(fromStr)
		if err != nil {
			apperrors.BadRequest(c, "due_from must be MM/DD/YYYY")
			return filters, "", false
		}
		filters.DueFrom = &from
	}

	if toStr := c.Query("due_to"); toStr != "" {
		to, err := models.ParseDate(toStr)
		if err != nil {
			apperrors.BadRequest(c, "due_to must be MM/DD/YYYY")
			return filters, "", false
		}
		filters.DueTo = &to
	}

	if excluded := c.Query("exclude_completed"); excluded == "true" || excluded == "1" {
		filters.ExcludeCompleted = true
	}

	sortBy := query.SortBy(c.DefaultQuery("sort", string(query.SortByDate)))
	if !sortBy.Valid() {
		apperrors.BadRequest(c, "sort must be \"date\" or \"priority\"")
		return filters, "", false
	}

	return filters, sortBy, true
}
