package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/weddingdesk/core/internal/application/services"
	"github.com/weddingdesk/core/internal/domain/entities"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
	"github.com/weddingdesk/core/internal/ports"
)

// TaskHandler handles task requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{taskService: taskService, logger: logger}
}

// ListTasks returns the organizer's tasks
func (h *TaskHandler) ListTasks(c echo.Context) error {
	filter := ports.TaskFilter{}
	if raw := c.QueryParam("group_id"); raw != "" {
		groupID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid group identifier")
		}
		filter.GroupID = &groupID
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := entities.TaskStatus(raw)
		if !status.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
		}
		filter.Status = &status
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), organizerID(c), filter)
	if err != nil {
		h.logger.Errorw("list tasks failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list tasks")
	}
	return c.JSON(http.StatusOK, tasks)
}

// CreateTask creates a task
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.OrganizerID = organizerID(c)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrTaskGroupNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task group not found")
		}
		h.logger.Errorw("create task failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create task")
	}
	return c.JSON(http.StatusCreated, task)
}

// GetTask returns one task
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}
	return c.JSON(http.StatusOK, task)
}

// updateTaskBody exists to tell an explicit null group reference (move
// to the unsorted bucket) apart from an absent field (no change).
type updateTaskBody struct {
	GroupID      json.RawMessage      `json:"task_group_id"`
	Title        *string              `json:"title"`
	Translations map[string]string    `json:"translations"`
	Status       *entities.TaskStatus `json:"status"`
	Priority     *entities.Priority   `json:"priority"`
	AssigneeID   *uuid.UUID           `json:"assignee_id"`
}

// UpdateTask applies a partial update
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var body updateTaskBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	req := ports.UpdateTaskRequest{
		Title:        body.Title,
		Translations: body.Translations,
		Status:       body.Status,
		Priority:     body.Priority,
		AssigneeID:   body.AssigneeID,
	}
	if len(body.GroupID) > 0 {
		if bytes.Equal(body.GroupID, []byte("null")) {
			var nilRef *uuid.UUID
			req.GroupID = &nilRef
		} else {
			var groupID uuid.UUID
			if err := json.Unmarshal(body.GroupID, &groupID); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid group identifier")
			}
			ref := &groupID
			req.GroupID = &ref
		}
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrTaskNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		case errors.Is(err, entities.ErrTaskGroupNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Task group not found")
		case errors.Is(err, entities.ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
		}
		h.logger.Errorw("update task failed", "error", err, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update task")
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		h.logger.Errorw("delete task failed", "error", err, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete task")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted"})
}

// ReorderTasks persists the full order of one bucket in a single batch
func (h *TaskHandler) ReorderTasks(c echo.Context) error {
	var req ports.ReorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.taskService.ReorderTasks(c.Request().Context(), req.ContainerID, req.Orders); err != nil {
		h.logger.Errorw("reorder tasks failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to reorder tasks")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Order saved"})
}
