package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weddingdesk/core/internal/application/services"
	"github.com/weddingdesk/core/internal/domain/entities"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
	"github.com/weddingdesk/core/internal/ports"
)

// TaskGroupHandler handles task group requests
type TaskGroupHandler struct {
	groupService *services.TaskGroupService
	logger       *logger.Logger
}

// NewTaskGroupHandler creates a new task group handler
func NewTaskGroupHandler(groupService *services.TaskGroupService, logger *logger.Logger) *TaskGroupHandler {
	return &TaskGroupHandler{groupService: groupService, logger: logger}
}

// ListGroups returns the organizer's groups in board order
func (h *TaskGroupHandler) ListGroups(c echo.Context) error {
	groups, err := h.groupService.ListGroups(c.Request().Context(), organizerID(c))
	if err != nil {
		h.logger.Errorw("list groups failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list task groups")
	}
	return c.JSON(http.StatusOK, groups)
}

// CreateGroup creates a task group
func (h *TaskGroupHandler) CreateGroup(c echo.Context) error {
	var req ports.CreateTaskGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.OrganizerID = organizerID(c)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	group, err := h.groupService.CreateGroup(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidColor) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid color value")
		}
		h.logger.Errorw("create group failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create task group")
	}
	return c.JSON(http.StatusCreated, group)
}

// UpdateGroup renames or recolors a group
func (h *TaskGroupHandler) UpdateGroup(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req ports.UpdateTaskGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	group, err := h.groupService.UpdateGroup(c.Request().Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrTaskGroupNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Task group not found")
		case errors.Is(err, entities.ErrInvalidColor):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid color value")
		}
		h.logger.Errorw("update group failed", "error", err, "group_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update task group")
	}
	return c.JSON(http.StatusOK, group)
}

// DeleteGroup removes a group and, by cascade, its tasks
func (h *TaskGroupHandler) DeleteGroup(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.groupService.DeleteGroup(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrTaskGroupNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task group not found")
		}
		h.logger.Errorw("delete group failed", "error", err, "group_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete task group")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Task group deleted"})
}

// ReorderGroups persists the full column order in a single batch
func (h *TaskGroupHandler) ReorderGroups(c echo.Context) error {
	var req ports.ReorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.groupService.ReorderGroups(c.Request().Context(), organizerID(c), req.Orders); err != nil {
		h.logger.Errorw("reorder groups failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to reorder task groups")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Order saved"})
}
