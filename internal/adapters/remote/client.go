package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/weddingdesk/core/internal/domain/entities"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
	"github.com/weddingdesk/core/internal/ports"
)

// Client implements ports.BoardDataService against the HTTP API. The
// standard net/http client is sufficient here; every call is a single
// JSON round trip with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *logger.Logger
}

// New creates an API client for the given base URL and access token.
func New(baseURL, token string, appLogger *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  appLogger.WithComponent("remote"),
	}
}

// apiError is the error envelope echo produces for HTTPError responses.
type apiError struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope apiError
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		c.logger.Debugw("request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return c.mapStatus(resp.StatusCode, envelope.Message)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) mapStatus(status int, message string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return entities.ErrUnauthorized
	case http.StatusNotFound:
		return entities.ErrTaskNotFound
	default:
		if message == "" {
			message = http.StatusText(status)
		}
		return fmt.Errorf("server returned %d: %s", status, message)
	}
}

// ListWeddings fetches the organizer's weddings. Not part of the board
// contract; the dashboard needs it to restore open tabs.
func (c *Client) ListWeddings(ctx context.Context) ([]*entities.Wedding, error) {
	var weddings []*entities.Wedding
	if err := c.do(ctx, http.MethodGet, "/api/v1/weddings", nil, &weddings); err != nil {
		return nil, err
	}
	return weddings, nil
}

// GetGroups fetches the organizer's task groups.
func (c *Client) GetGroups(ctx context.Context, _ uuid.UUID) ([]*entities.TaskGroup, error) {
	var groups []*entities.TaskGroup
	if err := c.do(ctx, http.MethodGet, "/api/v1/task-groups", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// GetTasks fetches the organizer's tasks across all groups.
func (c *Client) GetTasks(ctx context.Context, _ uuid.UUID) ([]*entities.Task, error) {
	var tasks []*entities.Task
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task and returns the server entity.
func (c *Client) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	var task entities.Task
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// updateTaskWire mirrors the server's update body. The group reference
// is raw JSON so an explicit null survives encoding.
type updateTaskWire struct {
	GroupID      json.RawMessage      `json:"task_group_id,omitempty"`
	Title        *string              `json:"title,omitempty"`
	Translations map[string]string    `json:"translations,omitempty"`
	Status       *entities.TaskStatus `json:"status,omitempty"`
	Priority     *entities.Priority   `json:"priority,omitempty"`
	AssigneeID   *uuid.UUID           `json:"assignee_id,omitempty"`
}

// UpdateTask applies a partial update and returns the server entity.
func (c *Client) UpdateTask(ctx context.Context, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	wire := updateTaskWire{
		Title:        req.Title,
		Translations: req.Translations,
		Status:       req.Status,
		Priority:     req.Priority,
		AssigneeID:   req.AssigneeID,
	}
	if req.GroupID != nil {
		if *req.GroupID == nil {
			wire.GroupID = json.RawMessage("null")
		} else {
			raw, err := json.Marshal((*req.GroupID).String())
			if err != nil {
				return nil, fmt.Errorf("encode group reference: %w", err)
			}
			wire.GroupID = raw
		}
	}

	var task entities.Task
	if err := c.do(ctx, http.MethodPut, "/api/v1/tasks/"+id.String(), wire, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/tasks/"+id.String(), nil, nil)
}

// CreateGroup creates a task group and returns the server entity.
func (c *Client) CreateGroup(ctx context.Context, req ports.CreateTaskGroupRequest) (*entities.TaskGroup, error) {
	var group entities.TaskGroup
	if err := c.do(ctx, http.MethodPost, "/api/v1/task-groups", req, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// UpdateGroup renames or recolors a task group.
func (c *Client) UpdateGroup(ctx context.Context, id uuid.UUID, req ports.UpdateTaskGroupRequest) (*entities.TaskGroup, error) {
	var group entities.TaskGroup
	if err := c.do(ctx, http.MethodPut, "/api/v1/task-groups/"+id.String(), req, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// DeleteGroup deletes a task group; the server cascades to its tasks.
func (c *Client) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/task-groups/"+id.String(), nil, nil)
}

// UpdateTasksOrder persists the position of every task in one bucket.
func (c *Client) UpdateTasksOrder(ctx context.Context, containerID *uuid.UUID, orders []entities.TaskOrder) error {
	req := ports.ReorderRequest{ContainerID: containerID, Orders: orders}
	return c.do(ctx, http.MethodPut, "/api/v1/tasks/reorder", req, nil)
}

// UpdateGroupsOrder persists the column ordering.
func (c *Client) UpdateGroupsOrder(ctx context.Context, _ uuid.UUID, orders []entities.TaskOrder) error {
	req := ports.ReorderRequest{Orders: orders}
	return c.do(ctx, http.MethodPut, "/api/v1/task-groups/reorder", req, nil)
}
