package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddingdesk/core/internal/domain/entities"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
	"github.com/weddingdesk/core/internal/ports"
)

type memTaskRepo struct {
	tasks map[uuid.UUID]*entities.Task

	positionWrites int
	lastGroupID    *uuid.UUID
	lastOrders     []entities.TaskOrder
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[uuid.UUID]*entities.Task)}
}

func (r *memTaskRepo) Create(ctx context.Context, task *entities.Task) error {
	r.tasks[task.ID] = task
	return nil
}

func (r *memTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	out := *task
	return &out, nil
}

func (r *memTaskRepo) Update(ctx context.Context, task *entities.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *memTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *memTaskRepo) ListByOrganizer(ctx context.Context, organizerID uuid.UUID, filter ports.TaskFilter) ([]*entities.Task, error) {
	var out []*entities.Task
	for _, task := range r.tasks {
		if task.OrganizerID != organizerID {
			continue
		}
		if filter.GroupID != nil && (task.GroupID == nil || *task.GroupID != *filter.GroupID) {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (r *memTaskRepo) UpdatePositions(ctx context.Context, groupID *uuid.UUID, orders []entities.TaskOrder) error {
	r.positionWrites++
	r.lastGroupID = groupID
	r.lastOrders = orders
	return nil
}

type memGroupRepo struct {
	groups map[uuid.UUID]*entities.TaskGroup
}

func newMemGroupRepo() *memGroupRepo {
	return &memGroupRepo{groups: make(map[uuid.UUID]*entities.TaskGroup)}
}

func (r *memGroupRepo) Create(ctx context.Context, group *entities.TaskGroup) error {
	r.groups[group.ID] = group
	return nil
}

func (r *memGroupRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.TaskGroup, error) {
	group, ok := r.groups[id]
	if !ok {
		return nil, entities.ErrTaskGroupNotFound
	}
	return group, nil
}

func (r *memGroupRepo) Update(ctx context.Context, group *entities.TaskGroup) error {
	r.groups[group.ID] = group
	return nil
}

func (r *memGroupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.groups, id)
	return nil
}

func (r *memGroupRepo) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*entities.TaskGroup, error) {
	var out []*entities.TaskGroup
	for _, g := range r.groups {
		if g.OrganizerID == organizerID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memGroupRepo) UpdatePositions(ctx context.Context, organizerID uuid.UUID, orders []entities.TaskOrder) error {
	return nil
}

func newTaskService() (*TaskService, *memTaskRepo, *memGroupRepo) {
	taskRepo := newMemTaskRepo()
	groupRepo := newMemGroupRepo()
	return NewTaskService(taskRepo, groupRepo, logger.Nop()), taskRepo, groupRepo
}

func TestCreateTaskAppendsAtEndOfBucket(t *testing.T) {
	svc, _, groupRepo := newTaskService()
	ctx := context.Background()
	organizerID := uuid.New()
	group := &entities.TaskGroup{ID: uuid.New(), OrganizerID: organizerID, Name: "Venue"}
	require.NoError(t, groupRepo.Create(ctx, group))

	first, err := svc.CreateTask(ctx, ports.CreateTaskRequest{
		OrganizerID: organizerID,
		GroupID:     &group.ID,
		Title:       "first",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, entities.TaskStatusPending, first.Status)

	second, err := svc.CreateTask(ctx, ports.CreateTaskRequest{
		OrganizerID: organizerID,
		GroupID:     &group.ID,
		Title:       "second",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)
}

func TestCreateTaskRejectsUnknownGroup(t *testing.T) {
	svc, _, _ := newTaskService()
	missing := uuid.New()

	_, err := svc.CreateTask(context.Background(), ports.CreateTaskRequest{
		OrganizerID: uuid.New(),
		GroupID:     &missing,
		Title:       "orphan",
	})
	assert.ErrorIs(t, err, entities.ErrTaskGroupNotFound)
}

func TestUpdateTaskExplicitNullMovesToUnsorted(t *testing.T) {
	svc, taskRepo, groupRepo := newTaskService()
	ctx := context.Background()
	organizerID := uuid.New()
	group := &entities.TaskGroup{ID: uuid.New(), OrganizerID: organizerID, Name: "Venue"}
	require.NoError(t, groupRepo.Create(ctx, group))

	task := &entities.Task{ID: uuid.New(), OrganizerID: organizerID, GroupID: &group.ID, Title: "anchored"}
	require.NoError(t, taskRepo.Create(ctx, task))

	var nilGroup *uuid.UUID
	updated, err := svc.UpdateTask(ctx, task.ID, ports.UpdateTaskRequest{GroupID: &nilGroup})
	require.NoError(t, err)
	assert.Nil(t, updated.GroupID)
}

func TestUpdateTaskAbsentGroupLeavesMembership(t *testing.T) {
	svc, taskRepo, groupRepo := newTaskService()
	ctx := context.Background()
	organizerID := uuid.New()
	group := &entities.TaskGroup{ID: uuid.New(), OrganizerID: organizerID, Name: "Venue"}
	require.NoError(t, groupRepo.Create(ctx, group))

	task := &entities.Task{ID: uuid.New(), OrganizerID: organizerID, GroupID: &group.ID, Title: "anchored"}
	require.NoError(t, taskRepo.Create(ctx, task))

	title := "renamed"
	updated, err := svc.UpdateTask(ctx, task.ID, ports.UpdateTaskRequest{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated.GroupID)
	assert.Equal(t, group.ID, *updated.GroupID)
	assert.Equal(t, "renamed", updated.Title)
}

func TestUpdateTaskRejectsInvalidStatus(t *testing.T) {
	svc, taskRepo, _ := newTaskService()
	ctx := context.Background()
	task := &entities.Task{ID: uuid.New(), OrganizerID: uuid.New(), Title: "t"}
	require.NoError(t, taskRepo.Create(ctx, task))

	bad := entities.TaskStatus("done")
	_, err := svc.UpdateTask(ctx, task.ID, ports.UpdateTaskRequest{Status: &bad})
	assert.ErrorIs(t, err, entities.ErrInvalidStatus)
}

func TestReorderTasksPassesBatchThrough(t *testing.T) {
	svc, taskRepo, _ := newTaskService()
	ctx := context.Background()

	groupID := uuid.New()
	orders := []entities.TaskOrder{{ID: uuid.New(), Order: 0}, {ID: uuid.New(), Order: 1}}
	require.NoError(t, svc.ReorderTasks(ctx, &groupID, orders))

	assert.Equal(t, 1, taskRepo.positionWrites)
	require.NotNil(t, taskRepo.lastGroupID)
	assert.Equal(t, groupID, *taskRepo.lastGroupID)
	assert.Equal(t, orders, taskRepo.lastOrders)
}

func TestReorderTasksEmptyBatchIsNoOp(t *testing.T) {
	svc, taskRepo, _ := newTaskService()
	require.NoError(t, svc.ReorderTasks(context.Background(), nil, nil))
	assert.Zero(t, taskRepo.positionWrites)
}

func TestDeleteTaskUnknownID(t *testing.T) {
	svc, _, _ := newTaskService()
	err := svc.DeleteTask(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}
