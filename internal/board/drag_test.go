package board

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddingdesk/core/internal/domain/entities"
)

func TestTaskDragReordersWithinColumn(t *testing.T) {
	organizerID := uuid.New()
	base := time.Now()
	a := newTask(organizerID, nil, "A", 0, base)
	b := newTask(organizerID, nil, "B", 1, base.Add(time.Minute))
	c := newTask(organizerID, nil, "C", 2, base.Add(2*time.Minute))
	svc := &fakeService{tasks: []*entities.Task{a, b, c}}
	store, engine := newBoard(t, svc, organizerID)
	drag := NewTaskDragController(engine)

	require.True(t, drag.Start(c.ID))
	drag.HoverTask(a.ID)
	require.NoError(t, drag.Drop(context.Background()))

	col, _ := store.FindColumn(nil)
	assert.Equal(t, []string{"C", "A", "B"}, cardTitles(col))
	assert.Equal(t, PhaseIdle, drag.Phase())
}

func TestTaskDragMovesAcrossColumns(t *testing.T) {
	organizerID := uuid.New()
	group := &entities.TaskGroup{ID: uuid.New(), OrganizerID: organizerID, Name: "Catering"}
	task := newTask(organizerID, nil, "Pick a menu", 0, time.Now())
	svc := &fakeService{groups: []*entities.TaskGroup{group}, tasks: []*entities.Task{task}}
	store, engine := newBoard(t, svc, organizerID)
	drag := NewTaskDragController(engine)

	require.True(t, drag.Start(task.ID))
	drag.HoverColumn(&group.ID)
	require.NoError(t, drag.Drop(context.Background()))

	dest, _ := store.FindColumn(&group.ID)
	require.Len(t, dest.Cards, 1)
	assert.Equal(t, task.ID, dest.Cards[0].ID)
}

func TestTaskDragOverForeignCardMovesToItsColumn(t *testing.T) {
	organizerID := uuid.New()
	group := &entities.TaskGroup{ID: uuid.New(), OrganizerID: organizerID, Name: "Catering"}
	loose := newTask(organizerID, nil, "loose", 0, time.Now())
	anchored := newTask(organizerID, &group.ID, "anchored", 0, time.Now())
	svc := &fakeService{groups: []*entities.TaskGroup{group}, tasks: []*entities.Task{loose, anchored}}
	store, engine := newBoard(t, svc, organizerID)
	drag := NewTaskDragController(engine)

	require.True(t, drag.Start(loose.ID))
	drag.HoverTask(anchored.ID)
	require.NoError(t, drag.Drop(context.Background()))

	dest, _ := store.FindColumn(&group.ID)
	assert.Len(t, dest.Cards, 2)
}

func TestTaskDragDropOnOwnColumnIsNoOp(t *testing.T) {
	organizerID := uuid.New()
	task := newTask(organizerID, nil, "A", 0, time.Now())
	svc := &fakeService{tasks: []*entities.Task{task}}
	_, engine := newBoard(t, svc, organizerID)
	drag := NewTaskDragController(engine)

	require.True(t, drag.Start(task.ID))
	drag.HoverColumn(nil)
	require.NoError(t, drag.Drop(context.Background()))

	assert.Zero(t, svc.updateTaskCalls)
}

func TestTaskDragStaleCardDropsSilently(t *testing.T) {
	organizerID := uuid.New()
	a := newTask(organizerID, nil, "A", 0, time.Now())
	b := newTask(organizerID, nil, "B", 1, time.Now().Add(time.Minute))
	svc := &fakeService{tasks: []*entities.Task{a, b}}
	store, engine := newBoard(t, svc, organizerID)
	drag := NewTaskDragController(engine)

	require.True(t, drag.Start(a.ID))
	drag.HoverTask(b.ID)

	// The dragged card disappears mid-drag.
	store.Mutate(func(cols []Column) []Column {
		cols, _ = removeCard(cols, a.ID)
		return cols
	})

	require.NoError(t, drag.Drop(context.Background()))
	assert.Zero(t, svc.updateTaskCalls)
	assert.Nil(t, svc.lastOrders)
}

func TestTaskDragCannotStartTwice(t *testing.T) {
	organizerID := uuid.New()
	a := newTask(organizerID, nil, "A", 0, time.Now())
	b := newTask(organizerID, nil, "B", 1, time.Now())
	svc := &fakeService{tasks: []*entities.Task{a, b}}
	_, engine := newBoard(t, svc, organizerID)
	drag := NewTaskDragController(engine)

	require.True(t, drag.Start(a.ID))
	assert.False(t, drag.Start(b.ID))

	drag.Cancel()
	assert.True(t, drag.Start(b.ID))
}

func TestTaskDragDropWithoutHoverIsNoOp(t *testing.T) {
	organizerID := uuid.New()
	task := newTask(organizerID, nil, "A", 0, time.Now())
	svc := &fakeService{tasks: []*entities.Task{task}}
	_, engine := newBoard(t, svc, organizerID)
	drag := NewTaskDragController(engine)

	require.True(t, drag.Start(task.ID))
	require.NoError(t, drag.Drop(context.Background()))

	assert.Zero(t, svc.updateTaskCalls)
	assert.Equal(t, PhaseIdle, drag.Phase())
}

func TestGroupDragRefusesInteractiveOrigins(t *testing.T) {
	organizerID := uuid.New()
	group := &entities.TaskGroup{ID: uuid.New(), OrganizerID: organizerID, Name: "Venue"}
	svc := &fakeService{groups: []*entities.TaskGroup{group}}
	_, engine := newBoard(t, svc, organizerID)
	drag := NewGroupDragController(engine)

	for _, origin := range []OriginKind{OriginButton, OriginInput, OriginTextarea} {
		assert.False(t, drag.Start(group.ID, origin), "origin %s must not start a drag", origin)
	}
	assert.True(t, drag.Start(group.ID, OriginHeader))
}

func TestGroupDragRefusesUnknownColumn(t *testing.T) {
	organizerID := uuid.New()
	svc := &fakeService{}
	_, engine := newBoard(t, svc, organizerID)
	drag := NewGroupDragController(engine)

	assert.False(t, drag.Start(uuid.New(), OriginHeader))
}

func TestGroupDragReordersColumns(t *testing.T) {
	organizerID := uuid.New()
	groups := []*entities.TaskGroup{
		{ID: uuid.New(), OrganizerID: organizerID, Name: "One", Position: 0},
		{ID: uuid.New(), OrganizerID: organizerID, Name: "Two", Position: 1},
		{ID: uuid.New(), OrganizerID: organizerID, Name: "Three", Position: 2},
	}
	svc := &fakeService{groups: groups}
	store, engine := newBoard(t, svc, organizerID)
	drag := NewGroupDragController(engine)

	require.True(t, drag.Start(groups[0].ID, OriginHeader))
	drag.HoverGroup(groups[2].ID)
	require.NoError(t, drag.Drop(context.Background()))

	columns := store.Columns()
	assert.Equal(t, "Two", columns[0].Group.Name)
	assert.Equal(t, "Three", columns[1].Group.Name)
	assert.Equal(t, "One", columns[2].Group.Name)
	assert.True(t, columns[3].Unsorted)
}

func TestGroupDragDropOnSelfIsNoOp(t *testing.T) {
	organizerID := uuid.New()
	group := &entities.TaskGroup{ID: uuid.New(), OrganizerID: organizerID, Name: "Venue"}
	svc := &fakeService{groups: []*entities.TaskGroup{group}}
	_, engine := newBoard(t, svc, organizerID)
	drag := NewGroupDragController(engine)

	require.True(t, drag.Start(group.ID, OriginCard))
	drag.HoverGroup(group.ID)
	require.NoError(t, drag.Drop(context.Background()))

	assert.Nil(t, svc.lastOrders)
}
