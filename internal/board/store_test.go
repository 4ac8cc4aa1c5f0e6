package board

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddingdesk/core/internal/domain/entities"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
)

func TestBuildColumnsPartitionsByGroup(t *testing.T) {
	organizerID := uuid.New()
	g1 := &entities.TaskGroup{ID: uuid.New(), Name: "Second", Position: 1}
	g2 := &entities.TaskGroup{ID: uuid.New(), Name: "First", Position: 0}
	base := time.Now()
	tasks := []*entities.Task{
		newTask(organizerID, &g1.ID, "in second", 0, base),
		newTask(organizerID, nil, "loose", 0, base),
		newTask(organizerID, &g2.ID, "in first", 0, base),
	}

	columns := buildColumns([]*entities.TaskGroup{g1, g2}, tasks)

	require.Len(t, columns, 3)
	assert.Equal(t, "First", columns[0].Group.Name)
	assert.Equal(t, "Second", columns[1].Group.Name)
	assert.True(t, columns[2].Unsorted)
	assert.Equal(t, []string{"in first"}, cardTitles(columns[0]))
	assert.Equal(t, []string{"in second"}, cardTitles(columns[1]))
	assert.Equal(t, []string{"loose"}, cardTitles(columns[2]))
}

func TestBuildColumnsOrdersByPositionThenCreation(t *testing.T) {
	organizerID := uuid.New()
	base := time.Now()
	tasks := []*entities.Task{
		newTask(organizerID, nil, "late tie", 1, base.Add(time.Hour)),
		newTask(organizerID, nil, "early tie", 1, base),
		newTask(organizerID, nil, "first", 0, base.Add(2*time.Hour)),
	}

	columns := buildColumns(nil, tasks)

	require.Len(t, columns, 1)
	assert.Equal(t, []string{"first", "early tie", "late tie"}, cardTitles(columns[0]))
}

func TestLoadSkipsCachedCopyUnlessForced(t *testing.T) {
	organizerID := uuid.New()
	svc := &fakeService{tasks: []*entities.Task{newTask(organizerID, nil, "A", 0, time.Now())}}
	store := NewStore(svc, logger.Nop())

	require.NoError(t, store.Load(context.Background(), organizerID, LoadOptions{}))
	gen := store.Generation()

	require.NoError(t, store.Load(context.Background(), organizerID, LoadOptions{}))
	assert.Equal(t, gen, store.Generation())

	require.NoError(t, store.Load(context.Background(), organizerID, LoadOptions{ForceRefetch: true}))
	assert.Equal(t, gen+1, store.Generation())
}

func TestLoadEmitsSpinnerEvents(t *testing.T) {
	organizerID := uuid.New()
	svc := &fakeService{}
	store := NewStore(svc, logger.Nop())

	var kinds []EventKind
	unsubscribe := store.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })
	defer unsubscribe()

	require.NoError(t, store.Load(context.Background(), organizerID, LoadOptions{ShowSpinner: true}))
	assert.Equal(t, []EventKind{EventLoading, EventLoaded}, kinds)
}

func TestPartitionKeepsSessionCompletionsActive(t *testing.T) {
	organizerID := uuid.New()
	base := time.Now()
	done := newTask(organizerID, nil, "already done", 0, base)
	done.Status = entities.TaskStatusCompleted
	open := newTask(organizerID, nil, "still open", 1, base)
	svc := &fakeService{tasks: []*entities.Task{done, open}}
	store, engine := newBoard(t, svc, organizerID)

	col, ok := store.FindColumn(nil)
	require.True(t, ok)
	active, completed := store.Partition(col)
	assert.Equal(t, []string{"still open"}, cardTitles(Column{Cards: active}))
	assert.Equal(t, []string{"already done"}, cardTitles(Column{Cards: completed}))

	// Completing a task mid-session must not demote it into the
	// collapsed section; the partition set is fixed at first load.
	require.NoError(t, engine.ToggleComplete(context.Background(), open.ID))
	col, _ = store.FindColumn(nil)
	active, completed = store.Partition(col)
	assert.Equal(t, []string{"still open"}, cardTitles(Column{Cards: active}))
	assert.Equal(t, []string{"already done"}, cardTitles(Column{Cards: completed}))

	// Reloading within the same session does not recompute the set
	// either.
	require.NoError(t, store.Load(context.Background(), organizerID, LoadOptions{ForceRefetch: true}))
	col, _ = store.FindColumn(nil)
	active, completed = store.Partition(col)
	assert.Equal(t, []string{"still open"}, cardTitles(Column{Cards: active}))
	assert.Equal(t, []string{"already done"}, cardTitles(Column{Cards: completed}))
}

func TestPartitionReopenedTaskLeavesCompletedSection(t *testing.T) {
	organizerID := uuid.New()
	done := newTask(organizerID, nil, "already done", 0, time.Now())
	done.Status = entities.TaskStatusCompleted
	svc := &fakeService{tasks: []*entities.Task{done}}
	store, engine := newBoard(t, svc, organizerID)

	require.NoError(t, engine.ToggleComplete(context.Background(), done.ID))

	col, _ := store.FindColumn(nil)
	active, completed := store.Partition(col)
	assert.Len(t, active, 1)
	assert.Empty(t, completed)
}

func TestColumnsReturnsSnapshot(t *testing.T) {
	organizerID := uuid.New()
	task := newTask(organizerID, nil, "A", 0, time.Now())
	group := &entities.TaskGroup{ID: uuid.New(), OrganizerID: organizerID, Name: "One", Position: 0}
	svc := &fakeService{groups: []*entities.TaskGroup{group}, tasks: []*entities.Task{task}}
	store, _ := newBoard(t, svc, organizerID)

	snapshot := store.Columns()
	snapshot[1].Cards[0].Title = "mutated"
	snapshot[0].Group.Position = 99

	col, _ := store.FindColumn(nil)
	assert.Equal(t, "A", col.Cards[0].Title)
	groupCol, _ := store.FindColumn(&group.ID)
	assert.Equal(t, 0, groupCol.Group.Position)
}

func TestSubscribeUnsubscribeStopsDelivery(t *testing.T) {
	store := NewStore(&fakeService{}, logger.Nop())
	calls := 0
	unsubscribe := store.Subscribe(func(Event) { calls++ })

	store.Mutate(func(cols []Column) []Column { return cols })
	unsubscribe()
	store.Mutate(func(cols []Column) []Column { return cols })

	assert.Equal(t, 1, calls)
}
