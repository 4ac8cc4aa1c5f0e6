package viewstate

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddingdesk/core/internal/domain/entities"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "view_state.json"))
	require.NoError(t, err)
	return NewManager(store, logger.Nop(), uuid.New())
}

func wedding(name string) *entities.Wedding {
	return &entities.Wedding{ID: uuid.New(), Name: name}
}

func TestRestoreDefaultsWhenNothingPersisted(t *testing.T) {
	m := newTestManager(t)

	out, err := m.Restore(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultView, out.View)
	assert.Empty(t, out.Tabs)
	assert.Nil(t, out.ActiveTab)
}

func TestRestorePrefersLastActiveTab(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	w1, w2 := wedding("Smith"), wedding("Jones")

	tabs := []OpenTab{
		{ID: "tab-1", WeddingID: w1.ID, Name: w1.Name},
		{ID: "tab-2", WeddingID: w2.ID, Name: w2.Name},
	}
	require.NoError(t, m.SaveTabs(ctx, tabs))
	require.NoError(t, m.SetActiveTab(ctx, w2.ID))
	require.NoError(t, m.SetViewMode(ctx, ViewPayments))

	out, err := m.Restore(ctx, []*entities.Wedding{w1, w2})
	require.NoError(t, err)
	require.NotNil(t, out.ActiveTab)
	assert.Equal(t, w2.ID, out.ActiveTab.WeddingID)
	assert.Equal(t, ViewWeddings, out.View)
	assert.Len(t, out.Tabs, 2)
}

func TestRestoreFallsBackToFirstSurvivingTab(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	w1, w2 := wedding("Smith"), wedding("Jones")

	require.NoError(t, m.SaveTabs(ctx, []OpenTab{
		{ID: "tab-1", WeddingID: w1.ID, Name: w1.Name},
		{ID: "tab-2", WeddingID: w2.ID, Name: w2.Name},
	}))
	// The last-active wedding was deleted since.
	require.NoError(t, m.SetActiveTab(ctx, w1.ID))

	out, err := m.Restore(ctx, []*entities.Wedding{w2})
	require.NoError(t, err)
	require.NotNil(t, out.ActiveTab)
	assert.Equal(t, w2.ID, out.ActiveTab.WeddingID)
}

func TestRestorePrunesDeadTabsAndWritesBack(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	alive, dead := wedding("Alive"), wedding("Dead")

	require.NoError(t, m.SaveTabs(ctx, []OpenTab{
		{ID: "tab-1", WeddingID: dead.ID, Name: dead.Name},
		{ID: "tab-2", WeddingID: alive.ID, Name: alive.Name},
	}))

	out, err := m.Restore(ctx, []*entities.Wedding{alive})
	require.NoError(t, err)
	require.Len(t, out.Tabs, 1)
	assert.Equal(t, alive.ID, out.Tabs[0].WeddingID)

	// The pruned list is what a later restore reads back.
	persisted, err := m.Tabs(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, alive.ID, persisted[0].WeddingID)
}

func TestRestoreFallsBackToPersistedViewMode(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetViewMode(ctx, ViewPayments))

	out, err := m.Restore(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, ViewPayments, out.View)
	assert.Nil(t, out.ActiveTab)
}

func TestRestoreIgnoresInvalidPersistedViewMode(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "view_state.json"))
	require.NoError(t, err)
	organizerID := uuid.New()
	m := NewManager(store, logger.Nop(), organizerID)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "organizer:"+organizerID.String()+":view_mode", "garbage"))

	out, err := m.Restore(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultView, out.View)
}

func TestSetViewModeRejectsUnknownMode(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	err := m.SetViewMode(ctx, ViewMode("bogus"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid view mode")

	out, err := m.Restore(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultView, out.View)
}

func TestTabsDiscardsUnreadableState(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "view_state.json"))
	require.NoError(t, err)
	organizerID := uuid.New()
	m := NewManager(store, logger.Nop(), organizerID)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "organizer:"+organizerID.String()+":open_tabs", "{not json"))

	tabs, err := m.Tabs(ctx)
	require.NoError(t, err)
	assert.Nil(t, tabs)
}

func TestManagersAreScopedPerOrganizer(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "view_state.json"))
	require.NoError(t, err)
	ctx := context.Background()

	m1 := NewManager(store, logger.Nop(), uuid.New())
	m2 := NewManager(store, logger.Nop(), uuid.New())

	require.NoError(t, m1.SetViewMode(ctx, ViewTasks))

	out, err := m2.Restore(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultView, out.View)
}
