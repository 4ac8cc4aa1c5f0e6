package board

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddingdesk/core/internal/domain/entities"
)

func TestTrackerTakeReturnsSortedFieldsOnce(t *testing.T) {
	tracker := NewFieldTracker()
	id := uuid.New()
	card := Card{Task: entities.Task{ID: id, Title: "original"}}

	tracker.Mark(id, "title", card)
	tracker.Mark(id, "priority", card)
	tracker.Mark(id, "title", card)
	require.True(t, tracker.HasChanges(id))

	fields, original, ok := tracker.Take(id)
	require.True(t, ok)
	assert.Equal(t, []string{"priority", "title"}, fields)
	assert.Equal(t, "original", original.Title)

	// Taking clears the entry.
	assert.False(t, tracker.HasChanges(id))
	_, _, ok = tracker.Take(id)
	assert.False(t, ok)
}

func TestTrackerSnapshotIsFromFirstEdit(t *testing.T) {
	tracker := NewFieldTracker()
	id := uuid.New()

	first := Card{Task: entities.Task{ID: id, Title: "before any edit"}}
	tracker.Mark(id, "title", first)

	// Later marks carry the already-edited card; the snapshot must not
	// advance with them.
	second := Card{Task: entities.Task{ID: id, Title: "after first edit"}}
	tracker.Mark(id, "status", second)

	_, original, ok := tracker.Take(id)
	require.True(t, ok)
	assert.Equal(t, "before any edit", original.Title)
}

func TestTrackerUnknownEntityHasNoChanges(t *testing.T) {
	tracker := NewFieldTracker()
	assert.False(t, tracker.HasChanges(uuid.New()))
	_, _, ok := tracker.Take(uuid.New())
	assert.False(t, ok)
}
