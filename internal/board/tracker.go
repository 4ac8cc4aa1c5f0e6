package board

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// FieldTracker records which fields of an entity were edited since its
// last save, along with the entity's pre-edit form. A save is issued only
// when the changed set is non-empty, so blurring an input without typing
// never produces a remote call.
type FieldTracker struct {
	mu      sync.Mutex
	changed map[uuid.UUID]map[string]struct{}
	before  map[uuid.UUID]Card
}

// NewFieldTracker creates an empty tracker.
func NewFieldTracker() *FieldTracker {
	return &FieldTracker{
		changed: make(map[uuid.UUID]map[string]struct{}),
		before:  make(map[uuid.UUID]Card),
	}
}

// Mark records a field edit. The card snapshot is kept only for the
// first edit per entity; that is the state a failed save reverts to.
func (f *FieldTracker) Mark(id uuid.UUID, field string, current Card) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.changed[id]; !ok {
		f.changed[id] = make(map[string]struct{})
		f.before[id] = current
	}
	f.changed[id][field] = struct{}{}
}

// HasChanges reports whether any field of the entity is dirty.
func (f *FieldTracker) HasChanges(id uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.changed[id]) > 0
}

// Take removes and returns the changed-field set and the pre-edit
// snapshot for the entity. ok is false when nothing was recorded.
func (f *FieldTracker) Take(id uuid.UUID) (fields []string, original Card, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	set, ok := f.changed[id]
	if !ok {
		return nil, Card{}, false
	}
	original = f.before[id]
	for field := range set {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	delete(f.changed, id)
	delete(f.before, id)
	return fields, original, true
}
