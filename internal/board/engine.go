package board

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/weddingdesk/core/internal/domain/entities"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
	"github.com/weddingdesk/core/internal/ports"
)

// TempIDPrefix marks speculative identifiers so they can never collide
// with server-issued ones.
const TempIDPrefix = "tmp-"

// Confirmer approves or declines a destructive action before any state
// is touched. A nil Confirmer approves everything.
type Confirmer func(action, subject string) bool

// Engine wraps every state-changing board action in the optimistic
// pattern: apply the speculative mutation synchronously, issue the remote
// call, then either swap in the server-confirmed entity or revert. Every
// reconciliation is guarded by the store generation captured before the
// remote call, so patches against a reloaded store are discarded rather
// than applied to stale data.
type Engine struct {
	store   *Store
	svc     ports.BoardDataService
	log     *logger.Logger
	confirm Confirmer

	tracker *FieldTracker

	// reorderMu serializes batched order persists so two rapid drags
	// cannot interleave their writes; the later drag wins.
	reorderMu sync.Mutex
}

// NewEngine creates a mutation engine over the given store and service.
func NewEngine(store *Store, svc ports.BoardDataService, log *logger.Logger, confirm Confirmer) *Engine {
	return &Engine{
		store:   store,
		svc:     svc,
		log:     log,
		confirm: confirm,
		tracker: NewFieldTracker(),
	}
}

// Store returns the engine's backing store.
func (e *Engine) Store() *Store { return e.store }

// Tracker returns the per-entity changed-field tracker.
func (e *Engine) Tracker() *FieldTracker { return e.tracker }

func (e *Engine) fail(action string, id uuid.UUID, err error) {
	if e.log != nil {
		e.log.Warnw("board mutation rolled back", "action", action, "task_id", id, "error", err)
	}
	e.store.emit(Event{
		Kind:    EventMutationFailed,
		Message: fmt.Sprintf("Could not %s; the change was undone.", action),
		TaskID:  id,
	})
}

func (e *Engine) confirmed(action, subject string) bool {
	if e.confirm == nil {
		return true
	}
	return e.confirm(action, subject)
}

// CreateTask appends a speculative card to the destination column, then
// persists it. On success the server entity replaces the speculative one
// in place, matched by temporary identifier; on failure the card is
// removed again.
func (e *Engine) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	tempID := TempIDPrefix + uuid.NewString()
	now := time.Now()
	speculative := Card{
		Task: entities.Task{
			OrganizerID:  req.OrganizerID,
			GroupID:      req.GroupID,
			Title:        req.Title,
			Translations: req.Translations,
			Status:       entities.TaskStatusPending,
			Priority:     req.Priority,
			AssigneeID:   req.AssigneeID,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		TempID: tempID,
		State:  StatePending,
	}

	gen := e.store.Generation()
	e.store.Mutate(func(columns []Column) []Column {
		for i := range columns {
			if sameColumn(&columns[i], req.GroupID) {
				columns[i].Cards = append(columns[i].Cards, speculative)
				break
			}
		}
		return columns
	})

	created, err := e.svc.CreateTask(ctx, req)
	if err != nil {
		e.store.mutateAt(gen, func(columns []Column) []Column {
			return removeByTempID(columns, tempID)
		})
		e.fail("create task", uuid.Nil, err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if !e.store.mutateAt(gen, func(columns []Column) []Column {
		return swapByTempID(columns, tempID, *created)
	}) && e.log != nil {
		e.log.Debugw("discarded stale create reconciliation", "temp_id", tempID, "task_id", created.ID)
	}
	return created, nil
}

// EditTaskField applies a local-only field edit and records the field
// name in the changed set. The card's pre-edit form is captured on the
// first edit and is what a failed save reverts to.
func (e *Engine) EditTaskField(id uuid.UUID, field string, apply func(*entities.Task)) {
	card, ok := e.store.FindCard(id)
	if !ok {
		return
	}
	e.tracker.Mark(id, field, card)
	e.store.Mutate(func(columns []Column) []Column {
		return patchCard(columns, id, apply)
	})
}

// SaveTask persists the accumulated field edits for a task. If no field
// was actually changed since the last save, no remote call is issued.
func (e *Engine) SaveTask(ctx context.Context, id uuid.UUID) error {
	changed, original, ok := e.tracker.Take(id)
	if !ok || len(changed) == 0 {
		return nil
	}
	card, found := e.store.FindCard(id)
	if !found {
		return nil
	}

	req := buildUpdateRequest(changed, &card.Task)
	gen := e.store.Generation()

	updated, err := e.svc.UpdateTask(ctx, id, req)
	if err != nil {
		e.store.mutateAt(gen, func(columns []Column) []Column {
			return patchCard(columns, id, func(t *entities.Task) { *t = original.Task })
		})
		e.fail("save task", id, err)
		return fmt.Errorf("failed to save task: %w", err)
	}

	if !e.store.mutateAt(gen, func(columns []Column) []Column {
		return patchCard(columns, id, func(t *entities.Task) { *t = *updated })
	}) && e.log != nil {
		e.log.Debugw("discarded stale save reconciliation", "task_id", id)
	}
	return nil
}

// ToggleComplete flips a task's completion state locally first, then
// persists it. The status captured before the flip is exactly what a
// failed persist restores; a task that was in progress goes back to in
// progress, not to pending.
func (e *Engine) ToggleComplete(ctx context.Context, id uuid.UUID) error {
	card, ok := e.store.FindCard(id)
	if !ok {
		return nil
	}
	previous := card.Status
	next := entities.TaskStatusCompleted
	if previous == entities.TaskStatusCompleted {
		next = entities.TaskStatusPending
	}

	gen := e.store.Generation()
	e.store.Mutate(func(columns []Column) []Column {
		return patchCard(columns, id, func(t *entities.Task) { t.Status = next })
	})

	status := next
	updated, err := e.svc.UpdateTask(ctx, id, ports.UpdateTaskRequest{Status: &status})
	if err != nil {
		e.store.mutateAt(gen, func(columns []Column) []Column {
			return patchCard(columns, id, func(t *entities.Task) { t.Status = previous })
		})
		e.fail("update task status", id, err)
		return fmt.Errorf("failed to toggle task: %w", err)
	}

	e.store.mutateAt(gen, func(columns []Column) []Column {
		return patchCard(columns, id, func(t *entities.Task) { *t = *updated })
	})
	return nil
}

// DeleteTask removes a task after confirmation. A failed remote delete
// re-inserts the card into its bucket sorted by creation timestamp.
func (e *Engine) DeleteTask(ctx context.Context, id uuid.UUID) error {
	card, ok := e.store.FindCard(id)
	if !ok {
		return nil
	}
	if !e.confirmed("delete task", card.DisplayTitle("")) {
		return nil
	}

	groupID := card.GroupID
	gen := e.store.Generation()
	e.store.Mutate(func(columns []Column) []Column {
		columns, _ = removeCard(columns, id)
		return columns
	})

	if err := e.svc.DeleteTask(ctx, id); err != nil {
		e.store.mutateAt(gen, func(columns []Column) []Column {
			return insertByCreation(columns, groupID, card)
		})
		e.fail("delete task", id, err)
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// MoveTask reassigns a task to another group, nil meaning the unsorted
// bucket. The card leaves the source bucket and joins the destination
// immediately; failure restores both buckets to their pre-move form.
func (e *Engine) MoveTask(ctx context.Context, id uuid.UUID, dest *uuid.UUID) error {
	card, ok := e.store.FindCard(id)
	if !ok {
		return nil
	}
	if sameGroupRef(card.GroupID, dest) {
		return nil
	}

	source := card.GroupID
	gen := e.store.Generation()
	e.store.Mutate(func(columns []Column) []Column {
		columns, moved := removeCard(columns, id)
		if moved == nil {
			return columns
		}
		moved.GroupID = cloneRef(dest)
		for i := range columns {
			if sameColumn(&columns[i], dest) {
				columns[i].Cards = append(columns[i].Cards, *moved)
				break
			}
		}
		return columns
	})

	group := cloneRef(dest)
	updated, err := e.svc.UpdateTask(ctx, id, ports.UpdateTaskRequest{GroupID: &group})
	if err != nil {
		e.store.mutateAt(gen, func(columns []Column) []Column {
			columns, moved := removeCard(columns, id)
			if moved == nil {
				return columns
			}
			moved.GroupID = cloneRef(source)
			return insertByCreation(columns, source, *moved)
		})
		e.fail("move task", id, err)
		return fmt.Errorf("failed to move task: %w", err)
	}

	e.store.mutateAt(gen, func(columns []Column) []Column {
		return patchCard(columns, id, func(t *entities.Task) { *t = *updated })
	})
	return nil
}

// ReorderTasks moves the card at index from to index to within one
// column and persists the resulting order as a single batched write of
// id/order pairs. Last write wins; there is no per-item diffing.
func (e *Engine) ReorderTasks(ctx context.Context, groupID *uuid.UUID, from, to int) error {
	col, ok := e.store.FindColumn(groupID)
	if !ok || from == to || from < 0 || to < 0 || from >= len(col.Cards) || to >= len(col.Cards) {
		return nil
	}
	previous := make([]Card, len(col.Cards))
	copy(previous, col.Cards)

	gen := e.store.Generation()
	var orders []entities.TaskOrder
	e.store.Mutate(func(columns []Column) []Column {
		for i := range columns {
			if !sameColumn(&columns[i], groupID) {
				continue
			}
			columns[i].Cards = splice(columns[i].Cards, from, to)
			for idx := range columns[i].Cards {
				columns[i].Cards[idx].Position = idx
				orders = append(orders, entities.TaskOrder{ID: columns[i].Cards[idx].ID, Order: idx})
			}
			break
		}
		return columns
	})

	e.reorderMu.Lock()
	err := e.svc.UpdateTasksOrder(ctx, groupID, orders)
	e.reorderMu.Unlock()
	if err != nil {
		e.store.mutateAt(gen, func(columns []Column) []Column {
			for i := range columns {
				if sameColumn(&columns[i], groupID) {
					columns[i].Cards = previous
					break
				}
			}
			return columns
		})
		e.fail("reorder tasks", uuid.Nil, err)
		return fmt.Errorf("failed to reorder tasks: %w", err)
	}
	return nil
}

// CreateGroup adds a speculative column, then swaps in the confirmed
// group on success or removes the column on failure. The unsorted column
// always stays last.
func (e *Engine) CreateGroup(ctx context.Context, req ports.CreateTaskGroupRequest) (*entities.TaskGroup, error) {
	placeholder := uuid.New()
	now := time.Now()
	speculative := &entities.TaskGroup{
		ID:          placeholder,
		OrganizerID: req.OrganizerID,
		Name:        req.Name,
		Color:       req.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	gen := e.store.Generation()
	e.store.Mutate(func(columns []Column) []Column {
		insertAt := len(columns)
		if insertAt > 0 && columns[insertAt-1].Unsorted {
			insertAt--
		}
		columns = append(columns, Column{})
		copy(columns[insertAt+1:], columns[insertAt:])
		columns[insertAt] = Column{Group: speculative}
		return columns
	})

	created, err := e.svc.CreateGroup(ctx, req)
	if err != nil {
		e.store.mutateAt(gen, func(columns []Column) []Column {
			return removeColumn(columns, placeholder)
		})
		e.fail("create group", uuid.Nil, err)
		return nil, fmt.Errorf("failed to create task group: %w", err)
	}

	e.store.mutateAt(gen, func(columns []Column) []Column {
		for i := range columns {
			if columns[i].Group != nil && columns[i].Group.ID == placeholder {
				columns[i].Group = created
				break
			}
		}
		return columns
	})
	return created, nil
}

// UpdateGroup renames or recolors a group optimistically.
func (e *Engine) UpdateGroup(ctx context.Context, id uuid.UUID, req ports.UpdateTaskGroupRequest) error {
	var previous *entities.TaskGroup
	for _, col := range e.store.Columns() {
		if col.Group != nil && col.Group.ID == id {
			g := *col.Group
			previous = &g
			break
		}
	}
	if previous == nil {
		return nil
	}

	gen := e.store.Generation()
	e.store.Mutate(func(columns []Column) []Column {
		return patchGroup(columns, id, func(g *entities.TaskGroup) {
			if req.Name != nil {
				g.Name = *req.Name
			}
			if req.Color != nil {
				g.Color = req.Color
			}
		})
	})

	updated, err := e.svc.UpdateGroup(ctx, id, req)
	if err != nil {
		e.store.mutateAt(gen, func(columns []Column) []Column {
			return patchGroup(columns, id, func(g *entities.TaskGroup) { *g = *previous })
		})
		e.fail("update group", uuid.Nil, err)
		return fmt.Errorf("failed to update task group: %w", err)
	}

	e.store.mutateAt(gen, func(columns []Column) []Column {
		return patchGroup(columns, id, func(g *entities.TaskGroup) { *g = *updated })
	})
	return nil
}

// DeleteGroup removes a column after confirmation. The remote service
// cascades the delete to the group's tasks, so the whole column goes
// away locally too; failure restores it at its original index.
func (e *Engine) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	columns := e.store.Columns()
	index := -1
	var removed Column
	for i, col := range columns {
		if col.Group != nil && col.Group.ID == id {
			index = i
			removed = col
			break
		}
	}
	if index < 0 {
		return nil
	}
	if !e.confirmed("delete group", removed.Group.Name) {
		return nil
	}

	gen := e.store.Generation()
	e.store.Mutate(func(cols []Column) []Column {
		return removeColumn(cols, id)
	})

	if err := e.svc.DeleteGroup(ctx, id); err != nil {
		e.store.mutateAt(gen, func(cols []Column) []Column {
			if index > len(cols) {
				return append(cols, removed)
			}
			cols = append(cols, Column{})
			copy(cols[index+1:], cols[index:])
			cols[index] = removed
			return cols
		})
		e.fail("delete group", uuid.Nil, err)
		return fmt.Errorf("failed to delete task group: %w", err)
	}
	return nil
}

// ReorderGroups moves the column at index from to index to (unsorted
// column excluded) and persists the new column order in one batch.
func (e *Engine) ReorderGroups(ctx context.Context, from, to int) error {
	columns := e.store.Columns()
	groups := columns[:0:0]
	for _, col := range columns {
		if !col.Unsorted {
			groups = append(groups, col)
		}
	}
	if from == to || from < 0 || to < 0 || from >= len(groups) || to >= len(groups) {
		return nil
	}
	previous := columns

	gen := e.store.Generation()
	var orders []entities.TaskOrder
	e.store.Mutate(func(cols []Column) []Column {
		var unsorted *Column
		kept := make([]Column, 0, len(cols))
		for i := range cols {
			if cols[i].Unsorted {
				unsorted = &cols[i]
				continue
			}
			kept = append(kept, cols[i])
		}
		kept = spliceColumns(kept, from, to)
		for idx := range kept {
			kept[idx].Group.Position = idx
			orders = append(orders, entities.TaskOrder{ID: kept[idx].Group.ID, Order: idx})
		}
		if unsorted != nil {
			kept = append(kept, *unsorted)
		}
		return kept
	})

	e.reorderMu.Lock()
	err := e.svc.UpdateGroupsOrder(ctx, e.store.OrganizerID(), orders)
	e.reorderMu.Unlock()
	if err != nil {
		e.store.mutateAt(gen, func([]Column) []Column { return previous })
		e.fail("reorder groups", uuid.Nil, err)
		return fmt.Errorf("failed to reorder groups: %w", err)
	}
	return nil
}

// buildUpdateRequest projects only the changed fields into an update
// request so unrelated fields are never written.
func buildUpdateRequest(changed []string, t *entities.Task) ports.UpdateTaskRequest {
	var req ports.UpdateTaskRequest
	for _, field := range changed {
		switch field {
		case "title":
			title := t.Title
			req.Title = &title
		case "translations":
			req.Translations = t.Translations
		case "status":
			status := t.Status
			req.Status = &status
		case "priority":
			req.Priority = t.Priority
		case "assignee_id":
			req.AssigneeID = t.AssigneeID
		}
	}
	return req
}

// splice removes the element at from and reinserts it at to.
func splice(cards []Card, from, to int) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out, Card{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out
}

func spliceColumns(cols []Column, from, to int) []Column {
	out := make([]Column, len(cols))
	copy(out, cols)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out, Column{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out
}

func patchCard(columns []Column, id uuid.UUID, apply func(*entities.Task)) []Column {
	for i := range columns {
		for j := range columns[i].Cards {
			if columns[i].Cards[j].ID == id {
				apply(&columns[i].Cards[j].Task)
				columns[i].Cards[j].State = StateConfirmed
				return columns
			}
		}
	}
	return columns
}

func patchGroup(columns []Column, id uuid.UUID, apply func(*entities.TaskGroup)) []Column {
	for i := range columns {
		if columns[i].Group != nil && columns[i].Group.ID == id {
			apply(columns[i].Group)
			return columns
		}
	}
	return columns
}

func removeCard(columns []Column, id uuid.UUID) ([]Column, *Card) {
	for i := range columns {
		for j := range columns[i].Cards {
			if columns[i].Cards[j].ID == id {
				removed := columns[i].Cards[j]
				columns[i].Cards = append(columns[i].Cards[:j], columns[i].Cards[j+1:]...)
				return columns, &removed
			}
		}
	}
	return columns, nil
}

func removeByTempID(columns []Column, tempID string) []Column {
	for i := range columns {
		for j := range columns[i].Cards {
			if columns[i].Cards[j].TempID == tempID {
				columns[i].Cards = append(columns[i].Cards[:j], columns[i].Cards[j+1:]...)
				return columns
			}
		}
	}
	return columns
}

// swapByTempID replaces a speculative card with the server-confirmed
// entity, preserving its position in the bucket.
func swapByTempID(columns []Column, tempID string, confirmed entities.Task) []Column {
	for i := range columns {
		for j := range columns[i].Cards {
			if columns[i].Cards[j].TempID == tempID {
				columns[i].Cards[j] = Card{Task: confirmed, State: StateConfirmed}
				return columns
			}
		}
	}
	return columns
}

func removeColumn(columns []Column, groupID uuid.UUID) []Column {
	for i := range columns {
		if columns[i].Group != nil && columns[i].Group.ID == groupID {
			return append(columns[:i], columns[i+1:]...)
		}
	}
	return columns
}

// insertByCreation re-inserts a card into its bucket keeping the bucket
// sorted by creation timestamp, so a rolled-back delete lands where the
// card originally was instead of at the end.
func insertByCreation(columns []Column, groupID *uuid.UUID, card Card) []Column {
	for i := range columns {
		if !sameColumn(&columns[i], groupID) {
			continue
		}
		cards := columns[i].Cards
		at := sort.Search(len(cards), func(j int) bool {
			return cards[j].CreatedAt.After(card.CreatedAt)
		})
		cards = append(cards, Card{})
		copy(cards[at+1:], cards[at:])
		cards[at] = card
		columns[i].Cards = cards
		return columns
	}
	return columns
}

func sameGroupRef(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func cloneRef(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
