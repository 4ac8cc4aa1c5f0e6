package board

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/weddingdesk/core/internal/domain/entities"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
	"github.com/weddingdesk/core/internal/ports"
)

// Card is a task as held by the board: the entity plus its sync tag. A
// card created optimistically carries a TempID until the server-confirmed
// entity is swapped in.
type Card struct {
	entities.Task
	TempID string
	State  SyncState
}

// Column is one Kanban column: a group and the cards currently assigned
// to it. Exactly one column per store has a nil Group and Unsorted set;
// it collects every task whose group reference is null. The grouping is
// derived from the flat task list, not a containment relationship.
type Column struct {
	Group    *entities.TaskGroup
	Cards    []Card
	Unsorted bool
}

// GroupID returns the column's group identifier, nil for the unsorted
// column.
func (c *Column) GroupID() *uuid.UUID {
	if c.Group == nil {
		return nil
	}
	id := c.Group.ID
	return &id
}

// LoadOptions control a wholesale store load.
type LoadOptions struct {
	// ShowSpinner emits a loading event before the fetch so observers
	// can show an indicator.
	ShowSpinner bool
	// ForceRefetch bypasses the cached copy and always hits the remote
	// service.
	ForceRefetch bool
}

// Store holds the authoritative in-memory view of all groups and tasks
// for one organizer. It is rebuilt wholesale by Load and patched
// incrementally by the mutation engine; every wholesale load bumps the
// generation counter so patches computed against a replaced snapshot can
// be discarded.
type Store struct {
	svc ports.BoardDataService
	log *logger.Logger

	mu          sync.Mutex
	organizerID uuid.UUID
	columns     []Column
	generation  uint64
	loaded      bool

	// initiallyCompleted is captured the first time the store becomes
	// non-empty and never recomputed for the store's lifetime. Tasks in
	// it partition into the collapsed completed sub-section; tasks
	// completed afterwards stay in the active list.
	initiallyCompleted map[uuid.UUID]struct{}
	captured           bool

	listenerSeq int
	listeners   map[int]func(Event)
}

// NewStore creates an empty store backed by the given data service.
func NewStore(svc ports.BoardDataService, log *logger.Logger) *Store {
	return &Store{
		svc:                svc,
		log:                log,
		initiallyCompleted: make(map[uuid.UUID]struct{}),
		listeners:          make(map[int]func(Event)),
	}
}

// Subscribe registers a listener for store events. The returned function
// unsubscribes it.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	s.listenerSeq++
	id := s.listenerSeq
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) emit(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Load fetches all groups and tasks for the organizer and replaces the
// store wholesale. Any optimistic patch still awaiting reconciliation is
// invalidated by the generation bump.
func (s *Store) Load(ctx context.Context, organizerID uuid.UUID, opts LoadOptions) error {
	s.mu.Lock()
	if s.loaded && s.organizerID == organizerID && !opts.ForceRefetch {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if opts.ShowSpinner {
		s.emit(Event{Kind: EventLoading})
	}

	groups, err := s.svc.GetGroups(ctx, organizerID)
	if err != nil {
		return fmt.Errorf("failed to load task groups: %w", err)
	}
	tasks, err := s.svc.GetTasks(ctx, organizerID)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	columns := buildColumns(groups, tasks)

	s.mu.Lock()
	s.organizerID = organizerID
	s.columns = columns
	s.generation++
	s.loaded = true
	if !s.captured {
		total := 0
		for _, col := range columns {
			total += len(col.Cards)
			for _, card := range col.Cards {
				if card.IsCompleted() {
					s.initiallyCompleted[card.ID] = struct{}{}
				}
			}
		}
		if total > 0 {
			s.captured = true
		}
	}
	s.mu.Unlock()

	if s.log != nil {
		s.log.Debugw("board store loaded", "organizer_id", organizerID, "groups", len(groups), "tasks", len(tasks))
	}
	s.emit(Event{Kind: EventLoaded})
	return nil
}

// buildColumns partitions the flat task list into per-group buckets plus
// the synthetic unsorted bucket, each ordered by position then creation
// time.
func buildColumns(groups []*entities.TaskGroup, tasks []*entities.Task) []Column {
	sorted := make([]*entities.TaskGroup, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	byGroup := make(map[uuid.UUID][]Card)
	var unsorted []Card
	for _, t := range tasks {
		card := Card{Task: *t, State: StateConfirmed}
		if t.GroupID == nil {
			unsorted = append(unsorted, card)
			continue
		}
		byGroup[*t.GroupID] = append(byGroup[*t.GroupID], card)
	}

	columns := make([]Column, 0, len(sorted)+1)
	for _, g := range sorted {
		cards := byGroup[g.ID]
		sortCards(cards)
		columns = append(columns, Column{Group: g, Cards: cards})
	}
	sortCards(unsorted)
	columns = append(columns, Column{Cards: unsorted, Unsorted: true})
	return columns
}

func sortCards(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Position != cards[j].Position {
			return cards[i].Position < cards[j].Position
		}
		return cards[i].CreatedAt.Before(cards[j].CreatedAt)
	})
}

// Mutate applies a pure updater over the current column list and emits a
// change event. Both optimistic and reconciling patches go through here.
func (s *Store) Mutate(fn func(columns []Column) []Column) {
	s.mu.Lock()
	s.columns = fn(s.columns)
	s.mu.Unlock()
	s.emit(Event{Kind: EventChanged})
}

// mutateAt applies the updater only if the store is still at the given
// generation. It reports whether the patch was applied; a false return
// means a wholesale load replaced the snapshot the patch was computed
// from and the patch must be discarded.
func (s *Store) mutateAt(generation uint64, fn func(columns []Column) []Column) bool {
	s.mu.Lock()
	if s.generation != generation {
		s.mu.Unlock()
		return false
	}
	s.columns = fn(s.columns)
	s.mu.Unlock()
	s.emit(Event{Kind: EventChanged})
	return true
}

// Generation returns the current wholesale-load generation.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// OrganizerID returns the organizer the store was last loaded for.
func (s *Store) OrganizerID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.organizerID
}

// Columns returns a snapshot copy of the column list.
func (s *Store) Columns() []Column {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyColumns(s.columns)
}

func copyColumns(columns []Column) []Column {
	out := make([]Column, len(columns))
	for i, col := range columns {
		out[i] = copyColumn(col)
	}
	return out
}

// copyColumn clones a column including its group, so in-place group
// patches (position writes during a reorder, renames) never leak into a
// snapshot taken before them.
func copyColumn(col Column) Column {
	cards := make([]Card, len(col.Cards))
	copy(cards, col.Cards)
	out := Column{Cards: cards, Unsorted: col.Unsorted}
	if col.Group != nil {
		g := *col.Group
		out.Group = &g
	}
	return out
}

// FindCard locates a card by its real identifier and returns a copy.
func (s *Store) FindCard(id uuid.UUID) (Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, col := range s.columns {
		for _, card := range col.Cards {
			if card.ID == id {
				return card, true
			}
		}
	}
	return Card{}, false
}

// FindColumn locates the column for the given group id (nil for the
// unsorted column) and returns a snapshot copy.
func (s *Store) FindColumn(groupID *uuid.UUID) (Column, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, col := range s.columns {
		if sameColumn(&col, groupID) {
			return copyColumn(col), true
		}
	}
	return Column{}, false
}

func sameColumn(col *Column, groupID *uuid.UUID) bool {
	if groupID == nil {
		return col.Unsorted
	}
	return col.Group != nil && col.Group.ID == *groupID
}

// Partition splits a column's cards into the active list and the
// collapsed completed sub-section. Only tasks that were already completed
// when the store first loaded fall into the completed section; tasks
// finished during the session stay visible in the active list.
func (s *Store) Partition(col Column) (active, completed []Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, card := range col.Cards {
		if _, ok := s.initiallyCompleted[card.ID]; ok && card.IsCompleted() {
			completed = append(completed, card)
		} else {
			active = append(active, card)
		}
	}
	return active, completed
}
