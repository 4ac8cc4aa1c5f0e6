package viewstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/weddingdesk/core/internal/domain/entities"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
	"github.com/weddingdesk/core/internal/ports"
)

// ViewMode is a top-level dashboard view.
type ViewMode string

const (
	ViewWeddings ViewMode = "weddings"
	ViewTasks    ViewMode = "tasks"
	ViewPayments ViewMode = "payments"

	// DefaultView is what restoration falls back to when nothing usable
	// was persisted.
	DefaultView = ViewWeddings
)

func (v ViewMode) valid() bool {
	switch v {
	case ViewWeddings, ViewTasks, ViewPayments:
		return true
	}
	return false
}

// OpenTab is a UI-only record of an open wedding-detail view. It has no
// server-side counterpart; it exists purely so a reload can reopen the
// same tabs.
type OpenTab struct {
	ID        string    `json:"id"`
	WeddingID uuid.UUID `json:"wedding_id"`
	Name      string    `json:"name"`
}

// Restored is the outcome of session restoration: the view to show and,
// if a tab won the precedence order, which tab to activate.
type Restored struct {
	View      ViewMode
	Tabs      []OpenTab
	ActiveTab *OpenTab
}

const (
	keyViewMode  = "view_mode"
	keyOpenTabs  = "open_tabs"
	keyActiveTab = "active_tab"
)

// Manager persists and restores dashboard view state for one organizer.
type Manager struct {
	store       ports.ViewStateStore
	log         *logger.Logger
	organizerID uuid.UUID
}

// NewManager creates a manager scoped to the given organizer.
func NewManager(store ports.ViewStateStore, log *logger.Logger, organizerID uuid.UUID) *Manager {
	return &Manager{store: store, log: log, organizerID: organizerID}
}

func (m *Manager) key(name string) string {
	return fmt.Sprintf("organizer:%s:%s", m.organizerID, name)
}

// SetViewMode persists the current top-level view. Unknown modes are
// rejected rather than stored, since restoration would only ignore them.
func (m *Manager) SetViewMode(ctx context.Context, view ViewMode) error {
	if !view.valid() {
		return fmt.Errorf("invalid view mode %q: must be one of %s, %s, %s", view, ViewWeddings, ViewTasks, ViewPayments)
	}
	return m.store.Set(ctx, m.key(keyViewMode), string(view))
}

// SaveTabs persists the full open-tab list.
func (m *Manager) SaveTabs(ctx context.Context, tabs []OpenTab) error {
	data, err := json.Marshal(tabs)
	if err != nil {
		return fmt.Errorf("failed to encode open tabs: %w", err)
	}
	return m.store.Set(ctx, m.key(keyOpenTabs), string(data))
}

// Tabs returns the persisted open-tab list, empty when none was saved.
func (m *Manager) Tabs(ctx context.Context) ([]OpenTab, error) {
	raw, err := m.store.Get(ctx, m.key(keyOpenTabs))
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var tabs []OpenTab
	if err := json.Unmarshal([]byte(raw), &tabs); err != nil {
		if m.log != nil {
			m.log.Warnw("discarding unreadable open-tab state", "error", err)
		}
		return nil, nil
	}
	return tabs, nil
}

// SetActiveTab persists which wedding's tab was last active.
func (m *Manager) SetActiveTab(ctx context.Context, weddingID uuid.UUID) error {
	return m.store.Set(ctx, m.key(keyActiveTab), weddingID.String())
}

// Restore rebuilds the dashboard state from what was persisted, applied
// against the current wedding list. Precedence: the last-active tab if
// its wedding still exists, then the first surviving open tab, then the
// persisted view mode, then the default view. Tabs whose wedding no
// longer exists are pruned and the pruned list is written back.
func (m *Manager) Restore(ctx context.Context, weddings []*entities.Wedding) (Restored, error) {
	existing := make(map[uuid.UUID]struct{}, len(weddings))
	for _, w := range weddings {
		existing[w.ID] = struct{}{}
	}

	tabs, err := m.Tabs(ctx)
	if err != nil {
		return Restored{}, fmt.Errorf("failed to read open tabs: %w", err)
	}

	kept := make([]OpenTab, 0, len(tabs))
	for _, tab := range tabs {
		if _, ok := existing[tab.WeddingID]; ok {
			kept = append(kept, tab)
		}
	}
	if len(kept) != len(tabs) {
		if err := m.SaveTabs(ctx, kept); err != nil && m.log != nil {
			m.log.Warnw("failed to persist pruned tab list", "error", err)
		}
	}

	out := Restored{Tabs: kept, View: DefaultView}

	if raw, err := m.store.Get(ctx, m.key(keyActiveTab)); err == nil {
		if activeID, err := uuid.Parse(raw); err == nil {
			for i := range kept {
				if kept[i].WeddingID == activeID {
					out.ActiveTab = &kept[i]
					out.View = ViewWeddings
					return out, nil
				}
			}
		}
	}

	if len(kept) > 0 {
		out.ActiveTab = &kept[0]
		out.View = ViewWeddings
		return out, nil
	}

	if raw, err := m.store.Get(ctx, m.key(keyViewMode)); err == nil {
		if view := ViewMode(raw); view.valid() {
			out.View = view
		}
	}
	return out, nil
}
