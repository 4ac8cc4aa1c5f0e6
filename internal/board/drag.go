package board

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// DragPhase is the state of a drag interaction.
type DragPhase string

const (
	PhaseIdle     DragPhase = "idle"
	PhaseDragging DragPhase = "dragging"
	PhaseHovering DragPhase = "hovering"
)

// OriginKind classifies the element a press started on. Drags of whole
// columns must not start from the column's interactive controls.
type OriginKind string

const (
	OriginCard     OriginKind = "card"
	OriginHeader   OriginKind = "header"
	OriginButton   OriginKind = "button"
	OriginInput    OriginKind = "input"
	OriginTextarea OriginKind = "textarea"
)

func (k OriginKind) interactive() bool {
	return k == OriginButton || k == OriginInput || k == OriginTextarea
}

// TaskDragController tracks a single in-flight task drag: which card is
// held, where it came from, and what it is currently over. Dropping
// resolves to either a cross-group move or a same-column reorder through
// the mutation engine. References that went stale mid-drag (the card was
// deleted underneath) make the drop a silent no-op.
type TaskDragController struct {
	engine *Engine

	mu          sync.Mutex
	phase       DragPhase
	taskID      uuid.UUID
	sourceGroup *uuid.UUID

	hoverTask   *uuid.UUID
	hoverGroup  *uuid.UUID
	hoverColumn bool
}

// NewTaskDragController creates an idle task drag controller.
func NewTaskDragController(engine *Engine) *TaskDragController {
	return &TaskDragController{engine: engine, phase: PhaseIdle}
}

// Phase returns the controller's current phase.
func (c *TaskDragController) Phase() DragPhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Dragged returns the identifier of the card being dragged, if any.
func (c *TaskDragController) Dragged() (uuid.UUID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.taskID, c.phase != PhaseIdle
}

// Start begins dragging the given card. It reports false when the card
// does not exist or a drag is already underway.
func (c *TaskDragController) Start(taskID uuid.UUID) bool {
	card, ok := c.engine.Store().FindCard(taskID)
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseIdle {
		return false
	}
	c.phase = PhaseDragging
	c.taskID = taskID
	c.sourceGroup = cloneRef(card.GroupID)
	return true
}

// HoverColumn marks the drag as hovering a column surface, nil meaning
// the unsorted column.
func (c *TaskDragController) HoverColumn(groupID *uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseIdle {
		return
	}
	c.phase = PhaseHovering
	c.hoverColumn = true
	c.hoverGroup = cloneRef(groupID)
	c.hoverTask = nil
}

// HoverTask marks the drag as hovering another card.
func (c *TaskDragController) HoverTask(taskID uuid.UUID) {
	target, ok := c.engine.Store().FindCard(taskID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseIdle {
		return
	}
	c.phase = PhaseHovering
	c.hoverColumn = false
	id := taskID
	c.hoverTask = &id
	c.hoverGroup = cloneRef(target.GroupID)
}

// Drop resolves the drag. Hovering a card in the source column reorders
// within it; hovering a foreign column (or a card in one) moves the task
// there. The controller always returns to idle.
func (c *TaskDragController) Drop(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != PhaseHovering {
		c.resetLocked()
		c.mu.Unlock()
		return nil
	}
	taskID := c.taskID
	sourceGroup := c.sourceGroup
	hoverTask := c.hoverTask
	hoverGroup := c.hoverGroup
	hoverColumn := c.hoverColumn
	c.resetLocked()
	c.mu.Unlock()

	store := c.engine.Store()
	if _, ok := store.FindCard(taskID); !ok {
		return nil
	}

	if hoverColumn {
		if sameGroupRef(sourceGroup, hoverGroup) {
			return nil
		}
		return c.engine.MoveTask(ctx, taskID, hoverGroup)
	}

	if hoverTask == nil || *hoverTask == taskID {
		return nil
	}
	if !sameGroupRef(sourceGroup, hoverGroup) {
		return c.engine.MoveTask(ctx, taskID, hoverGroup)
	}

	col, ok := store.FindColumn(sourceGroup)
	if !ok {
		return nil
	}
	from, to := -1, -1
	for i, card := range col.Cards {
		if card.ID == taskID {
			from = i
		}
		if card.ID == *hoverTask {
			to = i
		}
	}
	if from < 0 || to < 0 {
		return nil
	}
	return c.engine.ReorderTasks(ctx, sourceGroup, from, to)
}

// Cancel abandons the drag without mutating anything.
func (c *TaskDragController) Cancel() {
	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()
}

func (c *TaskDragController) resetLocked() {
	c.phase = PhaseIdle
	c.taskID = uuid.Nil
	c.sourceGroup = nil
	c.hoverTask = nil
	c.hoverGroup = nil
	c.hoverColumn = false
}

// GroupDragController reorders whole columns. It follows the same shape
// as the task controller at the column level; the unsorted column is not
// draggable and presses that originate on a header control (button,
// input, textarea) never start a drag.
type GroupDragController struct {
	engine *Engine

	mu         sync.Mutex
	phase      DragPhase
	groupID    uuid.UUID
	hoverGroup uuid.UUID
}

// NewGroupDragController creates an idle group drag controller.
func NewGroupDragController(engine *Engine) *GroupDragController {
	return &GroupDragController{engine: engine, phase: PhaseIdle}
}

// Phase returns the controller's current phase.
func (c *GroupDragController) Phase() DragPhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Start begins dragging a column. The origin guard rejects presses that
// began on interactive header controls.
func (c *GroupDragController) Start(groupID uuid.UUID, origin OriginKind) bool {
	if origin.interactive() {
		return false
	}
	if _, ok := c.engine.Store().FindColumn(&groupID); !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseIdle {
		return false
	}
	c.phase = PhaseDragging
	c.groupID = groupID
	return true
}

// HoverGroup marks the drag as hovering another column.
func (c *GroupDragController) HoverGroup(groupID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseIdle {
		return
	}
	c.phase = PhaseHovering
	c.hoverGroup = groupID
}

// Drop reorders the dragged column to the hovered column's position and
// persists the full resulting order in one batch.
func (c *GroupDragController) Drop(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != PhaseHovering {
		c.resetLocked()
		c.mu.Unlock()
		return nil
	}
	groupID := c.groupID
	hoverGroup := c.hoverGroup
	c.resetLocked()
	c.mu.Unlock()

	if groupID == hoverGroup {
		return nil
	}

	from, to := -1, -1
	idx := 0
	for _, col := range c.engine.Store().Columns() {
		if col.Unsorted {
			continue
		}
		if col.Group.ID == groupID {
			from = idx
		}
		if col.Group.ID == hoverGroup {
			to = idx
		}
		idx++
	}
	if from < 0 || to < 0 {
		return nil
	}
	return c.engine.ReorderGroups(ctx, from, to)
}

// Cancel abandons the drag without mutating anything.
func (c *GroupDragController) Cancel() {
	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()
}

func (c *GroupDragController) resetLocked() {
	c.phase = PhaseIdle
	c.groupID = uuid.Nil
	c.hoverGroup = uuid.Nil
}
