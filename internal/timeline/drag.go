package timeline

import (
	"math"

	"github.com/danielbloch/gantry/internal/contract"
	"github.com/danielbloch/gantry/internal/domain"
)

// PermissionOracle gates interaction starts. It is consulted before any
// transition out of idle; the commit dispatcher consults its own copy
// again defensively before persisting.
type PermissionOracle interface {
	CanEditSchedule(principal, projectID string) bool
}

// AllowAll is a PermissionOracle that approves every principal. Useful
// for tests and single-user hosts.
type AllowAll struct{}

func (AllowAll) CanEditSchedule(string, string) bool { return true }

// InteractionState captures everything recorded at pointer-down. At most
// one instance exists; it is owned exclusively by the Controller and
// destroyed on every exit from the interaction.
type InteractionState struct {
	Kind         domain.InteractionKind
	TaskID       string
	OriginX      int
	OriginY      int
	InitialBar   BarGeometry
	InitialIndex int
}

// GhostPreview is the uncommitted geometry of an in-progress move or
// resize. It is transient: each pointer-move replaces it wholesale, and
// it is discarded on every exit from the interaction.
type GhostPreview struct {
	TaskID string
	Bar    BarGeometry
}

// ReorderIndicator marks the candidate row of an in-progress reorder
// drag. Purely visual: the drag commit path never persists an order
// change.
type ReorderIndicator struct {
	TaskID string
	Index  int
}

// BeginRequest carries everything the Controller needs at pointer-down.
// Bounds is captured for the life of the interaction; the task set does
// not change while a drag is in flight.
type BeginRequest struct {
	Kind      domain.InteractionKind
	Principal string
	ProjectID string
	TaskID    string
	X, Y      int
	Bar       BarGeometry // initial geometry (move/resize kinds)
	RowIndex  int         // initial flattened index (reorder kind)
	TaskCount int         // total rows, bounds the reorder candidate
	Bounds    Bounds
}

// Controller is the pointer-driven interaction state machine. It tracks
// at most one live drag, recomputes the ghost preview on every
// pointer-move, and inverts the final geometry to dates on release.
// All methods are to be called from a single goroutine; the host's event
// loop provides mutual exclusion structurally.
type Controller struct {
	cfg    Config
	oracle PermissionOracle
	fsm    *interactionFSM

	state     *InteractionState
	bounds    Bounds
	taskCount int
	ghost     *GhostPreview
	indicator *ReorderIndicator
}

// NewController builds an idle Controller. A nil oracle permits all
// interactions.
func NewController(cfg Config, oracle PermissionOracle) (*Controller, error) {
	fsm, err := newInteractionFSM()
	if err != nil {
		return nil, err
	}
	if oracle == nil {
		oracle = AllowAll{}
	}
	return &Controller{cfg: cfg, oracle: oracle, fsm: fsm}, nil
}

// Active reports whether an interaction is in flight.
func (c *Controller) Active() bool { return !c.fsm.idle() }

// State returns a copy of the live interaction state, or nil when idle.
func (c *Controller) State() *InteractionState {
	if c.state == nil {
		return nil
	}
	st := *c.state
	return &st
}

// Ghost returns the live preview geometry, nil when idle or reordering.
func (c *Controller) Ghost() *GhostPreview {
	if c.ghost == nil {
		return nil
	}
	g := *c.ghost
	return &g
}

// Indicator returns the live reorder row indicator, nil unless a reorder
// drag is in flight.
func (c *Controller) Indicator() *ReorderIndicator {
	if c.indicator == nil {
		return nil
	}
	ind := *c.indicator
	return &ind
}

// Begin starts an interaction at pointer-down. It returns false, leaving
// the Controller untouched, when the principal lacks schedule-edit
// permission or another interaction is already active.
func (c *Controller) Begin(req BeginRequest) bool {
	if !c.oracle.CanEditSchedule(req.Principal, req.ProjectID) {
		return false
	}
	if !c.fsm.fire(beginEvent(req.Kind)) {
		return false
	}

	c.state = &InteractionState{
		Kind:         req.Kind,
		TaskID:       req.TaskID,
		OriginX:      req.X,
		OriginY:      req.Y,
		InitialBar:   req.Bar,
		InitialIndex: req.RowIndex,
	}
	c.bounds = req.Bounds
	c.taskCount = req.TaskCount

	if req.Kind == domain.InteractionReorder {
		c.indicator = &ReorderIndicator{TaskID: req.TaskID, Index: req.RowIndex}
	} else {
		c.ghost = &GhostPreview{TaskID: req.TaskID, Bar: req.Bar}
	}
	return true
}

// PointerMove recomputes the live preview for the current pointer
// position. Each call replaces the previous ghost or indicator; nothing
// is queued, so hosts may coalesce motion events to one call per frame.
func (c *Controller) PointerMove(x, y int) {
	if c.state == nil {
		return
	}
	st := c.state
	deltaX := x - st.OriginX
	deltaY := y - st.OriginY

	switch st.Kind {
	case domain.InteractionMove:
		bar := st.InitialBar
		bar.X = c.snap(st.InitialBar.X + deltaX)
		c.ghost = &GhostPreview{TaskID: st.TaskID, Bar: bar}

	case domain.InteractionResizeStart:
		// Right edge pinned; width shrinks as the pointer moves right.
		bar := st.InitialBar
		bar.Width = c.clampWidth(c.snap(st.InitialBar.Width - deltaX))
		bar.X = st.InitialBar.X + (st.InitialBar.Width - bar.Width)
		c.ghost = &GhostPreview{TaskID: st.TaskID, Bar: bar}

	case domain.InteractionResizeEnd:
		// Left edge pinned.
		bar := st.InitialBar
		bar.Width = c.clampWidth(c.snap(st.InitialBar.Width + deltaX))
		c.ghost = &GhostPreview{TaskID: st.TaskID, Bar: bar}

	case domain.InteractionReorder:
		idx := int(math.Round(float64(st.InitialBar.Y+deltaY) / float64(c.cfg.RowHeight)))
		if idx < 0 {
			idx = 0
		}
		if idx > c.taskCount-1 {
			idx = c.taskCount - 1
		}
		c.indicator = &ReorderIndicator{TaskID: st.TaskID, Index: idx}
	}
}

// Release finishes the interaction at pointer-up. For move and resize
// kinds whose final geometry differs from the initial geometry it
// inverts the pixels to dates and returns the mutation intent; a drag
// that nets to zero returns nil and no mutation is emitted. Reorder
// drags always return nil. The Controller is idle when Release returns.
func (c *Controller) Release(x, y int) *contract.ScheduleMutation {
	if c.state == nil {
		return nil
	}
	c.PointerMove(x, y)

	var mutation *contract.ScheduleMutation
	st := c.state
	if st.Kind != domain.InteractionReorder && c.ghost != nil {
		final := c.ghost.Bar
		if final.X != st.InitialBar.X || final.Width != st.InitialBar.Width {
			start := c.bounds.PositionToDate(final.X)
			// The bar's last day starts one DayWidth inside the right edge.
			end := c.bounds.PositionToDate(final.X + final.Width - c.cfg.DayWidth)
			mutation = &contract.ScheduleMutation{
				TaskID:   st.TaskID,
				NewStart: start,
				NewEnd:   end,
			}
		}
	}

	c.reset(eventRelease)
	return mutation
}

// Cancel aborts the interaction without emitting anything. Hosts call it
// on abnormal termination of pointer tracking (window blur, capture
// loss); it is a no-op when idle, so the machine can never stay stuck
// outside idle.
func (c *Controller) Cancel() {
	if c.state == nil {
		return
	}
	c.reset(eventCancel)
}

// reset transitions back to idle and discards all transient state.
func (c *Controller) reset(event string) {
	c.fsm.fire(event)
	c.state = nil
	c.ghost = nil
	c.indicator = nil
	c.taskCount = 0
}

// snap rounds a pixel value to the nearest multiple of DayWidth.
func (c *Controller) snap(px int) int {
	dw := float64(c.cfg.DayWidth)
	return int(math.Round(float64(px)/dw)) * c.cfg.DayWidth
}

// clampWidth enforces the one-day minimum bar width.
func (c *Controller) clampWidth(w int) int {
	if w < c.cfg.DayWidth {
		return c.cfg.DayWidth
	}
	return w
}
