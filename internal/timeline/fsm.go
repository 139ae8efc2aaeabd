package timeline

import (
	"fmt"

	"github.com/danielbloch/gantry/internal/domain"
	"github.com/felixgeelhaar/statekit"
)

// Interaction states. Exactly one of the non-idle states may be active at
// a time; the machine is the single authority on transition legality.
const (
	stateIdle          = "idle"
	stateMoving        = "moving"
	stateResizingStart = "resizing_start"
	stateResizingEnd   = "resizing_end"
	stateReordering    = "reordering"
)

const (
	eventBeginMove        = "begin_move"
	eventBeginResizeStart = "begin_resize_start"
	eventBeginResizeEnd   = "begin_resize_end"
	eventBeginReorder     = "begin_reorder"
	eventRelease          = "release"
	eventCancel           = "cancel"
)

type fsmContext struct{}

// interactionFSM wraps a statekit machine modelling the pointer
// lifecycle: idle fans out to one of four active states, and every
// active state returns to idle on release or cancel. Begin events are
// only wired from idle, so a second interaction-start while one is
// active is rejected by the machine itself.
type interactionFSM struct {
	interpreter *statekit.Interpreter[fsmContext]
}

func newInteractionFSM() (*interactionFSM, error) {
	builder := statekit.NewMachine[fsmContext]("drag-interaction").
		WithInitial(statekit.StateID(stateIdle)).
		WithContext(fsmContext{})

	builder.State(stateIdle).
		On(eventBeginMove).Target(stateMoving).
		On(eventBeginResizeStart).Target(stateResizingStart).
		On(eventBeginResizeEnd).Target(stateResizingEnd).
		On(eventBeginReorder).Target(stateReordering).
		Done()

	for _, active := range []string{stateMoving, stateResizingStart, stateResizingEnd, stateReordering} {
		builder.State(statekit.StateID(active)).
			On(eventRelease).Target(stateIdle).
			On(eventCancel).Target(stateIdle).
			Done()
	}

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("building interaction machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &interactionFSM{interpreter: interpreter}, nil
}

// fire sends an event and reports whether it caused a transition.
// Events not wired from the current state leave it unchanged.
func (f *interactionFSM) fire(event string) bool {
	before := f.current()
	f.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	return f.current() != before
}

func (f *interactionFSM) current() string {
	return string(f.interpreter.State().Value)
}

func (f *interactionFSM) idle() bool {
	return f.current() == stateIdle
}

// beginEvent maps an interaction kind to its begin event.
func beginEvent(kind domain.InteractionKind) string {
	switch kind {
	case domain.InteractionMove:
		return eventBeginMove
	case domain.InteractionResizeStart:
		return eventBeginResizeStart
	case domain.InteractionResizeEnd:
		return eventBeginResizeEnd
	case domain.InteractionReorder:
		return eventBeginReorder
	}
	return ""
}
