// Package contract defines the command/result types exchanged between the
// timeline interaction engine and its host. The controller emits a
// ScheduleMutation intent on pointer release; the host dispatches it and
// feeds the outcome back through a CommitEvent, keeping the engine
// decoupled from any particular persistence mechanism.
package contract

import "time"

// ScheduleMutation is the intent emitted when a finished drag changed a
// task's dates. NewEnd is inclusive and never precedes NewStart.
type ScheduleMutation struct {
	TaskID   string
	NewStart time.Time
	NewEnd   time.Time
}

// CommitEvent reports the outcome of exactly one commit attempt.
// Err is nil on success.
type CommitEvent struct {
	TaskID string
	Start  time.Time
	End    time.Time
	Err    error
}

// Succeeded reports whether the commit attempt persisted.
func (e CommitEvent) Succeeded() bool { return e.Err == nil }
