package domain

type TaskColumn string

const (
	ColumnTodo       TaskColumn = "todo"
	ColumnInProgress TaskColumn = "in_progress"
	ColumnDone       TaskColumn = "done"
)

// ValidTaskColumns is the canonical set of accepted column id strings.
var ValidTaskColumns = map[string]bool{
	"todo": true, "in_progress": true, "done": true,
}

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)

// Role is a principal's membership role on a project.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleOwner  Role = "owner"
)

// Valid reports whether r is one of the defined membership roles.
func (r Role) Valid() bool {
	return r == RoleViewer || r == RoleEditor || r == RoleOwner
}

// CanEditSchedule reports whether the role permits direct manipulation of
// task dates on the timeline.
func (r Role) CanEditSchedule() bool {
	return r == RoleEditor || r == RoleOwner
}

// InteractionKind identifies the four pointer interactions the timeline
// supports.
type InteractionKind string

const (
	InteractionMove        InteractionKind = "move"
	InteractionResizeStart InteractionKind = "resize_start"
	InteractionResizeEnd   InteractionKind = "resize_end"
	InteractionReorder     InteractionKind = "reorder"
)
