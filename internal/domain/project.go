package domain

import "time"

type Project struct {
	ID         string
	OrgID      string
	Name       string
	Status     ProjectStatus
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DisplayID returns a short identifier for display, truncating the
// UUID to 8 characters.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// Membership binds a principal to a project with a role. Tenancy is
// enforced at this level: a principal with no membership row has no
// access to the project at all.
type Membership struct {
	ProjectID   string
	PrincipalID string
	Role        Role
	CreatedAt   time.Time
}
