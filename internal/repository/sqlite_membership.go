package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielbloch/gantry/internal/db"
	"github.com/danielbloch/gantry/internal/domain"
)

// SQLiteMembershipRepo implements MembershipRepo on a SQLite database
// or transaction.
type SQLiteMembershipRepo struct {
	db db.DBTX
}

func NewSQLiteMembershipRepo(dbtx db.DBTX) *SQLiteMembershipRepo {
	return &SQLiteMembershipRepo{db: dbtx}
}

func (r *SQLiteMembershipRepo) Upsert(ctx context.Context, m *domain.Membership) error {
	query := `INSERT INTO memberships (project_id, principal_id, role, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(project_id, principal_id) DO UPDATE SET role = excluded.role`
	_, err := r.db.ExecContext(ctx, query,
		m.ProjectID,
		m.PrincipalID,
		string(m.Role),
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting membership: %w", err)
	}
	return nil
}

func (r *SQLiteMembershipRepo) Get(ctx context.Context, projectID, principalID string) (*domain.Membership, error) {
	query := `SELECT project_id, principal_id, role, created_at FROM memberships
		WHERE project_id = ? AND principal_id = ?`
	row := r.db.QueryRowContext(ctx, query, projectID, principalID)

	var m domain.Membership
	var role string
	var createdAt sql.NullString
	err := row.Scan(&m.ProjectID, &m.PrincipalID, &role, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil // no membership, not an error
	}
	if err != nil {
		return nil, fmt.Errorf("scanning membership: %w", err)
	}
	m.Role = domain.Role(role)
	if ts := parseNullableTime(createdAt, time.RFC3339); ts != nil {
		m.CreatedAt = *ts
	}
	return &m, nil
}

func (r *SQLiteMembershipRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Membership, error) {
	query := `SELECT project_id, principal_id, role, created_at FROM memberships
		WHERE project_id = ? ORDER BY principal_id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing memberships: %w", err)
	}
	defer rows.Close()

	var members []domain.Membership
	for rows.Next() {
		var m domain.Membership
		var role string
		var createdAt sql.NullString
		if err := rows.Scan(&m.ProjectID, &m.PrincipalID, &role, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning membership: %w", err)
		}
		m.Role = domain.Role(role)
		if ts := parseNullableTime(createdAt, time.RFC3339); ts != nil {
			m.CreatedAt = *ts
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating memberships: %w", err)
	}
	return members, nil
}

func (r *SQLiteMembershipRepo) Delete(ctx context.Context, projectID, principalID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM memberships WHERE project_id = ? AND principal_id = ?`,
		projectID, principalID,
	)
	if err != nil {
		return fmt.Errorf("deleting membership: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("membership %s/%s not found", projectID, principalID)
	}
	return nil
}
