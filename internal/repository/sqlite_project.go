package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielbloch/gantry/internal/db"
	"github.com/danielbloch/gantry/internal/domain"
)

const projectColumns = `id, org_id, name, status, archived_at, created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo on a SQLite database or
// transaction.
type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(dbtx db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: dbtx}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, org_id, name, status, archived_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.OrgID,
		p.Name,
		string(p.Status),
		nullableTimeToString(p.ArchivedAt, time.RFC3339),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return r.scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteProjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if !includeArchived {
		query += ` WHERE status != 'archived'`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := r.scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Archive(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET status = 'archived', archived_at = ?, updated_at = ? WHERE id = ?`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("archiving project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("project %s not found", id)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("project %s not found", id)
	}
	return nil
}

func (r *SQLiteProjectRepo) scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var status string
	var archivedAt, createdAt, updatedAt sql.NullString

	err := row.Scan(&p.ID, &p.OrgID, &p.Name, &status, &archivedAt, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Status = domain.ProjectStatus(status)
	p.ArchivedAt = parseNullableTime(archivedAt, time.RFC3339)
	if ts := parseNullableTime(createdAt, time.RFC3339); ts != nil {
		p.CreatedAt = *ts
	}
	if ts := parseNullableTime(updatedAt, time.RFC3339); ts != nil {
		p.UpdatedAt = *ts
	}
	return &p, nil
}
