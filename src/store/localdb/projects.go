package localdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"taskman-app/src/domain"
)

// ListProjects returns all projects ascending by creation time
func (db *DB) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := db.QueryContext(ctx, `SELECT doc FROM projects ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

// ListProjectsByClient returns projects referencing a client, ascending by creation time
func (db *DB) ListProjectsByClient(ctx context.Context, clientID string) ([]domain.Project, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT doc FROM projects WHERE client_id = ? ORDER BY created_at ASC`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects by client: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

func scanProjects(rows *sql.Rows) ([]domain.Project, error) {
	var projects []domain.Project
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		var p domain.Project
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return projects, nil
}

// PutProject inserts or replaces a project
func (db *DB) PutProject(ctx context.Context, project *domain.Project) error {
	doc, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO projects (id, name, status, client_id, start_date, end_date, completed_at, created_at, updated_at, doc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			status = excluded.status,
			client_id = excluded.client_id,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at,
			doc = excluded.doc
	`, project.ID, project.Name, project.Status.String(), nullString(project.ClientID),
		project.StartDate, project.EndDate, project.CompletedAt,
		project.CreatedAt, project.UpdatedAt, string(doc))
	if err != nil {
		return fmt.Errorf("failed to put project: %w", err)
	}
	return nil
}

// DeleteProject removes a project by ID
func (db *DB) DeleteProject(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
