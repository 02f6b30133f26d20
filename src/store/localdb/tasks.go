package localdb

import (
	"context"
	"encoding/json"
	"fmt"

	"taskman-app/src/domain"
)

// ListTasks returns all tasks ascending by creation time
func (db *DB) ListTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := db.QueryContext(ctx, `SELECT doc FROM tasks ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		var t domain.Task
		if err := json.Unmarshal([]byte(doc), &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return tasks, nil
}

// PutTask inserts or replaces a task
func (db *DB) PutTask(ctx context.Context, task *domain.Task) error {
	doc, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO tasks (id, status, priority, project_id, client_id, due_date, completed_at, created_at, updated_at, doc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			priority = excluded.priority,
			project_id = excluded.project_id,
			client_id = excluded.client_id,
			due_date = excluded.due_date,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at,
			doc = excluded.doc
	`, task.ID, task.Status.String(), task.Priority.String(), nullString(task.ProjectID), nullString(task.ClientID),
		task.DueDate, task.CompletedAt, task.CreatedAt, task.UpdatedAt, string(doc))
	if err != nil {
		return fmt.Errorf("failed to put task: %w", err)
	}
	return nil
}

// DeleteTask removes a task by ID
func (db *DB) DeleteTask(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
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

// DeleteTasksByProject removes all tasks referencing a project
func (db *DB) DeleteTasksByProject(ctx context.Context, projectID string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("failed to delete tasks by project: %w", err)
	}
	return nil
}
