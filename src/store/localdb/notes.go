package localdb

import (
	"context"
	"encoding/json"
	"fmt"

	"taskman-app/src/domain"
)

// ListNotes returns all notes ascending by creation time
func (db *DB) ListNotes(ctx context.Context) ([]domain.Note, error) {
	rows, err := db.QueryContext(ctx, `SELECT doc FROM notes ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		var n domain.Note
		if err := json.Unmarshal([]byte(doc), &n); err != nil {
			return nil, fmt.Errorf("failed to unmarshal note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return notes, nil
}

// PutNote inserts or replaces a note
func (db *DB) PutNote(ctx context.Context, note *domain.Note) error {
	doc, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to marshal note: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO notes (id, type, project_id, task_id, client_id, archived, created_at, updated_at, doc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			project_id = excluded.project_id,
			task_id = excluded.task_id,
			client_id = excluded.client_id,
			archived = excluded.archived,
			updated_at = excluded.updated_at,
			doc = excluded.doc
	`, note.ID, note.Type.String(), nullString(note.ProjectID), nullString(note.TaskID),
		nullString(note.ClientID), note.Archived, note.CreatedAt, note.UpdatedAt, string(doc))
	if err != nil {
		return fmt.Errorf("failed to put note: %w", err)
	}
	return nil
}

// DeleteNote removes a note by ID
func (db *DB) DeleteNote(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
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
