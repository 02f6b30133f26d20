package localdb

import (
	"context"
	"encoding/json"
	"fmt"

	"taskman-app/src/domain"
)

// ListFiles returns all file attachments ascending by upload time
func (db *DB) ListFiles(ctx context.Context) ([]domain.FileAttachment, error) {
	rows, err := db.QueryContext(ctx, `SELECT doc FROM files ORDER BY uploaded_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	var files []domain.FileAttachment
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		var f domain.FileAttachment
		if err := json.Unmarshal([]byte(doc), &f); err != nil {
			return nil, fmt.Errorf("failed to unmarshal file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return files, nil
}

// PutFile inserts or replaces a file attachment
func (db *DB) PutFile(ctx context.Context, file *domain.FileAttachment) error {
	doc, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal file: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO files (id, name, mime_type, task_id, project_id, uploaded_at, doc)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			mime_type = excluded.mime_type,
			task_id = excluded.task_id,
			project_id = excluded.project_id,
			doc = excluded.doc
	`, file.ID, file.Name, file.MimeType, nullString(file.TaskID), nullString(file.ProjectID),
		file.UploadedAt, string(doc))
	if err != nil {
		return fmt.Errorf("failed to put file: %w", err)
	}
	return nil
}

// DeleteFile removes a file attachment by ID
func (db *DB) DeleteFile(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
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
