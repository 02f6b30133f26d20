package localdb

import (
	"context"
	"encoding/json"
	"fmt"

	"taskman-app/src/domain"
)

// ListClients returns all clients ascending by creation time
func (db *DB) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := db.QueryContext(ctx, `SELECT doc FROM clients ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		var c domain.Client
		if err := json.Unmarshal([]byte(doc), &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return clients, nil
}

// PutClient inserts or replaces a client
func (db *DB) PutClient(ctx context.Context, client *domain.Client) error {
	doc, err := json.Marshal(client)
	if err != nil {
		return fmt.Errorf("failed to marshal client: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO clients (id, name, email, company, archived, created_at, updated_at, doc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			company = excluded.company,
			archived = excluded.archived,
			updated_at = excluded.updated_at,
			doc = excluded.doc
	`, client.ID, client.Name, nullString(client.Email), nullString(client.Company),
		client.Archived, client.CreatedAt, client.UpdatedAt, string(doc))
	if err != nil {
		return fmt.Errorf("failed to put client: %w", err)
	}
	return nil
}

// DeleteClient removes a client by ID
func (db *DB) DeleteClient(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
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
