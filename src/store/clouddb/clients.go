package clouddb

import (
	"context"
	"encoding/json"
	"fmt"

	"taskman-app/src/domain"
)

// ListClients returns all clients in the user's namespace ascending by creation time
func (s *Scope) ListClients(ctx context.Context) ([]domain.Client, error) {
	docs, err := s.listDocs(ctx, colClients)
	if err != nil {
		return nil, err
	}

	clients := make([]domain.Client, 0, len(docs))
	for _, doc := range docs {
		var c domain.Client
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, nil
}

// PutClient writes a client document
func (s *Scope) PutClient(ctx context.Context, client *domain.Client) error {
	doc, err := json.Marshal(client)
	if err != nil {
		return fmt.Errorf("failed to marshal client: %w", err)
	}
	return s.putDoc(ctx, colClients, client.ID, doc, client.CreatedAt, client.UpdatedAt)
}

// DeleteClient removes a client document
func (s *Scope) DeleteClient(ctx context.Context, id string) error {
	return s.deleteDoc(ctx, colClients, id)
}
