package clouddb

import (
	"context"
	"encoding/json"
	"fmt"

	"taskman-app/src/domain"
)

// ListNotes returns all notes in the user's namespace ascending by creation time
func (s *Scope) ListNotes(ctx context.Context) ([]domain.Note, error) {
	docs, err := s.listDocs(ctx, colNotes)
	if err != nil {
		return nil, err
	}

	notes := make([]domain.Note, 0, len(docs))
	for _, doc := range docs {
		var n domain.Note
		if err := json.Unmarshal(doc, &n); err != nil {
			return nil, fmt.Errorf("failed to unmarshal note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// PutNote writes a note document
func (s *Scope) PutNote(ctx context.Context, note *domain.Note) error {
	doc, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to marshal note: %w", err)
	}
	return s.putDoc(ctx, colNotes, note.ID, doc, note.CreatedAt, note.UpdatedAt)
}

// DeleteNote removes a note document
func (s *Scope) DeleteNote(ctx context.Context, id string) error {
	return s.deleteDoc(ctx, colNotes, id)
}
