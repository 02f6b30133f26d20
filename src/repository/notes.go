package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"taskman-app/src/datamode"
	"taskman-app/src/domain"
)

// NoteRepository is the sole authorized mutator of the note collection
type NoteRepository struct {
	modes  *datamode.Selector
	logger *logrus.Logger

	mu      sync.RWMutex
	notes   []domain.Note
	lastErr string
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(modes *datamode.Selector, logger *logrus.Logger) *NoteRepository {
	return &NoteRepository{modes: modes, logger: logger}
}

// LoadAll reloads the full collection from the active backend
func (r *NoteRepository) LoadAll(ctx context.Context) ([]domain.Note, error) {
	notes, err := r.modes.Backend().ListNotes(ctx)
	if err != nil {
		r.fail("failed to load notes", err)
		return nil, err
	}

	r.mu.Lock()
	r.notes = notes
	r.lastErr = ""
	r.mu.Unlock()
	return notes, nil
}

// Notes returns the last successfully loaded collection
func (r *NoteRepository) Notes() []domain.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Note, len(r.notes))
	copy(out, r.notes)
	return out
}

// Active returns non-archived notes from the loaded collection
func (r *NoteRepository) Active() []domain.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Note, 0, len(r.notes))
	for _, n := range r.notes {
		if !n.Archived {
			out = append(out, n)
		}
	}
	return out
}

// LastError returns the recorded error message, empty when healthy
func (r *NoteRepository) LastError() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// Create persists a new note and reloads the collection
func (r *NoteRepository) Create(ctx context.Context, req domain.CreateNoteRequest) (*domain.Note, error) {
	now := time.Now()

	noteType := req.Type
	if noteType == "" {
		noteType = domain.NoteTypeOther
	}

	note := &domain.Note{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Content:   req.Content,
		Type:      noteType,
		Tags:      req.Tags,
		Color:     req.Color,
		CreatedAt: now,
		UpdatedAt: now,
		ProjectID: req.ProjectID,
		TaskID:    req.TaskID,
		ClientID:  req.ClientID,
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}

	if err := r.modes.Backend().PutNote(ctx, note); err != nil {
		r.fail("failed to create note", err)
		return nil, err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return nil, err
	}

	r.logger.WithField("note_id", note.ID).Info("ノートを作成しました")
	return note, nil
}

// Update merges a partial update into the stored note and reloads
func (r *NoteRepository) Update(ctx context.Context, id string, req domain.UpdateNoteRequest) error {
	backend := r.modes.Backend()

	existing, err := r.find(ctx, backend, id)
	if err != nil {
		return err
	}

	updated := *existing
	if req.Title != nil {
		updated.Title = *req.Title
	}
	if req.Content != nil {
		updated.Content = *req.Content
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.Tags != nil {
		updated.Tags = req.Tags
	}
	if req.Color != nil {
		updated.Color = *req.Color
	}
	if req.ProjectID != nil {
		updated.ProjectID = *req.ProjectID
	}
	if req.TaskID != nil {
		updated.TaskID = *req.TaskID
	}
	if req.ClientID != nil {
		updated.ClientID = *req.ClientID
	}
	updated.UpdatedAt = time.Now()

	if err := backend.PutNote(ctx, &updated); err != nil {
		r.fail("failed to update note", err)
		return err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return err
	}

	r.logger.WithField("note_id", id).Info("ノートを更新しました")
	return nil
}

// Archive hides a note from default views without deleting it
func (r *NoteRepository) Archive(ctx context.Context, id string) error {
	return r.setArchived(ctx, id, true)
}

// Restore returns an archived note to default views
func (r *NoteRepository) Restore(ctx context.Context, id string) error {
	return r.setArchived(ctx, id, false)
}

func (r *NoteRepository) setArchived(ctx context.Context, id string, archived bool) error {
	backend := r.modes.Backend()

	existing, err := r.find(ctx, backend, id)
	if err != nil {
		return err
	}

	updated := *existing
	updated.Archived = archived
	if archived {
		now := time.Now()
		updated.ArchivedAt = &now
	} else {
		updated.ArchivedAt = nil
	}
	updated.UpdatedAt = time.Now()

	if err := backend.PutNote(ctx, &updated); err != nil {
		r.fail("failed to archive note", err)
		return err
	}
	_, err = r.LoadAll(ctx)
	return err
}

// Delete permanently removes a note and reloads the collection
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	if err := r.modes.Backend().DeleteNote(ctx, id); err != nil {
		r.fail("failed to delete note", err)
		return err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return err
	}

	r.logger.WithField("note_id", id).Info("ノートを削除しました")
	return nil
}

func (r *NoteRepository) find(ctx context.Context, backend domain.Backend, id string) (*domain.Note, error) {
	notes, err := backend.ListNotes(ctx)
	if err != nil {
		r.fail("failed to load notes", err)
		return nil, err
	}
	for i := range notes {
		if notes[i].ID == id {
			return &notes[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *NoteRepository) fail(msg string, err error) {
	r.mu.Lock()
	r.lastErr = msg + ": " + err.Error()
	r.mu.Unlock()
	r.logger.WithError(err).Error("ノートリポジトリの操作に失敗")
}
