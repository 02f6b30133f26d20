package domain

import (
	"time"
)

// Note represents a note domain entity
type Note struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Type       NoteType   `json:"type"`
	Tags       []string   `json:"tags"`
	Color      string     `json:"color,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ProjectID  string     `json:"project_id,omitempty"`
	TaskID     string     `json:"task_id,omitempty"`
	ClientID   string     `json:"client_id,omitempty"`
	Archived   bool       `json:"archived,omitempty"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

// NoteType represents note categories
type NoteType string

const (
	NoteTypeIdea     NoteType = "idea"
	NoteTypeReminder NoteType = "reminder"
	NoteTypeLink     NoteType = "link"
	NoteTypeBook     NoteType = "book"
	NoteTypeSeries   NoteType = "series"
	NoteTypeOther    NoteType = "other"
)

// IsValid validates if the note type is valid
func (t NoteType) IsValid() bool {
	switch t {
	case NoteTypeIdea, NoteTypeReminder, NoteTypeLink, NoteTypeBook, NoteTypeSeries, NoteTypeOther:
		return true
	default:
		return false
	}
}

// String returns string representation of NoteType
func (t NoteType) String() string {
	return string(t)
}

// CreateNoteRequest represents input for creating a note
type CreateNoteRequest struct {
	Title     string
	Content   string
	Type      NoteType
	Tags      []string
	Color     string
	ProjectID string
	TaskID    string
	ClientID  string
}

// UpdateNoteRequest represents a partial update for a note
type UpdateNoteRequest struct {
	Title     *string
	Content   *string
	Type      *NoteType
	Tags      []string
	Color     *string
	ProjectID *string
	TaskID    *string
	ClientID  *string
}
