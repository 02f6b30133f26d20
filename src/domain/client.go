package domain

import (
	"time"
)

// Client represents a client domain entity.
// Projects holds weak references to project IDs.
type Client struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Company    string     `json:"company,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Projects   []string   `json:"projects"`
	Tags       []string   `json:"tags,omitempty"`
	Archived   bool       `json:"archived,omitempty"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

// CreateClientRequest represents input for creating a client
type CreateClientRequest struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Notes   string
	Tags    []string
}

// UpdateClientRequest represents a partial update for a client
type UpdateClientRequest struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
	Notes   *string
	Tags    []string
}
