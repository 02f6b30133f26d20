package domain

import (
	"time"
)

// Project represents a project domain entity.
// Tasks holds weak references to task IDs; the task collection is the
// source of truth for task existence.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	ClientID    string        `json:"client_id,omitempty"`
	Status      ProjectStatus `json:"status"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	Budget      *float64      `json:"budget,omitempty"`
	Color       string        `json:"color,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Tags        []string      `json:"tags"`
	Tasks       []string      `json:"tasks"`
}

// ProjectStatus represents project lifecycle states
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// IsValid validates if the project status is valid
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold,
		ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	default:
		return false
	}
}

// String returns string representation of ProjectStatus
func (s ProjectStatus) String() string {
	return string(s)
}

// CreateProjectRequest represents input for creating a project
type CreateProjectRequest struct {
	Name        string
	Description string
	ClientID    string
	Status      ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
	Color       string
	Tags        []string
}

// UpdateProjectRequest represents a partial update for a project
type UpdateProjectRequest struct {
	Name        *string
	Description *string
	ClientID    *string
	Status      *ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	CompletedAt *time.Time
	Budget      *float64
	Color       *string
	Tags        []string
}
