package domain

import (
	"time"
)

// Task represents a task domain entity
type Task struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Status         TaskStatus      `json:"status"`
	Priority       Priority        `json:"priority"`
	ProjectID      string          `json:"project_id,omitempty"`
	ClientID       string          `json:"client_id,omitempty"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	Tags           []string        `json:"tags"`
	Color          string          `json:"color,omitempty"`
	Checklist      []ChecklistItem `json:"checklist,omitempty"`
	Comments       []Comment       `json:"comments"`
	EstimatedHours *float64        `json:"estimated_hours,omitempty"`
	ActualHours    *float64        `json:"actual_hours,omitempty"`
}

// ChecklistItem represents a sub-item of a task's checklist
type ChecklistItem struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment represents a comment attached to a task
type Comment struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Author    string      `json:"author"`
	CreatedAt time.Time   `json:"created_at"`
	Kind      CommentKind `json:"kind"`
}

// TaskStatus represents task lifecycle states
type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "new"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
	TaskStatusOnHold     TaskStatus = "on_hold"
)

// Priority represents task priority levels
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// CommentKind represents the kind of a task comment
type CommentKind string

const (
	CommentKindComment      CommentKind = "comment"
	CommentKindStatusChange CommentKind = "status_change"
	CommentKindAssignment   CommentKind = "assignment"
)

// IsValid validates if the task status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusNew, TaskStatusInProgress, TaskStatusReview,
		TaskStatusCompleted, TaskStatusCancelled, TaskStatusOnHold:
		return true
	default:
		return false
	}
}

// IsValid validates if the priority is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// String returns string representation of TaskStatus
func (s TaskStatus) String() string {
	return string(s)
}

// String returns string representation of Priority
func (p Priority) String() string {
	return string(p)
}

// IsOverdue reports whether the task has a due date in the past and is not completed
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskStatusCompleted {
		return false
	}
	return t.DueDate.Before(now)
}

// CreateTaskRequest represents input for creating a task
type CreateTaskRequest struct {
	Title          string
	Description    string
	Status         TaskStatus
	Priority       Priority
	ProjectID      string
	ClientID       string
	DueDate        *time.Time
	Tags           []string
	Color          string
	Checklist      []ChecklistItem
	EstimatedHours *float64
	ActualHours    *float64
}

// UpdateTaskRequest represents a partial update for a task.
// nilのフィールドは変更しない
type UpdateTaskRequest struct {
	Title          *string
	Description    *string
	Status         *TaskStatus
	Priority       *Priority
	ProjectID      *string
	ClientID       *string
	DueDate        *time.Time
	Tags           []string
	Color          *string
	Checklist      []ChecklistItem
	EstimatedHours *float64
	ActualHours    *float64
}

// TaskFilter represents filter criteria for task queries
type TaskFilter struct {
	Status    []TaskStatus
	Priority  []Priority
	ProjectID string
	ClientID  string
	Search    string
	Tags      []string
	DueFrom   *time.Time
	DueTo     *time.Time
}
