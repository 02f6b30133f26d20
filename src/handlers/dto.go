package handlers

import (
	"time"
)

// ErrorResponseDTO represents HTTP error response
type ErrorResponseDTO struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CreateTaskRequestDTO represents HTTP request for creating a task
type CreateTaskRequestDTO struct {
	Title          string     `json:"title" binding:"required,max=200,min=1" validate:"required,max=200,min=1,safe_text,no_sql_injection"`
	Description    string     `json:"description" validate:"omitempty,safe_text"`
	Status         string     `json:"status" binding:"omitempty,oneof=new in_progress review completed cancelled on_hold"`
	Priority       string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	ProjectID      string     `json:"project_id" binding:"omitempty,uuid"`
	ClientID       string     `json:"client_id" binding:"omitempty,uuid"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Tags           []string   `json:"tags" validate:"omitempty,dive,max=30,safe_tag"`
	Color          string     `json:"color" binding:"max=30"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty" binding:"omitempty,min=0"`
}

// UpdateTaskRequestDTO represents HTTP request for updating a task
type UpdateTaskRequestDTO struct {
	Title          *string    `json:"title,omitempty" binding:"omitempty,max=200,min=1" validate:"omitempty,max=200,min=1,safe_text,no_sql_injection"`
	Description    *string    `json:"description,omitempty" validate:"omitempty,safe_text"`
	Status         *string    `json:"status,omitempty" binding:"omitempty,oneof=new in_progress review completed cancelled on_hold"`
	Priority       *string    `json:"priority,omitempty" binding:"omitempty,oneof=low medium high urgent"`
	ProjectID      *string    `json:"project_id,omitempty"`
	ClientID       *string    `json:"client_id,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Tags           []string   `json:"tags,omitempty" validate:"omitempty,dive,max=30,safe_tag"`
	Color          *string    `json:"color,omitempty" binding:"omitempty,max=30"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty" binding:"omitempty,min=0"`
	ActualHours    *float64   `json:"actual_hours,omitempty" binding:"omitempty,min=0"`
}

// UpdateStatusRequestDTO represents a status transition request
type UpdateStatusRequestDTO struct {
	Status string `json:"status" binding:"required"`
}

// AddCommentRequestDTO represents HTTP request for adding a task comment
type AddCommentRequestDTO struct {
	Text   string `json:"text" binding:"required,min=1" validate:"required,min=1,safe_text,no_sql_injection"`
	Author string `json:"author" binding:"max=100"`
	Kind   string `json:"kind" binding:"omitempty,oneof=comment status_change assignment"`
}

// AddChecklistItemRequestDTO represents HTTP request for adding a checklist item
type AddChecklistItemRequestDTO struct {
	Text string `json:"text" binding:"required,min=1,max=500" validate:"required,min=1,max=500,safe_text"`
}

// CreateProjectRequestDTO represents HTTP request for creating a project
type CreateProjectRequestDTO struct {
	Name        string     `json:"name" binding:"required,max=200,min=1" validate:"required,max=200,min=1,safe_text,no_sql_injection"`
	Description string     `json:"description" validate:"omitempty,safe_text"`
	ClientID    string     `json:"client_id" binding:"omitempty,uuid"`
	Status      string     `json:"status" binding:"omitempty,oneof=planning active on_hold completed cancelled"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Budget      *float64   `json:"budget,omitempty" binding:"omitempty,min=0"`
	Color       string     `json:"color" binding:"max=30"`
	Tags        []string   `json:"tags" validate:"omitempty,dive,max=30,safe_tag"`
}

// UpdateProjectRequestDTO represents HTTP request for updating a project
type UpdateProjectRequestDTO struct {
	Name        *string    `json:"name,omitempty" binding:"omitempty,max=200,min=1" validate:"omitempty,max=200,min=1,safe_text,no_sql_injection"`
	Description *string    `json:"description,omitempty" validate:"omitempty,safe_text"`
	ClientID    *string    `json:"client_id,omitempty"`
	Status      *string    `json:"status,omitempty" binding:"omitempty,oneof=planning active on_hold completed cancelled"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Budget      *float64   `json:"budget,omitempty" binding:"omitempty,min=0"`
	Color       *string    `json:"color,omitempty" binding:"omitempty,max=30"`
	Tags        []string   `json:"tags,omitempty" validate:"omitempty,dive,max=30,safe_tag"`
}

// CreateClientRequestDTO represents HTTP request for creating a client
type CreateClientRequestDTO struct {
	Name    string   `json:"name" binding:"required,max=200,min=1" validate:"required,max=200,min=1,safe_text,no_sql_injection"`
	Email   string   `json:"email" binding:"omitempty,email"`
	Phone   string   `json:"phone" binding:"max=50"`
	Company string   `json:"company" binding:"max=200" validate:"omitempty,safe_text"`
	Notes   string   `json:"notes" validate:"omitempty,safe_text"`
	Tags    []string `json:"tags" validate:"omitempty,dive,max=30,safe_tag"`
}

// UpdateClientRequestDTO represents HTTP request for updating a client
type UpdateClientRequestDTO struct {
	Name    *string  `json:"name,omitempty" binding:"omitempty,max=200,min=1" validate:"omitempty,max=200,min=1,safe_text,no_sql_injection"`
	Email   *string  `json:"email,omitempty" binding:"omitempty,email"`
	Phone   *string  `json:"phone,omitempty" binding:"omitempty,max=50"`
	Company *string  `json:"company,omitempty" binding:"omitempty,max=200" validate:"omitempty,safe_text"`
	Notes   *string  `json:"notes,omitempty" validate:"omitempty,safe_text"`
	Tags    []string `json:"tags,omitempty" validate:"omitempty,dive,max=30,safe_tag"`
}

// CreatePaymentRequestDTO represents HTTP request for creating a payment
type CreatePaymentRequestDTO struct {
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	Description string     `json:"description" binding:"required,min=1" validate:"required,min=1,safe_text,no_sql_injection"`
	Type        string     `json:"type" binding:"required,oneof=income expense"`
	ProjectID   string     `json:"project_id" binding:"omitempty,uuid"`
	ClientID    string     `json:"client_id" binding:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	PaidDate    *time.Time `json:"paid_date,omitempty"`
	Status      string     `json:"status" binding:"omitempty,oneof=pending paid overdue cancelled"`
	Category    string     `json:"category" binding:"max=50" validate:"omitempty,max=50,safe_category"`
	Tags        []string   `json:"tags" validate:"omitempty,dive,max=30,safe_tag"`
}

// UpdatePaymentRequestDTO represents HTTP request for updating a payment
type UpdatePaymentRequestDTO struct {
	Amount      *float64   `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Description *string    `json:"description,omitempty" binding:"omitempty,min=1" validate:"omitempty,min=1,safe_text,no_sql_injection"`
	Type        *string    `json:"type,omitempty" binding:"omitempty,oneof=income expense"`
	ProjectID   *string    `json:"project_id,omitempty"`
	ClientID    *string    `json:"client_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	PaidDate    *time.Time `json:"paid_date,omitempty"`
	Status      *string    `json:"status,omitempty" binding:"omitempty,oneof=pending paid overdue cancelled"`
	Category    *string    `json:"category,omitempty" binding:"omitempty,max=50" validate:"omitempty,max=50,safe_category"`
	Tags        []string   `json:"tags,omitempty" validate:"omitempty,dive,max=30,safe_tag"`
}

// MarkPaidRequestDTO represents HTTP request for marking a payment as paid
type MarkPaidRequestDTO struct {
	PaidDate *time.Time `json:"paid_date,omitempty"`
}

// CreateNoteRequestDTO represents HTTP request for creating a note
type CreateNoteRequestDTO struct {
	Title     string   `json:"title" binding:"required,max=200,min=1" validate:"required,max=200,min=1,safe_text,no_sql_injection"`
	Content   string   `json:"content" validate:"omitempty,safe_text"`
	Type      string   `json:"type" binding:"omitempty,oneof=idea reminder link book series other"`
	Tags      []string `json:"tags" validate:"omitempty,dive,max=30,safe_tag"`
	Color     string   `json:"color" binding:"max=30"`
	ProjectID string   `json:"project_id" binding:"omitempty,uuid"`
	TaskID    string   `json:"task_id" binding:"omitempty,uuid"`
	ClientID  string   `json:"client_id" binding:"omitempty,uuid"`
}

// UpdateNoteRequestDTO represents HTTP request for updating a note
type UpdateNoteRequestDTO struct {
	Title     *string  `json:"title,omitempty" binding:"omitempty,max=200,min=1" validate:"omitempty,max=200,min=1,safe_text,no_sql_injection"`
	Content   *string  `json:"content,omitempty" validate:"omitempty,safe_text"`
	Type      *string  `json:"type,omitempty" binding:"omitempty,oneof=idea reminder link book series other"`
	Tags      []string `json:"tags,omitempty" validate:"omitempty,dive,max=30,safe_tag"`
	Color     *string  `json:"color,omitempty" binding:"omitempty,max=30"`
	ProjectID *string  `json:"project_id,omitempty"`
	TaskID    *string  `json:"task_id,omitempty"`
	ClientID  *string  `json:"client_id,omitempty"`
}

// UploadFileRequestDTO represents HTTP request for uploading a file.
// Content is base64-encoded file data.
type UploadFileRequestDTO struct {
	Name      string `json:"name" binding:"required,max=255,min=1" validate:"required,max=255,min=1,safe_text"`
	MimeType  string `json:"mime_type" binding:"max=100"`
	Content   string `json:"content" binding:"required"`
	TaskID    string `json:"task_id" binding:"omitempty,uuid"`
	ProjectID string `json:"project_id" binding:"omitempty,uuid"`
}

// TaskFilterDTO represents HTTP query parameters for filtering tasks
type TaskFilterDTO struct {
	Status    string `form:"status" validate:"omitempty,max=100"`
	Priority  string `form:"priority" validate:"omitempty,max=100"`
	ProjectID string `form:"project_id" validate:"omitempty,max=40"`
	ClientID  string `form:"client_id" validate:"omitempty,max=40"`
	Search    string `form:"search" validate:"omitempty,max=200,safe_text,no_sql_injection"`
	Tags      string `form:"tags" validate:"omitempty,max=200"`
	Sort      string `form:"sort" validate:"omitempty,max=30"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}
