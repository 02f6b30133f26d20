package domain

import (
	"time"
)

// FileAttachment represents an uploaded file.
// URL is either an inline data URI (local mode) or an object storage
// reference (cloud mode).
type FileAttachment struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type"`
	URL        string    `json:"url"`
	TaskID     string    `json:"task_id,omitempty"`
	ProjectID  string    `json:"project_id,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// UploadFileRequest represents input for uploading a file
type UploadFileRequest struct {
	Name      string
	MimeType  string
	Content   []byte
	TaskID    string
	ProjectID string
}
