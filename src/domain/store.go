package domain

import "context"

// TaskStore defines backend operations for the task collection
type TaskStore interface {
	ListTasks(ctx context.Context) ([]Task, error)
	PutTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id string) error
	DeleteTasksByProject(ctx context.Context, projectID string) error
}

// ProjectStore defines backend operations for the project collection
type ProjectStore interface {
	ListProjects(ctx context.Context) ([]Project, error)
	ListProjectsByClient(ctx context.Context, clientID string) ([]Project, error)
	PutProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, id string) error
}

// ClientStore defines backend operations for the client collection
type ClientStore interface {
	ListClients(ctx context.Context) ([]Client, error)
	PutClient(ctx context.Context, client *Client) error
	DeleteClient(ctx context.Context, id string) error
}

// PaymentStore defines backend operations for the payment collection
type PaymentStore interface {
	ListPayments(ctx context.Context) ([]Payment, error)
	PutPayment(ctx context.Context, payment *Payment) error
	DeletePayment(ctx context.Context, id string) error
}

// NoteStore defines backend operations for the note collection
type NoteStore interface {
	ListNotes(ctx context.Context) ([]Note, error)
	PutNote(ctx context.Context, note *Note) error
	DeleteNote(ctx context.Context, id string) error
}

// FileStore defines backend operations for the file attachment collection
type FileStore interface {
	ListFiles(ctx context.Context) ([]FileAttachment, error)
	PutFile(ctx context.Context, file *FileAttachment) error
	DeleteFile(ctx context.Context, id string) error
}

// Backend is the full store surface a repository set targets.
// ローカル(sqlite)とクラウド(Postgres)の両方が実装する。
type Backend interface {
	TaskStore
	ProjectStore
	ClientStore
	PaymentStore
	NoteStore
	FileStore
}
