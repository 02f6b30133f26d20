package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"taskman-app/src/datamode"
	"taskman-app/src/domain"
)

// TaskRepository is the sole authorized mutator of the task collection.
// ミューテーション後は必ず全件リロードし、メモリ上のビューが
// バックエンドの永続表現と食い違わないようにする
type TaskRepository struct {
	modes  *datamode.Selector
	logger *logrus.Logger

	mu      sync.RWMutex
	tasks   []domain.Task
	lastErr string
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(modes *datamode.Selector, logger *logrus.Logger) *TaskRepository {
	return &TaskRepository{modes: modes, logger: logger}
}

// LoadAll reloads the full collection from the active backend, ascending
// by creation time. On failure the previous collection is kept and the
// error message is recorded for display.
func (r *TaskRepository) LoadAll(ctx context.Context) ([]domain.Task, error) {
	tasks, err := r.modes.Backend().ListTasks(ctx)
	if err != nil {
		r.fail("failed to load tasks", err)
		return nil, err
	}

	r.mu.Lock()
	r.tasks = tasks
	r.lastErr = ""
	r.mu.Unlock()
	return tasks, nil
}

// Tasks returns the last successfully loaded collection
func (r *TaskRepository) Tasks() []domain.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// LastError returns the recorded error message, empty when healthy
func (r *TaskRepository) LastError() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// Create persists a new task and reloads the collection
func (r *TaskRepository) Create(ctx context.Context, req domain.CreateTaskRequest) (*domain.Task, error) {
	now := time.Now()

	status := req.Status
	if status == "" {
		status = domain.TaskStatusNew
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	task := &domain.Task{
		ID:             uuid.New().String(),
		Title:          req.Title,
		Description:    req.Description,
		Status:         status,
		Priority:       priority,
		ProjectID:      req.ProjectID,
		ClientID:       req.ClientID,
		DueDate:        req.DueDate,
		CreatedAt:      now,
		UpdatedAt:      now,
		Tags:           req.Tags,
		Color:          req.Color,
		Checklist:      req.Checklist,
		Comments:       []domain.Comment{},
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}

	if err := r.modes.Backend().PutTask(ctx, task); err != nil {
		r.fail("failed to create task", err)
		return nil, err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return nil, err
	}

	r.logger.WithField("task_id", task.ID).Info("タスクを作成しました")
	return task, nil
}

// Update merges a partial update into the stored task and reloads.
// ステータスがcompletedに遷移するとCompletedAtを設定し、
// completedから離れるとクリアする
func (r *TaskRepository) Update(ctx context.Context, id string, req domain.UpdateTaskRequest) error {
	backend := r.modes.Backend()

	existing, err := r.find(ctx, backend, id)
	if err != nil {
		return err
	}

	updated := *existing
	if req.Title != nil {
		updated.Title = *req.Title
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Priority != nil {
		updated.Priority = *req.Priority
	}
	if req.ProjectID != nil {
		updated.ProjectID = *req.ProjectID
	}
	if req.ClientID != nil {
		updated.ClientID = *req.ClientID
	}
	if req.DueDate != nil {
		updated.DueDate = req.DueDate
	}
	if req.Tags != nil {
		updated.Tags = req.Tags
	}
	if req.Color != nil {
		updated.Color = *req.Color
	}
	if req.Checklist != nil {
		updated.Checklist = req.Checklist
	}
	if req.EstimatedHours != nil {
		updated.EstimatedHours = req.EstimatedHours
	}
	if req.ActualHours != nil {
		updated.ActualHours = req.ActualHours
	}
	if req.Status != nil {
		updated.Status = *req.Status
		if updated.Status == domain.TaskStatusCompleted {
			if updated.CompletedAt == nil {
				now := time.Now()
				updated.CompletedAt = &now
			}
		} else {
			updated.CompletedAt = nil
		}
	}
	updated.UpdatedAt = time.Now()

	if err := backend.PutTask(ctx, &updated); err != nil {
		r.fail("failed to update task", err)
		return err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return err
	}

	r.logger.WithField("task_id", id).Info("タスクを更新しました")
	return nil
}

// UpdateStatus transitions a task's status
func (r *TaskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	return r.Update(ctx, id, domain.UpdateTaskRequest{Status: &status})
}

// Delete removes a task and reloads the collection
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if err := r.modes.Backend().DeleteTask(ctx, id); err != nil {
		r.fail("failed to delete task", err)
		return err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return err
	}

	r.logger.WithField("task_id", id).Info("タスクを削除しました")
	return nil
}

// AddComment appends a comment to a task
func (r *TaskRepository) AddComment(ctx context.Context, taskID, text, author string, kind domain.CommentKind) (*domain.Comment, error) {
	backend := r.modes.Backend()

	task, err := r.find(ctx, backend, taskID)
	if err != nil {
		return nil, err
	}

	if kind == "" {
		kind = domain.CommentKindComment
	}
	comment := domain.Comment{
		ID:        uuid.New().String(),
		Text:      text,
		Author:    author,
		CreatedAt: time.Now(),
		Kind:      kind,
	}

	updated := *task
	updated.Comments = append(append([]domain.Comment{}, task.Comments...), comment)
	updated.UpdatedAt = time.Now()

	if err := backend.PutTask(ctx, &updated); err != nil {
		r.fail("failed to add comment", err)
		return nil, err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return nil, err
	}
	return &comment, nil
}

// AddChecklistItem appends a checklist item to a task
func (r *TaskRepository) AddChecklistItem(ctx context.Context, taskID, text string) (*domain.ChecklistItem, error) {
	backend := r.modes.Backend()

	task, err := r.find(ctx, backend, taskID)
	if err != nil {
		return nil, err
	}

	item := domain.ChecklistItem{
		ID:        uuid.New().String(),
		Text:      text,
		Completed: false,
		CreatedAt: time.Now(),
	}

	updated := *task
	updated.Checklist = append(append([]domain.ChecklistItem{}, task.Checklist...), item)
	updated.UpdatedAt = time.Now()

	if err := backend.PutTask(ctx, &updated); err != nil {
		r.fail("failed to add checklist item", err)
		return nil, err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return nil, err
	}
	return &item, nil
}

// ToggleChecklistItem flips the completed flag of a checklist item
func (r *TaskRepository) ToggleChecklistItem(ctx context.Context, taskID, itemID string) error {
	backend := r.modes.Backend()

	task, err := r.find(ctx, backend, taskID)
	if err != nil {
		return err
	}

	updated := *task
	updated.Checklist = append([]domain.ChecklistItem{}, task.Checklist...)

	found := false
	for i := range updated.Checklist {
		if updated.Checklist[i].ID == itemID {
			updated.Checklist[i].Completed = !updated.Checklist[i].Completed
			found = true
			break
		}
	}
	if !found {
		return domain.ErrNotFound
	}
	updated.UpdatedAt = time.Now()

	if err := backend.PutTask(ctx, &updated); err != nil {
		r.fail("failed to toggle checklist item", err)
		return err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return err
	}
	return nil
}

func (r *TaskRepository) find(ctx context.Context, backend domain.Backend, id string) (*domain.Task, error) {
	tasks, err := backend.ListTasks(ctx)
	if err != nil {
		r.fail("failed to load tasks", err)
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *TaskRepository) fail(msg string, err error) {
	r.mu.Lock()
	r.lastErr = msg + ": " + err.Error()
	r.mu.Unlock()
	r.logger.WithError(err).Error("タスクリポジトリの操作に失敗")
}

// FilterTasks applies in-memory filter criteria to a loaded collection
func FilterTasks(tasks []domain.Task, f domain.TaskFilter) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if len(f.Status) > 0 && !containsTaskStatus(f.Status, t.Status) {
			continue
		}
		if len(f.Priority) > 0 && !containsPriority(f.Priority, t.Priority) {
			continue
		}
		if f.ProjectID != "" && t.ProjectID != f.ProjectID {
			continue
		}
		if f.ClientID != "" && t.ClientID != f.ClientID {
			continue
		}
		if f.Search != "" && !matchesSearch(&t, f.Search) {
			continue
		}
		if len(f.Tags) > 0 && !hasAnyTag(t.Tags, f.Tags) {
			continue
		}
		if f.DueFrom != nil && (t.DueDate == nil || t.DueDate.Before(*f.DueFrom)) {
			continue
		}
		if f.DueTo != nil && (t.DueDate == nil || t.DueDate.After(*f.DueTo)) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func containsTaskStatus(list []domain.TaskStatus, s domain.TaskStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsPriority(list []domain.Priority, p domain.Priority) bool {
	for _, v := range list {
		if v == p {
			return true
		}
	}
	return false
}

func matchesSearch(t *domain.Task, search string) bool {
	term := strings.ToLower(search)
	if strings.Contains(strings.ToLower(t.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), term) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func hasAnyTag(tags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range tags {
			if t == w {
				return true
			}
		}
	}
	return false
}
