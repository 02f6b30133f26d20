package clouddb

import (
	"context"
	"encoding/json"
	"fmt"

	"taskman-app/src/domain"
)

// ListTasks returns all tasks in the user's namespace ascending by creation time
func (s *Scope) ListTasks(ctx context.Context) ([]domain.Task, error) {
	docs, err := s.listDocs(ctx, colTasks)
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		var t domain.Task
		if err := json.Unmarshal(doc, &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// PutTask writes a task document
func (s *Scope) PutTask(ctx context.Context, task *domain.Task) error {
	doc, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}
	return s.putDoc(ctx, colTasks, task.ID, doc, task.CreatedAt, task.UpdatedAt)
}

// DeleteTask removes a task document
func (s *Scope) DeleteTask(ctx context.Context, id string) error {
	return s.deleteDoc(ctx, colTasks, id)
}

// DeleteTasksByProject removes all task documents referencing a project
func (s *Scope) DeleteTasksByProject(ctx context.Context, projectID string) error {
	return s.deleteDocsByField(ctx, colTasks, "project_id", projectID)
}
