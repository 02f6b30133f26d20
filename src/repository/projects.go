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

// ProjectRepository is the sole authorized mutator of the project collection
type ProjectRepository struct {
	modes  *datamode.Selector
	logger *logrus.Logger

	mu       sync.RWMutex
	projects []domain.Project
	lastErr  string
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(modes *datamode.Selector, logger *logrus.Logger) *ProjectRepository {
	return &ProjectRepository{modes: modes, logger: logger}
}

// LoadAll reloads the full collection from the active backend
func (r *ProjectRepository) LoadAll(ctx context.Context) ([]domain.Project, error) {
	projects, err := r.modes.Backend().ListProjects(ctx)
	if err != nil {
		r.fail("failed to load projects", err)
		return nil, err
	}

	r.mu.Lock()
	r.projects = projects
	r.lastErr = ""
	r.mu.Unlock()
	return projects, nil
}

// Projects returns the last successfully loaded collection
func (r *ProjectRepository) Projects() []domain.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Project, len(r.projects))
	copy(out, r.projects)
	return out
}

// LastError returns the recorded error message, empty when healthy
func (r *ProjectRepository) LastError() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// Create persists a new project and reloads the collection
func (r *ProjectRepository) Create(ctx context.Context, req domain.CreateProjectRequest) (*domain.Project, error) {
	now := time.Now()

	status := req.Status
	if status == "" {
		status = domain.ProjectStatusPlanning
	}

	project := &domain.Project{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		ClientID:    req.ClientID,
		Status:      status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		Color:       req.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
		Tags:        req.Tags,
		Tasks:       []string{},
	}
	if project.Tags == nil {
		project.Tags = []string{}
	}

	if err := r.modes.Backend().PutProject(ctx, project); err != nil {
		r.fail("failed to create project", err)
		return nil, err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return nil, err
	}

	r.logger.WithField("project_id", project.ID).Info("プロジェクトを作成しました")
	return project, nil
}

// Update merges a partial update into the stored project and reloads
func (r *ProjectRepository) Update(ctx context.Context, id string, req domain.UpdateProjectRequest) error {
	backend := r.modes.Backend()

	existing, err := r.find(ctx, backend, id)
	if err != nil {
		return err
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.ClientID != nil {
		updated.ClientID = *req.ClientID
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	if req.StartDate != nil {
		updated.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		updated.EndDate = req.EndDate
	}
	if req.CompletedAt != nil {
		updated.CompletedAt = req.CompletedAt
	}
	if req.Budget != nil {
		updated.Budget = req.Budget
	}
	if req.Color != nil {
		updated.Color = *req.Color
	}
	if req.Tags != nil {
		updated.Tags = req.Tags
	}
	updated.UpdatedAt = time.Now()

	if err := backend.PutProject(ctx, &updated); err != nil {
		r.fail("failed to update project", err)
		return err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return err
	}

	r.logger.WithField("project_id", id).Info("プロジェクトを更新しました")
	return nil
}

// UpdateStatus transitions a project's status
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) error {
	return r.Update(ctx, id, domain.UpdateProjectRequest{Status: &status})
}

// Delete removes a project and cascades to its tasks.
// カスケードはトランザクションではない。途中で失敗した場合は
// 既に削除した分はそのままでエラーを返す
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	backend := r.modes.Backend()

	if err := backend.DeleteTasksByProject(ctx, id); err != nil {
		r.fail("failed to delete project tasks", err)
		return err
	}
	if err := backend.DeleteProject(ctx, id); err != nil {
		r.fail("failed to delete project", err)
		return err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return err
	}

	r.logger.WithField("project_id", id).Info("プロジェクトと所属タスクを削除しました")
	return nil
}

// AddTask records a weak task reference on a project
func (r *ProjectRepository) AddTask(ctx context.Context, projectID, taskID string) error {
	backend := r.modes.Backend()

	project, err := r.find(ctx, backend, projectID)
	if err != nil {
		return err
	}
	for _, existing := range project.Tasks {
		if existing == taskID {
			return nil
		}
	}

	updated := *project
	updated.Tasks = append(append([]string{}, project.Tasks...), taskID)
	updated.UpdatedAt = time.Now()

	if err := backend.PutProject(ctx, &updated); err != nil {
		r.fail("failed to add task to project", err)
		return err
	}
	_, err = r.LoadAll(ctx)
	return err
}

// RemoveTask drops a weak task reference from a project
func (r *ProjectRepository) RemoveTask(ctx context.Context, projectID, taskID string) error {
	backend := r.modes.Backend()

	project, err := r.find(ctx, backend, projectID)
	if err != nil {
		return err
	}

	updated := *project
	updated.Tasks = make([]string, 0, len(project.Tasks))
	for _, existing := range project.Tasks {
		if existing != taskID {
			updated.Tasks = append(updated.Tasks, existing)
		}
	}
	updated.UpdatedAt = time.Now()

	if err := backend.PutProject(ctx, &updated); err != nil {
		r.fail("failed to remove task from project", err)
		return err
	}
	_, err = r.LoadAll(ctx)
	return err
}

func (r *ProjectRepository) find(ctx context.Context, backend domain.Backend, id string) (*domain.Project, error) {
	projects, err := backend.ListProjects(ctx)
	if err != nil {
		r.fail("failed to load projects", err)
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *ProjectRepository) fail(msg string, err error) {
	r.mu.Lock()
	r.lastErr = msg + ": " + err.Error()
	r.mu.Unlock()
	r.logger.WithError(err).Error("プロジェクトリポジトリの操作に失敗")
}
