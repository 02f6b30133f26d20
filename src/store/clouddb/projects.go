package clouddb

import (
	"context"
	"encoding/json"
	"fmt"

	"taskman-app/src/domain"
)

// ListProjects returns all projects in the user's namespace ascending by creation time
func (s *Scope) ListProjects(ctx context.Context) ([]domain.Project, error) {
	docs, err := s.listDocs(ctx, colProjects)
	if err != nil {
		return nil, err
	}
	return unmarshalProjects(docs)
}

// ListProjectsByClient returns projects referencing a client
func (s *Scope) ListProjectsByClient(ctx context.Context, clientID string) ([]domain.Project, error) {
	docs, err := s.listDocsByField(ctx, colProjects, "client_id", clientID)
	if err != nil {
		return nil, err
	}
	return unmarshalProjects(docs)
}

func unmarshalProjects(docs [][]byte) ([]domain.Project, error) {
	projects := make([]domain.Project, 0, len(docs))
	for _, doc := range docs {
		var p domain.Project
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// PutProject writes a project document
func (s *Scope) PutProject(ctx context.Context, project *domain.Project) error {
	doc, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	return s.putDoc(ctx, colProjects, project.ID, doc, project.CreatedAt, project.UpdatedAt)
}

// DeleteProject removes a project document
func (s *Scope) DeleteProject(ctx context.Context, id string) error {
	return s.deleteDoc(ctx, colProjects, id)
}
