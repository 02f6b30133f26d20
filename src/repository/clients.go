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

// ClientRepository is the sole authorized mutator of the client collection
type ClientRepository struct {
	modes  *datamode.Selector
	logger *logrus.Logger

	mu      sync.RWMutex
	clients []domain.Client
	lastErr string
}

// NewClientRepository creates a new client repository
func NewClientRepository(modes *datamode.Selector, logger *logrus.Logger) *ClientRepository {
	return &ClientRepository{modes: modes, logger: logger}
}

// LoadAll reloads the full collection from the active backend.
// アーカイブ済みも含めた全件を返す
func (r *ClientRepository) LoadAll(ctx context.Context) ([]domain.Client, error) {
	clients, err := r.modes.Backend().ListClients(ctx)
	if err != nil {
		r.fail("failed to load clients", err)
		return nil, err
	}

	r.mu.Lock()
	r.clients = clients
	r.lastErr = ""
	r.mu.Unlock()
	return clients, nil
}

// Clients returns the last successfully loaded collection
func (r *ClientRepository) Clients() []domain.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Client, len(r.clients))
	copy(out, r.clients)
	return out
}

// Active returns non-archived clients from the loaded collection
func (r *ClientRepository) Active() []domain.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		if !c.Archived {
			out = append(out, c)
		}
	}
	return out
}

// LastError returns the recorded error message, empty when healthy
func (r *ClientRepository) LastError() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// Create persists a new client and reloads the collection
func (r *ClientRepository) Create(ctx context.Context, req domain.CreateClientRequest) (*domain.Client, error) {
	now := time.Now()

	client := &domain.Client{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
		Projects:  []string{},
		Tags:      req.Tags,
	}

	if err := r.modes.Backend().PutClient(ctx, client); err != nil {
		r.fail("failed to create client", err)
		return nil, err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return nil, err
	}

	r.logger.WithField("client_id", client.ID).Info("クライアントを作成しました")
	return client, nil
}

// Update merges a partial update into the stored client and reloads
func (r *ClientRepository) Update(ctx context.Context, id string, req domain.UpdateClientRequest) error {
	backend := r.modes.Backend()

	existing, err := r.find(ctx, backend, id)
	if err != nil {
		return err
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.Phone != nil {
		updated.Phone = *req.Phone
	}
	if req.Company != nil {
		updated.Company = *req.Company
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if req.Tags != nil {
		updated.Tags = req.Tags
	}
	updated.UpdatedAt = time.Now()

	if err := backend.PutClient(ctx, &updated); err != nil {
		r.fail("failed to update client", err)
		return err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return err
	}

	r.logger.WithField("client_id", id).Info("クライアントを更新しました")
	return nil
}

// Archive hides a client from default views without deleting it
func (r *ClientRepository) Archive(ctx context.Context, id string) error {
	return r.setArchived(ctx, id, true)
}

// Restore returns an archived client to default views
func (r *ClientRepository) Restore(ctx context.Context, id string) error {
	return r.setArchived(ctx, id, false)
}

func (r *ClientRepository) setArchived(ctx context.Context, id string, archived bool) error {
	backend := r.modes.Backend()

	existing, err := r.find(ctx, backend, id)
	if err != nil {
		return err
	}

	updated := *existing
	updated.Archived = archived
	if archived {
		now := time.Now()
		updated.ArchivedAt = &now
	} else {
		updated.ArchivedAt = nil
	}
	updated.UpdatedAt = time.Now()

	if err := backend.PutClient(ctx, &updated); err != nil {
		r.fail("failed to archive client", err)
		return err
	}
	_, err = r.LoadAll(ctx)
	return err
}

// Delete removes a client and cascades: tasks of each owned project first,
// then the projects, then the client itself.
// カスケードはトランザクションではない。途中失敗時は部分削除が残る
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	backend := r.modes.Backend()

	projects, err := backend.ListProjectsByClient(ctx, id)
	if err != nil {
		r.fail("failed to load client projects", err)
		return err
	}

	for _, project := range projects {
		if err := backend.DeleteTasksByProject(ctx, project.ID); err != nil {
			r.fail("failed to delete project tasks", err)
			return err
		}
		if err := backend.DeleteProject(ctx, project.ID); err != nil {
			r.fail("failed to delete project", err)
			return err
		}
	}

	if err := backend.DeleteClient(ctx, id); err != nil {
		r.fail("failed to delete client", err)
		return err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"client_id": id,
		"projects":  len(projects),
	}).Info("クライアントと関連データを削除しました")
	return nil
}

// AddProject records a weak project reference on a client
func (r *ClientRepository) AddProject(ctx context.Context, clientID, projectID string) error {
	backend := r.modes.Backend()

	client, err := r.find(ctx, backend, clientID)
	if err != nil {
		return err
	}
	for _, existing := range client.Projects {
		if existing == projectID {
			return nil
		}
	}

	updated := *client
	updated.Projects = append(append([]string{}, client.Projects...), projectID)
	updated.UpdatedAt = time.Now()

	if err := backend.PutClient(ctx, &updated); err != nil {
		r.fail("failed to add project to client", err)
		return err
	}
	_, err = r.LoadAll(ctx)
	return err
}

func (r *ClientRepository) find(ctx context.Context, backend domain.Backend, id string) (*domain.Client, error) {
	clients, err := backend.ListClients(ctx)
	if err != nil {
		r.fail("failed to load clients", err)
		return nil, err
	}
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *ClientRepository) fail(msg string, err error) {
	r.mu.Lock()
	r.lastErr = msg + ": " + err.Error()
	r.mu.Unlock()
	r.logger.WithError(err).Error("クライアントリポジトリの操作に失敗")
}
