package repository

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"taskman-app/src/datamode"
	"taskman-app/src/domain"
	"taskman-app/src/storage"
)

// FileRepository is the sole authorized mutator of the file attachment collection.
// コンテンツはローカルモードではdata URIとしてインライン保存、
// クラウドモードではオブジェクトストレージに置いてURL参照を保存する
type FileRepository struct {
	modes   *datamode.Selector
	objects *storage.ObjectStorage
	logger  *logrus.Logger

	mu      sync.RWMutex
	files   []domain.FileAttachment
	lastErr string
}

// NewFileRepository creates a new file repository.
// objects may be nil when no object storage is configured.
func NewFileRepository(modes *datamode.Selector, objects *storage.ObjectStorage, logger *logrus.Logger) *FileRepository {
	return &FileRepository{modes: modes, objects: objects, logger: logger}
}

// LoadAll reloads the full collection from the active backend
func (r *FileRepository) LoadAll(ctx context.Context) ([]domain.FileAttachment, error) {
	files, err := r.modes.Backend().ListFiles(ctx)
	if err != nil {
		r.fail("failed to load files", err)
		return nil, err
	}

	r.mu.Lock()
	r.files = files
	r.lastErr = ""
	r.mu.Unlock()
	return files, nil
}

// Files returns the last successfully loaded collection
func (r *FileRepository) Files() []domain.FileAttachment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.FileAttachment, len(r.files))
	copy(out, r.files)
	return out
}

// LastError returns the recorded error message, empty when healthy
func (r *FileRepository) LastError() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// Upload persists a file attachment and reloads the collection.
// コンテンツ全体をメモリに保持するため実用上のサイズは有限
func (r *FileRepository) Upload(ctx context.Context, req domain.UploadFileRequest) (*domain.FileAttachment, error) {
	file := &domain.FileAttachment{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Size:       int64(len(req.Content)),
		MimeType:   req.MimeType,
		TaskID:     req.TaskID,
		ProjectID:  req.ProjectID,
		UploadedAt: time.Now(),
	}

	if r.modes.Mode() == datamode.ModeCloud && r.objects != nil {
		url, err := r.objects.UploadAttachment(file.ID, req.Name, req.MimeType, req.Content)
		if err != nil {
			r.fail("failed to upload file content", err)
			return nil, err
		}
		file.URL = url
	} else {
		file.URL = fmt.Sprintf("data:%s;base64,%s",
			req.MimeType, base64.StdEncoding.EncodeToString(req.Content))
	}

	if err := r.modes.Backend().PutFile(ctx, file); err != nil {
		r.fail("failed to upload file", err)
		return nil, err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"file_id": file.ID,
		"name":    file.Name,
		"size":    file.Size,
	}).Info("ファイルをアップロードしました")
	return file, nil
}

// Delete removes a file attachment and reloads the collection
func (r *FileRepository) Delete(ctx context.Context, id string) error {
	// クラウドモードではオブジェクトストレージ側も片付ける
	if r.modes.Mode() == datamode.ModeCloud && r.objects != nil {
		if err := r.objects.DeleteAttachment(id); err != nil {
			r.logger.WithError(err).WithField("file_id", id).Warn("添付ファイルのオブジェクト削除に失敗")
		}
	}

	if err := r.modes.Backend().DeleteFile(ctx, id); err != nil {
		r.fail("failed to delete file", err)
		return err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return err
	}

	r.logger.WithField("file_id", id).Info("ファイルを削除しました")
	return nil
}

func (r *FileRepository) fail(msg string, err error) {
	r.mu.Lock()
	r.lastErr = msg + ": " + err.Error()
	r.mu.Unlock()
	r.logger.WithError(err).Error("ファイルリポジトリの操作に失敗")
}
