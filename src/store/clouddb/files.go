package clouddb

import (
	"context"
	"encoding/json"
	"fmt"

	"taskman-app/src/domain"
)

// ListFiles returns all file attachments in the user's namespace ascending by upload time
func (s *Scope) ListFiles(ctx context.Context) ([]domain.FileAttachment, error) {
	docs, err := s.listDocs(ctx, colFiles)
	if err != nil {
		return nil, err
	}

	files := make([]domain.FileAttachment, 0, len(docs))
	for _, doc := range docs {
		var f domain.FileAttachment
		if err := json.Unmarshal(doc, &f); err != nil {
			return nil, fmt.Errorf("failed to unmarshal file: %w", err)
		}
		files = append(files, f)
	}
	return files, nil
}

// PutFile writes a file attachment document.
// ファイルはupload時刻で並ぶためcreated_at列にUploadedAtを入れる
func (s *Scope) PutFile(ctx context.Context, file *domain.FileAttachment) error {
	doc, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal file: %w", err)
	}
	return s.putDoc(ctx, colFiles, file.ID, doc, file.UploadedAt, file.UploadedAt)
}

// DeleteFile removes a file attachment document
func (s *Scope) DeleteFile(ctx context.Context, id string) error {
	return s.deleteDoc(ctx, colFiles, id)
}
