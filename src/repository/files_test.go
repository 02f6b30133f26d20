package repository_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"

	"taskman-app/src/domain"
	"taskman-app/src/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepository_UploadLocalMode(t *testing.T) {
	repo := repository.NewFileRepository(newTestSelector(t), nil, testLogger())
	ctx := context.Background()

	content := []byte("請求書の中身")
	file, err := repo.Upload(ctx, domain.UploadFileRequest{
		Name:     "invoice.pdf",
		MimeType: "application/pdf",
		Content:  content,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, file.ID)
	assert.Equal(t, "invoice.pdf", file.Name)
	assert.Equal(t, int64(len(content)), file.Size)

	// ローカルモードではオブジェクトストレージを使わずdata URIに埋め込む
	expected := fmt.Sprintf("data:application/pdf;base64,%s",
		base64.StdEncoding.EncodeToString(content))
	assert.Equal(t, expected, file.URL)

	files := repo.Files()
	require.Len(t, files, 1)
	assert.Equal(t, file.ID, files[0].ID)
}

func TestFileRepository_Delete(t *testing.T) {
	repo := repository.NewFileRepository(newTestSelector(t), nil, testLogger())
	ctx := context.Background()

	file, err := repo.Upload(ctx, domain.UploadFileRequest{
		Name:     "memo.txt",
		MimeType: "text/plain",
		Content:  []byte("hello"),
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, file.ID))
	assert.Empty(t, repo.Files())

	assert.ErrorIs(t, repo.Delete(ctx, file.ID), domain.ErrNotFound)
}
