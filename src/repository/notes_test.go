package repository_test

import (
	"context"
	"testing"

	"taskman-app/src/domain"
	"taskman-app/src/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteRepository_CreateAndUpdate(t *testing.T) {
	repo := repository.NewNoteRepository(newTestSelector(t), testLogger())
	ctx := context.Background()

	note, err := repo.Create(ctx, domain.CreateNoteRequest{
		Title:   "打ち合わせメモ",
		Content: "次回は金曜日",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.True(t, note.CreatedAt.Equal(note.UpdatedAt))

	newContent := "次回は月曜日に変更"
	require.NoError(t, repo.Update(ctx, note.ID, domain.UpdateNoteRequest{Content: &newContent}))

	got := repo.Notes()
	require.Len(t, got, 1)
	assert.Equal(t, "打ち合わせメモ", got[0].Title)
	assert.Equal(t, "次回は月曜日に変更", got[0].Content)
}

func TestNoteRepository_ArchiveRestore(t *testing.T) {
	repo := repository.NewNoteRepository(newTestSelector(t), testLogger())
	ctx := context.Background()

	note, err := repo.Create(ctx, domain.CreateNoteRequest{Title: "アーカイブ対象"})
	require.NoError(t, err)

	require.NoError(t, repo.Archive(ctx, note.ID))
	assert.Empty(t, repo.Active())
	require.Len(t, repo.Notes(), 1)

	require.NoError(t, repo.Restore(ctx, note.ID))
	assert.Len(t, repo.Active(), 1)
}
