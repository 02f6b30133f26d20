package repository_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"taskman-app/src/datamode"
	"taskman-app/src/domain"
	"taskman-app/src/repository"
	"taskman-app/src/store/localdb"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestSelector 一時ファイル上のローカルストアを使うセレクターを作成
func newTestSelector(t *testing.T) *datamode.Selector {
	t.Helper()
	local, err := localdb.Open(filepath.Join(t.TempDir(), "test.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })
	return datamode.NewSelector(local, nil, testLogger())
}

func TestTaskRepository_Create(t *testing.T) {
	repo := repository.NewTaskRepository(newTestSelector(t), testLogger())
	ctx := context.Background()

	task, err := repo.Create(ctx, domain.CreateTaskRequest{Title: "最初のタスク"})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, domain.TaskStatusNew, task.Status)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	// 作成時はCreatedAtとUpdatedAtが同一
	assert.True(t, task.CreatedAt.Equal(task.UpdatedAt))
	assert.NotNil(t, task.Tags)
	assert.NotNil(t, task.Comments)
	assert.Nil(t, task.CompletedAt)

	// 作成後にコレクションへ反映される
	tasks := repo.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.Empty(t, repo.LastError())
}

func TestTaskRepository_UpdatePartial(t *testing.T) {
	repo := repository.NewTaskRepository(newTestSelector(t), testLogger())
	ctx := context.Background()

	task, err := repo.Create(ctx, domain.CreateTaskRequest{
		Title:       "元のタイトル",
		Description: "元の説明",
		Priority:    domain.PriorityHigh,
	})
	require.NoError(t, err)

	newTitle := "新しいタイトル"
	require.NoError(t, repo.Update(ctx, task.ID, domain.UpdateTaskRequest{Title: &newTitle}))

	tasks := repo.Tasks()
	require.Len(t, tasks, 1)
	got := tasks[0]

	// 指定したフィールドだけが変わる
	assert.Equal(t, "新しいタイトル", got.Title)
	assert.Equal(t, "元の説明", got.Description)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
}

func TestTaskRepository_UpdateNotFound(t *testing.T) {
	repo := repository.NewTaskRepository(newTestSelector(t), testLogger())

	title := "存在しないタスク"
	err := repo.Update(context.Background(), uuid.NewString(), domain.UpdateTaskRequest{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskRepository_CompletedAtLifecycle(t *testing.T) {
	repo := repository.NewTaskRepository(newTestSelector(t), testLogger())
	ctx := context.Background()

	task, err := repo.Create(ctx, domain.CreateTaskRequest{Title: "完了の確認"})
	require.NoError(t, err)

	// completedに遷移するとCompletedAtが設定される
	require.NoError(t, repo.UpdateStatus(ctx, task.ID, domain.TaskStatusCompleted))
	got := repo.Tasks()[0]
	require.NotNil(t, got.CompletedAt)
	completedAt := *got.CompletedAt

	// completedのまま別フィールドを更新してもCompletedAtは変わらない
	require.NoError(t, repo.UpdateStatus(ctx, task.ID, domain.TaskStatusCompleted))
	got = repo.Tasks()[0]
	require.NotNil(t, got.CompletedAt)
	assert.True(t, completedAt.Equal(*got.CompletedAt))

	// completedから離れるとCompletedAtはクリアされる
	require.NoError(t, repo.UpdateStatus(ctx, task.ID, domain.TaskStatusInProgress))
	got = repo.Tasks()[0]
	assert.Nil(t, got.CompletedAt)
}

func TestTaskRepository_Delete(t *testing.T) {
	repo := repository.NewTaskRepository(newTestSelector(t), testLogger())
	ctx := context.Background()

	task, err := repo.Create(ctx, domain.CreateTaskRequest{Title: "削除対象"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, task.ID))
	assert.Empty(t, repo.Tasks())

	// 既に消えたタスクの削除はNotFound
	assert.ErrorIs(t, repo.Delete(ctx, task.ID), domain.ErrNotFound)
}

func TestTaskRepository_Comments(t *testing.T) {
	repo := repository.NewTaskRepository(newTestSelector(t), testLogger())
	ctx := context.Background()

	task, err := repo.Create(ctx, domain.CreateTaskRequest{Title: "コメントの確認"})
	require.NoError(t, err)

	comment, err := repo.AddComment(ctx, task.ID, "進捗どうですか", "boss", "")
	require.NoError(t, err)
	assert.Equal(t, domain.CommentKindComment, comment.Kind)
	assert.NotEmpty(t, comment.ID)

	_, err = repo.AddComment(ctx, task.ID, "レビューに移動", "system", domain.CommentKindStatusChange)
	require.NoError(t, err)

	got := repo.Tasks()[0]
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "進捗どうですか", got.Comments[0].Text)
	assert.Equal(t, domain.CommentKindStatusChange, got.Comments[1].Kind)
}

func TestTaskRepository_Checklist(t *testing.T) {
	repo := repository.NewTaskRepository(newTestSelector(t), testLogger())
	ctx := context.Background()

	task, err := repo.Create(ctx, domain.CreateTaskRequest{Title: "チェックリストの確認"})
	require.NoError(t, err)

	item, err := repo.AddChecklistItem(ctx, task.ID, "設計を書く")
	require.NoError(t, err)
	assert.False(t, item.Completed)

	require.NoError(t, repo.ToggleChecklistItem(ctx, task.ID, item.ID))
	got := repo.Tasks()[0]
	require.Len(t, got.Checklist, 1)
	assert.True(t, got.Checklist[0].Completed)

	require.NoError(t, repo.ToggleChecklistItem(ctx, task.ID, item.ID))
	assert.False(t, repo.Tasks()[0].Checklist[0].Completed)

	// 存在しない項目はNotFound
	assert.ErrorIs(t, repo.ToggleChecklistItem(ctx, task.ID, uuid.NewString()), domain.ErrNotFound)
}

func TestFilterTasks(t *testing.T) {
	projectID := uuid.NewString()
	tasks := []domain.Task{
		{ID: "1", Title: "APIの実装", Status: domain.TaskStatusInProgress, Priority: domain.PriorityHigh, ProjectID: projectID, Tags: []string{"backend"}},
		{ID: "2", Title: "画面のデザイン", Status: domain.TaskStatusNew, Priority: domain.PriorityLow, Tags: []string{"design"}},
		{ID: "3", Title: "APIのテスト", Status: domain.TaskStatusCompleted, Priority: domain.PriorityHigh, ProjectID: projectID},
	}

	tests := []struct {
		name     string
		filter   domain.TaskFilter
		expected []string
	}{
		{
			name:     "フィルターなしは全件",
			filter:   domain.TaskFilter{},
			expected: []string{"1", "2", "3"},
		},
		{
			name:     "ステータスで絞り込み",
			filter:   domain.TaskFilter{Status: []domain.TaskStatus{domain.TaskStatusNew}},
			expected: []string{"2"},
		},
		{
			name:     "優先度とプロジェクトの組み合わせ",
			filter:   domain.TaskFilter{Priority: []domain.Priority{domain.PriorityHigh}, ProjectID: projectID},
			expected: []string{"1", "3"},
		},
		{
			name:     "タイトルの部分一致検索",
			filter:   domain.TaskFilter{Search: "api"},
			expected: []string{"1", "3"},
		},
		{
			name:     "タグで絞り込み",
			filter:   domain.TaskFilter{Tags: []string{"design"}},
			expected: []string{"2"},
		},
		{
			name:     "一致なしは空",
			filter:   domain.TaskFilter{Search: "存在しない"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.FilterTasks(tasks, tt.filter)
			ids := make([]string, 0, len(got))
			for _, task := range got {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}
