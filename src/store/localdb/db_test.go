package localdb_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"taskman-app/src/domain"
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

func openTestDB(t *testing.T) *localdb.DB {
	t.Helper()
	db, err := localdb.Open(filepath.Join(t.TempDir(), "test.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestHealth(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, db.Health(context.Background()))

	// キャンセル済みコンテキストではエラーになる
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, db.Health(ctx))
}

func TestOpen_AppliesMigrations(t *testing.T) {
	db := openTestDB(t)

	// マイグレーション後は全コレクションが空で読める
	ctx := context.Background()
	tasks, err := db.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	projects, err := db.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	clients, err := db.ListClients(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	ctx := context.Background()

	db, err := localdb.Open(path, testLogger())
	require.NoError(t, err)

	task := domain.Task{
		ID:        uuid.NewString(),
		Title:     "永続化の確認",
		Status:    domain.TaskStatusNew,
		Priority:  domain.PriorityMedium,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.PutTask(ctx, &task))
	require.NoError(t, db.Close())

	// 再オープンしてもデータが残り、マイグレーションは冪等
	db, err = localdb.Open(path, testLogger())
	require.NoError(t, err)
	defer db.Close()

	tasks, err := db.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.Equal(t, "永続化の確認", tasks[0].Title)
}

func TestPutTask_Upsert(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	task := domain.Task{
		ID:        uuid.NewString(),
		Title:     "最初のタイトル",
		Status:    domain.TaskStatusNew,
		Priority:  domain.PriorityLow,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.PutTask(ctx, &task))

	task.Title = "更新後のタイトル"
	task.Status = domain.TaskStatusInProgress
	require.NoError(t, db.PutTask(ctx, &task))

	tasks, err := db.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "更新後のタイトル", tasks[0].Title)
	assert.Equal(t, domain.TaskStatusInProgress, tasks[0].Status)
}

func TestDeleteTask_NotFound(t *testing.T) {
	db := openTestDB(t)

	err := db.DeleteTask(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteTasksByProject(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	projectID := uuid.NewString()

	for i := 0; i < 3; i++ {
		require.NoError(t, db.PutTask(ctx, &domain.Task{
			ID:        uuid.NewString(),
			Title:     "プロジェクト配下のタスク",
			Status:    domain.TaskStatusNew,
			Priority:  domain.PriorityMedium,
			ProjectID: projectID,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}))
	}
	require.NoError(t, db.PutTask(ctx, &domain.Task{
		ID:        uuid.NewString(),
		Title:     "別プロジェクトのタスク",
		Status:    domain.TaskStatusNew,
		Priority:  domain.PriorityMedium,
		ProjectID: uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}))

	require.NoError(t, db.DeleteTasksByProject(ctx, projectID))

	tasks, err := db.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, "別プロジェクトのタスク", tasks[0].Title)
}

func TestListProjectsByClient(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	clientID := uuid.NewString()

	for i := 0; i < 2; i++ {
		require.NoError(t, db.PutProject(ctx, &domain.Project{
			ID:        uuid.NewString(),
			Name:      "対象クライアントの案件",
			ClientID:  clientID,
			Status:    domain.ProjectStatusActive,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}))
	}
	require.NoError(t, db.PutProject(ctx, &domain.Project{
		ID:        uuid.NewString(),
		Name:      "無関係の案件",
		Status:    domain.ProjectStatusActive,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}))

	projects, err := db.ListProjectsByClient(ctx, clientID)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestListTasks_OrderedByCreatedAt(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	ids := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}
	// 逆順で挿入しても作成日時順で返る
	for i := len(ids) - 1; i >= 0; i-- {
		require.NoError(t, db.PutTask(ctx, &domain.Task{
			ID:        ids[i],
			Title:     "並び順の確認",
			Status:    domain.TaskStatusNew,
			Priority:  domain.PriorityMedium,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base,
		}))
	}

	tasks, err := db.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for i, id := range ids {
		assert.Equal(t, id, tasks[i].ID)
	}
}

func TestPutPayment_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	due := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	payment := domain.Payment{
		ID:          uuid.NewString(),
		Amount:      120000,
		Description: "4月分の請求",
		Type:        domain.PaymentTypeIncome,
		Status:      domain.PaymentStatusPending,
		DueDate:     &due,
		Category:    "開発",
		Tags:        []string{"請求書"},
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	require.NoError(t, db.PutPayment(ctx, &payment))

	payments, err := db.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)

	got := payments[0]
	assert.Equal(t, payment.ID, got.ID)
	assert.Equal(t, 120000.0, got.Amount)
	assert.Equal(t, domain.PaymentTypeIncome, got.Type)
	require.NotNil(t, got.DueDate)
	assert.True(t, due.Equal(*got.DueDate))
	assert.Equal(t, []string{"請求書"}, got.Tags)
}
