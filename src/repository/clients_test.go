package repository_test

import (
	"context"
	"testing"

	"taskman-app/src/domain"
	"taskman-app/src/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRepository_ArchiveRestore(t *testing.T) {
	repo := repository.NewClientRepository(newTestSelector(t), testLogger())
	ctx := context.Background()

	client, err := repo.Create(ctx, domain.CreateClientRequest{Name: "山田商事", Email: "yamada@example.com"})
	require.NoError(t, err)
	assert.Nil(t, client.ArchivedAt)

	require.NoError(t, repo.Archive(ctx, client.ID))

	// アーカイブ済みはActiveから外れるが全件には残る
	assert.Empty(t, repo.Active())
	all := repo.Clients()
	require.Len(t, all, 1)
	require.NotNil(t, all[0].ArchivedAt)

	require.NoError(t, repo.Restore(ctx, client.ID))
	active := repo.Active()
	require.Len(t, active, 1)
	assert.Nil(t, active[0].ArchivedAt)
}

func TestClientRepository_DeleteCascades(t *testing.T) {
	modes := newTestSelector(t)
	logger := testLogger()
	clients := repository.NewClientRepository(modes, logger)
	projects := repository.NewProjectRepository(modes, logger)
	tasks := repository.NewTaskRepository(modes, logger)
	ctx := context.Background()

	client, err := clients.Create(ctx, domain.CreateClientRequest{Name: "削除対象クライアント"})
	require.NoError(t, err)
	other, err := clients.Create(ctx, domain.CreateClientRequest{Name: "残るクライアント"})
	require.NoError(t, err)

	project, err := projects.Create(ctx, domain.CreateProjectRequest{Name: "対象プロジェクト", ClientID: client.ID})
	require.NoError(t, err)
	otherProject, err := projects.Create(ctx, domain.CreateProjectRequest{Name: "残るプロジェクト", ClientID: other.ID})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := tasks.Create(ctx, domain.CreateTaskRequest{Title: "対象タスク", ProjectID: project.ID})
		require.NoError(t, err)
	}
	_, err = tasks.Create(ctx, domain.CreateTaskRequest{Title: "残るタスク", ProjectID: otherProject.ID})
	require.NoError(t, err)

	require.NoError(t, clients.Delete(ctx, client.ID))

	// クライアント配下のプロジェクトとタスクもまとめて消える
	_, err = projects.LoadAll(ctx)
	require.NoError(t, err)
	_, err = tasks.LoadAll(ctx)
	require.NoError(t, err)

	require.Len(t, clients.Clients(), 1)
	assert.Equal(t, other.ID, clients.Clients()[0].ID)

	remainingProjects := projects.Projects()
	require.Len(t, remainingProjects, 1)
	assert.Equal(t, otherProject.ID, remainingProjects[0].ID)

	remainingTasks := tasks.Tasks()
	require.Len(t, remainingTasks, 1)
	assert.Equal(t, otherProject.ID, remainingTasks[0].ProjectID)
}

func TestClientRepository_DeleteNotFound(t *testing.T) {
	repo := repository.NewClientRepository(newTestSelector(t), testLogger())
	err := repo.Delete(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRepository_TaskReferences(t *testing.T) {
	modes := newTestSelector(t)
	projects := repository.NewProjectRepository(modes, testLogger())
	ctx := context.Background()

	project, err := projects.Create(ctx, domain.CreateProjectRequest{Name: "参照管理"})
	require.NoError(t, err)

	require.NoError(t, projects.AddTask(ctx, project.ID, "task-1"))
	// 同じIDの二重登録はされない
	require.NoError(t, projects.AddTask(ctx, project.ID, "task-1"))
	require.NoError(t, projects.AddTask(ctx, project.ID, "task-2"))

	got := projects.Projects()
	require.Len(t, got, 1)
	assert.Equal(t, []string{"task-1", "task-2"}, got[0].Tasks)

	require.NoError(t, projects.RemoveTask(ctx, project.ID, "task-1"))
	assert.Equal(t, []string{"task-2"}, projects.Projects()[0].Tasks)
}

func TestProjectRepository_StatusUpdate(t *testing.T) {
	repo := repository.NewProjectRepository(newTestSelector(t), testLogger())
	ctx := context.Background()

	project, err := repo.Create(ctx, domain.CreateProjectRequest{Name: "進行管理"})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusPlanning, project.Status)

	require.NoError(t, repo.UpdateStatus(ctx, project.ID, domain.ProjectStatusCompleted))
	got := repo.Projects()
	require.Len(t, got, 1)
	assert.Equal(t, domain.ProjectStatusCompleted, got[0].Status)
}
