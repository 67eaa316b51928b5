package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo-share/server/internal/auth"
	"go-todo-share/server/internal/models"
	"go-todo-share/server/internal/repositories"
	"go-todo-share/server/internal/services"
	"go-todo-share/server/testutil"
)

func setupService(t *testing.T, now func() time.Time) (*testutil.Env, *services.TodoService, *models.User) {
	t.Helper()
	env := testutil.SetupTestDB(t)
	user, _ := env.LoginUser(t)
	return env, services.NewTodoService(env.TodoRepo, now), user
}

func TestTodoService_Create(t *testing.T) {
	_, svc, user := setupService(t, nil)

	todo, err := svc.Create(user.ID, "test", "2030-04-01")
	require.NoError(t, err)
	assert.Equal(t, user.ID, todo.UserID)
	assert.Equal(t, models.StatusIncomplete, todo.Status)
	assert.NotZero(t, todo.ID)
}

func TestTodoService_Create_EmptyContent(t *testing.T) {
	_, svc, user := setupService(t, nil)

	_, err := svc.Create(user.ID, "", "2030-04-01")
	require.ErrorIs(t, err, services.ErrContentRequired)
}

func TestTodoService_UpdateStatus_OwnershipCheck(t *testing.T) {
	env, svc, owner := setupService(t, nil)
	todo := env.FactoryTodo(t, owner.ID, nil)

	env.Provider.Identity = auth.Identity{ProviderID: "2222222", Nickname: "other", Name: "otheruser"}
	other, _ := env.LoginUser(t)

	_, err := svc.UpdateStatus(todo.ID, other.ID, models.StatusComplete)
	require.ErrorIs(t, err, services.ErrTodoForbidden)

	// 所有者なら更新できる
	updated, err := svc.UpdateStatus(todo.ID, owner.ID, models.StatusComplete)
	require.NoError(t, err)
	assert.Equal(t, models.StatusComplete, updated.Status)
}

func TestTodoService_UpdateStatus_InvalidStatus(t *testing.T) {
	env, svc, owner := setupService(t, nil)
	todo := env.FactoryTodo(t, owner.ID, nil)

	_, err := svc.UpdateStatus(todo.ID, owner.ID, 2)
	require.ErrorIs(t, err, services.ErrInvalidStatus)
}

func TestTodoService_UpdateStatus_NotFound(t *testing.T) {
	_, svc, owner := setupService(t, nil)

	_, err := svc.UpdateStatus(9999, owner.ID, models.StatusComplete)
	require.ErrorIs(t, err, repositories.ErrTodoNotFound)
}

func TestTodoService_Delete_OwnershipCheck(t *testing.T) {
	env, svc, owner := setupService(t, nil)
	todo := env.FactoryTodo(t, owner.ID, nil)

	env.Provider.Identity = auth.Identity{ProviderID: "2222222", Nickname: "other", Name: "otheruser"}
	other, _ := env.LoginUser(t)

	require.ErrorIs(t, svc.Delete(todo.ID, other.ID), services.ErrTodoForbidden)
	require.NoError(t, svc.Delete(todo.ID, owner.ID))

	_, err := svc.Get(todo.ID)
	require.ErrorIs(t, err, repositories.ErrTodoNotFound)
}

func TestTodoService_List_Filter(t *testing.T) {
	env, svc, user := setupService(t, nil)
	env.FactoryTodo(t, user.ID, nil)
	env.FactoryTodo(t, user.ID, func(td *models.Todo) { td.Status = models.StatusComplete })

	all, err := svc.List(user.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	incomplete, err := svc.List(user.ID, true)
	require.NoError(t, err)
	require.Len(t, incomplete, 1)
	assert.Equal(t, models.StatusIncomplete, incomplete[0].Status)
}

func TestTodoService_DeleteCompleted(t *testing.T) {
	env, svc, user := setupService(t, nil)
	env.FactoryTodo(t, user.ID, func(td *models.Todo) { td.Status = models.StatusComplete })
	env.FactoryTodo(t, user.ID, func(td *models.Todo) { td.Status = models.StatusComplete })
	// 期限切れでも未完了なら残る
	env.FactoryTodo(t, user.ID, func(td *models.Todo) { td.DueDate = "2020-01-01" })

	deleted, err := svc.DeleteCompleted(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	remaining, err := svc.List(user.ID, false)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, models.StatusIncomplete, remaining[0].Status)
}

func TestTodoService_CountNearDue(t *testing.T) {
	today := time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC)
	env, svc, user := setupService(t, func() time.Time { return today })

	env.FactoryTodo(t, user.ID, func(td *models.Todo) { td.DueDate = "2025-04-11" })
	env.FactoryTodo(t, user.ID, func(td *models.Todo) {
		td.DueDate = "2025-04-11"
		td.Status = models.StatusComplete
	})
	env.FactoryTodo(t, user.ID, func(td *models.Todo) { td.DueDate = "2025-04-12" })

	count, err := svc.CountNearDue(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
