package handlers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo-share/server/internal/auth"
	"go-todo-share/server/internal/models"
	"go-todo-share/server/internal/repositories"
	"go-todo-share/server/testutil"
)

func TestCreateTodo(t *testing.T) {
	env := testutil.SetupTestDB(t)
	user, session := env.LoginUser(t)

	form := url.Values{}
	form.Set("content", "test")
	form.Set("due_date", "2030-04-01")
	w := env.PostForm(t, "/todos", form, session)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/users/"+user.Nickname, w.Result().Header.Get("Location"))
	require.Equal(t, 1, env.CountTodos(t))

	// DBに未完了(0)で保存されていること
	todos, err := env.TodoRepo.FindByUser(user.ID, false)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "test", todos[0].Content)
	assert.Equal(t, "2030-04-01", todos[0].DueDate)
	assert.Equal(t, models.StatusIncomplete, todos[0].Status)

	// リダイレクト先のマイページに内容が表示されること
	w = env.Get(t, "/users/"+user.Nickname, session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test")
}

func TestCreateTodo_EmptyContent(t *testing.T) {
	env := testutil.SetupTestDB(t)
	user, session := env.LoginUser(t)

	form := url.Values{}
	form.Set("content", "")
	form.Set("due_date", "2030-04-01")
	w := env.PostForm(t, "/todos", form, session)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/users/"+user.Nickname+"?error=content", w.Result().Header.Get("Location"))
	assert.Equal(t, 0, env.CountTodos(t))
}

func TestCreateTodo_UnvalidatedDueDate(t *testing.T) {
	// 不正な日付文字列もそのまま受け付けて保存・表示する
	env := testutil.SetupTestDB(t)
	user, session := env.LoginUser(t)

	form := url.Values{}
	form.Set("content", "Todotest")
	form.Set("due_date", "0401-20-30")
	w := env.PostForm(t, "/todos", form, session)
	require.Equal(t, http.StatusFound, w.Code)

	w = env.Get(t, "/users/"+user.Nickname, session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Todotest")
	assert.Contains(t, w.Body.String(), "0401-20-30")
}

func TestCreateTodo_RequiresLogin(t *testing.T) {
	env := testutil.SetupTestDB(t)

	form := url.Values{}
	form.Set("content", "test")
	form.Set("due_date", "2030-04-01")
	w := env.PostForm(t, "/todos", form, nil)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Result().Header.Get("Location"))
	assert.Equal(t, 0, env.CountTodos(t))
}

func TestShowTodo(t *testing.T) {
	env := testutil.SetupTestDB(t)
	user, _ := env.LoginUser(t)
	todo := env.FactoryTodo(t, user.ID, nil)

	w := env.Get(t, fmt.Sprintf("/todos/%d", todo.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), todo.Content)
}

func TestShowTodo_WithinDeadline(t *testing.T) {
	env := testutil.SetupTestDB(t)
	user, _ := env.LoginUser(t)
	todo := env.FactoryTodo(t, user.ID, func(td *models.Todo) { td.DueDate = "2030-01-01" })

	w := env.Get(t, fmt.Sprintf("/todos/%d", todo.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "期限内です")
}

func TestShowTodo_Overdue(t *testing.T) {
	env := testutil.SetupTestDB(t)
	user, _ := env.LoginUser(t)
	todo := env.FactoryTodo(t, user.ID, func(td *models.Todo) { td.DueDate = "2020-01-01" })

	w := env.Get(t, fmt.Sprintf("/todos/%d", todo.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Twitterにシェアして反省しましょう!!")
}

func TestShowTodo_NotFound(t *testing.T) {
	env := testutil.SetupTestDB(t)

	w := env.Get(t, "/todos/9999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatus(t *testing.T) {
	env := testutil.SetupTestDB(t)
	user, session := env.LoginUser(t)
	todo := env.FactoryTodo(t, user.ID, func(td *models.Todo) { td.DueDate = "2030-01-01" })

	// 更新前は未完了かつ期限内
	w := env.Get(t, fmt.Sprintf("/todos/%d", todo.ID), session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "期限内です")

	form := url.Values{}
	form.Set("status", "1")
	w = env.PostForm(t, fmt.Sprintf("/todos/%d", todo.ID), form, session)
	require.Equal(t, http.StatusFound, w.Code)

	// statusのみ変わり、contentとdue_dateは変わらないこと
	updated, err := env.TodoRepo.FindByID(todo.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusComplete, updated.Status)
	assert.Equal(t, "notOverDays", updated.Content)
	assert.Equal(t, "2030-01-01", updated.DueDate)
}

func TestUpdateStatus_BothDirections(t *testing.T) {
	// 完了→未完了の遷移も許可される
	env := testutil.SetupTestDB(t)
	user, session := env.LoginUser(t)
	todo := env.FactoryTodo(t, user.ID, func(td *models.Todo) { td.Status = models.StatusComplete })

	form := url.Values{}
	form.Set("status", "0")
	w := env.PostForm(t, fmt.Sprintf("/todos/%d", todo.ID), form, session)
	require.Equal(t, http.StatusFound, w.Code)

	updated, err := env.TodoRepo.FindByID(todo.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusIncomplete, updated.Status)
}

func TestUpdateStatus_NotOwner(t *testing.T) {
	env := testutil.SetupTestDB(t)
	owner, _ := env.LoginUser(t)
	todo := env.FactoryTodo(t, owner.ID, nil)

	// 別のユーザーでログイン
	env.Provider.Identity = auth.Identity{
		ProviderID: "2222222",
		Nickname:   "other",
		Name:       "otheruser",
	}
	_, otherSession := env.LoginUser(t)

	form := url.Values{}
	form.Set("status", "1")
	w := env.PostForm(t, fmt.Sprintf("/todos/%d", todo.ID), form, otherSession)
	require.Equal(t, http.StatusForbidden, w.Code)

	unchanged, err := env.TodoRepo.FindByID(todo.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusIncomplete, unchanged.Status)
}

func TestFilterIncomplete(t *testing.T) {
	env := testutil.SetupTestDB(t)
	user, session := env.LoginUser(t)
	env.FactoryTodo(t, user.ID, nil) // 未完了: notOverDays
	env.FactoryTodo(t, user.ID, func(td *models.Todo) {
		td.Content = "testPath"
		td.Status = models.StatusComplete
	})
	require.Equal(t, 2, env.CountTodos(t))

	w := env.Get(t, "/users/"+user.Nickname+"?incomplete=1", session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "notOverDays")
	assert.NotContains(t, w.Body.String(), "testPath")
}

func TestDeleteTodo(t *testing.T) {
	env := testutil.SetupTestDB(t)
	user, session := env.LoginUser(t)
	todo := env.FactoryTodo(t, user.ID, nil)
	require.Equal(t, 1, env.CountTodos(t))

	w := env.PostForm(t, fmt.Sprintf("/todos/%d/delete", todo.ID), nil, session)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, 0, env.CountTodos(t))

	_, err := env.TodoRepo.FindByID(todo.ID)
	require.ErrorIs(t, err, repositories.ErrTodoNotFound)
}

func TestDeleteTodo_NotOwner(t *testing.T) {
	env := testutil.SetupTestDB(t)
	owner, _ := env.LoginUser(t)
	todo := env.FactoryTodo(t, owner.ID, nil)

	env.Provider.Identity = auth.Identity{
		ProviderID: "2222222",
		Nickname:   "other",
		Name:       "otheruser",
	}
	_, otherSession := env.LoginUser(t)

	w := env.PostForm(t, fmt.Sprintf("/todos/%d/delete", todo.ID), nil, otherSession)
	require.Equal(t, http.StatusForbidden, w.Code)

	// 削除されていないこと
	_, err := env.TodoRepo.FindByID(todo.ID)
	require.NoError(t, err)
}

func TestBulkDeleteCompleted(t *testing.T) {
	env := testutil.SetupTestDB(t)
	user, session := env.LoginUser(t)
	env.FactoryTodo(t, user.ID, func(td *models.Todo) { td.Status = models.StatusComplete })
	incomplete := env.FactoryTodo(t, user.ID, nil)
	require.Equal(t, 2, env.CountTodos(t))

	w := env.PostForm(t, "/todos/all-delete", nil, session)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, 1, env.CountTodos(t))

	// 未完了のTodoだけが残ること
	remaining, err := env.TodoRepo.FindByUser(user.ID, false)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, incomplete.ID, remaining[0].ID)
	assert.Equal(t, models.StatusIncomplete, remaining[0].Status)
}

func TestBulkDeleteCompleted_OnlyOwnTodos(t *testing.T) {
	env := testutil.SetupTestDB(t)
	owner, _ := env.LoginUser(t)
	othersCompleted := env.FactoryTodo(t, owner.ID, func(td *models.Todo) { td.Status = models.StatusComplete })

	env.Provider.Identity = auth.Identity{
		ProviderID: "2222222",
		Nickname:   "other",
		Name:       "otheruser",
	}
	caller, callerSession := env.LoginUser(t)
	env.FactoryTodo(t, caller.ID, func(td *models.Todo) { td.Status = models.StatusComplete })

	w := env.PostForm(t, "/todos/all-delete", nil, callerSession)
	require.Equal(t, http.StatusFound, w.Code)

	// 他人の完了済みTodoは残ること
	_, err := env.TodoRepo.FindByID(othersCompleted.ID)
	require.NoError(t, err)
	count, err := env.TodoRepo.CountByUser(caller.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
