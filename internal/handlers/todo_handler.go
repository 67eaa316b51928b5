package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-todo-share/server/internal/models"
	"go-todo-share/server/internal/repositories"
	"go-todo-share/server/internal/services"
)

// TodoHandler はTodo関連のハンドラーを管理します。
type TodoHandler struct {
	todoService *services.TodoService
	baseURL     string
}

// NewTodoHandler は新しいTodoHandlerを作成します。
// baseURLはOGP画像やシェアリンクの絶対URLの組み立てに使います。
func NewTodoHandler(todoService *services.TodoService, baseURL string) *TodoHandler {
	return &TodoHandler{todoService: todoService, baseURL: baseURL}
}

// CreateHandler は新しいTodoを作成してマイページにリダイレクトします。
func (h *TodoHandler) CreateHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	nickname, _ := currentNickname(c)

	content := c.PostForm("content")
	dueDate := c.PostForm("due_date")

	_, err := h.todoService.Create(userID, content, dueDate)
	if err != nil {
		if errors.Is(err, services.ErrContentRequired) {
			c.Redirect(http.StatusFound, "/users/"+nickname+"?error=content")
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"CurrentUser": headerUser(c),
			"Message":     "Todoの作成に失敗しました",
		})
		return
	}

	c.Redirect(http.StatusFound, "/users/"+nickname)
}

// ShowHandler はTodoの個別ページを表示します。
// 期限内なら「期限内です」、期限切れならシェアを促す文言を表示します。
func (h *TodoHandler) ShowHandler(c *gin.Context) {
	todo, ok := h.findTodo(c)
	if !ok {
		return
	}

	overdue := todo.Overdue(h.todoService.Today())
	todoURL := fmt.Sprintf("%s/todos/%d", h.baseURL, todo.ID)
	shareText := fmt.Sprintf("「%s」の期限が過ぎてしまいました…", todo.Content)
	shareURL := "https://twitter.com/intent/tweet?text=" + url.QueryEscape(shareText) + "&url=" + url.QueryEscape(todoURL)

	callerID, _ := currentUserID(c)
	c.HTML(http.StatusOK, "todo.html", gin.H{
		"CurrentUser": headerUser(c),
		"Todo":        todo,
		"Overdue":     overdue,
		"IsOwner":     callerID == todo.UserID,
		"ShareURL":    shareURL,
		"OGPImageURL": todoURL + "/ogp.png",
	})
}

// UpdateHandler はTodoのstatusを更新します。更新できるのは所有者のみです。
func (h *TodoHandler) UpdateHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.renderNotFound(c)
		return
	}
	status, err := strconv.Atoi(c.PostForm("status"))
	if err != nil {
		h.renderBadRequest(c, "statusの指定が不正です")
		return
	}

	userID, _ := currentUserID(c)
	if _, err := h.todoService.UpdateStatus(id, userID, status); err != nil {
		h.renderServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/todos/%d", id))
}

// DeleteHandler はTodoを削除します。削除できるのは所有者のみです。
func (h *TodoHandler) DeleteHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.renderNotFound(c)
		return
	}

	userID, _ := currentUserID(c)
	if err := h.todoService.Delete(id, userID); err != nil {
		h.renderServiceError(c, err)
		return
	}

	nickname, _ := currentNickname(c)
	c.Redirect(http.StatusFound, "/users/"+nickname)
}

// BulkDeleteHandler はログイン中ユーザーの完了済みTodoを一括削除します。
func (h *TodoHandler) BulkDeleteHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	if _, err := h.todoService.DeleteCompleted(userID); err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"CurrentUser": headerUser(c),
			"Message":     "一括削除に失敗しました",
		})
		return
	}

	nickname, _ := currentNickname(c)
	c.Redirect(http.StatusFound, "/users/"+nickname)
}

// findTodo は:idパラメータからTodoを取得します。見つからなければ404を描画してfalseを返します。
func (h *TodoHandler) findTodo(c *gin.Context) (*models.Todo, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.renderNotFound(c)
		return nil, false
	}
	todo, err := h.todoService.Get(id)
	if err != nil {
		h.renderServiceError(c, err)
		return nil, false
	}
	return todo, true
}

func (h *TodoHandler) renderServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrTodoNotFound):
		h.renderNotFound(c)
	case errors.Is(err, services.ErrTodoForbidden):
		c.HTML(http.StatusForbidden, "error.html", gin.H{
			"CurrentUser": headerUser(c),
			"Message":     "このTodoを変更する権限がありません",
		})
	case errors.Is(err, services.ErrInvalidStatus):
		h.renderBadRequest(c, "statusの指定が不正です")
	default:
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"CurrentUser": headerUser(c),
			"Message":     "処理に失敗しました",
		})
	}
}

func (h *TodoHandler) renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error.html", gin.H{
		"CurrentUser": headerUser(c),
		"Message":     "Todoが見つかりません",
	})
}

func (h *TodoHandler) renderBadRequest(c *gin.Context, message string) {
	c.HTML(http.StatusBadRequest, "error.html", gin.H{
		"CurrentUser": headerUser(c),
		"Message":     message,
	})
}
