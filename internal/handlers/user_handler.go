package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-todo-share/server/internal/repositories"
	"go-todo-share/server/internal/services"
)

// UserHandler はユーザーページのハンドラーを管理します。
type UserHandler struct {
	userService *services.UserService
	todoService *services.TodoService
}

// NewUserHandler は新しいUserHandlerを作成します。
func NewUserHandler(userService *services.UserService, todoService *services.TodoService) *UserHandler {
	return &UserHandler{userService: userService, todoService: todoService}
}

// ProfileHandler はユーザーのプロフィールページ（Todo一覧）を表示します。
// ?incomplete=1 で未完了のTodoのみに絞り込めます。
func (h *UserHandler) ProfileHandler(c *gin.Context) {
	user, err := h.userService.GetByNickname(c.Param("nickname"))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.HTML(http.StatusNotFound, "error.html", gin.H{
				"CurrentUser": headerUser(c),
				"Message":     "ユーザーが見つかりません",
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"CurrentUser": headerUser(c),
			"Message":     "ユーザーの取得に失敗しました",
		})
		return
	}

	onlyIncomplete := c.Query("incomplete") == "1"
	todos, err := h.todoService.List(user.ID, onlyIncomplete)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"CurrentUser": headerUser(c),
			"Message":     "Todoの取得に失敗しました",
		})
		return
	}

	callerID, _ := currentUserID(c)
	c.HTML(http.StatusOK, "profile.html", gin.H{
		"CurrentUser":    headerUser(c),
		"User":           user,
		"Todos":          todos,
		"IsOwner":        callerID == user.ID,
		"OnlyIncomplete": onlyIncomplete,
		"ContentError":   c.Query("error") == "content",
	})
}
