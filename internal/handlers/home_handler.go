package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-todo-share/server/internal/services"
)

// HomeHandler はホーム画面のハンドラーを管理します。
type HomeHandler struct {
	todoService *services.TodoService
	userService *services.UserService
}

// NewHomeHandler は新しいHomeHandlerを作成します。
func NewHomeHandler(todoService *services.TodoService, userService *services.UserService) *HomeHandler {
	return &HomeHandler{todoService: todoService, userService: userService}
}

// ShowHandler はホーム画面を表示します。
// ログイン中のユーザーには期日が明日までの未完了Todoの件数を表示します。
func (h *HomeHandler) ShowHandler(c *gin.Context) {
	data := gin.H{"CurrentUser": nil, "NearDueCount": 0}

	if userID, ok := currentUserID(c); ok {
		user, err := h.userService.GetByID(userID)
		if err == nil {
			data["CurrentUser"] = user
		}
		count, err := h.todoService.CountNearDue(userID)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{
				"CurrentUser": headerUser(c),
				"Message":     "Todoの集計に失敗しました",
			})
			return
		}
		data["NearDueCount"] = count
	}

	c.HTML(http.StatusOK, "home.html", data)
}
