package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-todo-share/server/internal/ogp"
	"go-todo-share/server/internal/repositories"
	"go-todo-share/server/internal/services"
)

// OGPHandler はシェア用OGP画像のハンドラーを管理します。
type OGPHandler struct {
	todoService *services.TodoService
	renderer    *ogp.Renderer
}

// NewOGPHandler は新しいOGPHandlerを作成します。
func NewOGPHandler(todoService *services.TodoService, renderer *ogp.Renderer) *OGPHandler {
	return &OGPHandler{todoService: todoService, renderer: renderer}
}

// ImageHandler はTodoのOGP画像をimage/pngで返します。
// クローラーが取得するため認証は不要です。
func (h *OGPHandler) ImageHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	todo, err := h.todoService.Get(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	data, err := h.renderer.Render(todo, h.todoService.Today())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}
