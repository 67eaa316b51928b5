// Package routesはroutingを行います。
package routes

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-todo-share/server/internal/auth"
	"go-todo-share/server/internal/config"
	"go-todo-share/server/internal/handlers"
	"go-todo-share/server/internal/ogp"
	"go-todo-share/server/internal/repositories"
	"go-todo-share/server/internal/services"
	"go-todo-share/server/web"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
// nowは期限判定に使う現在時刻で、nilの場合はtime.Nowを使います（テスト用に注入可能）。
func SetupRouter(db *sql.DB, cfg *config.Config, provider auth.Provider, now func() time.Time) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(web.Templates())

	// リポジトリ
	todoRepo := repositories.NewTodoRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// サービス
	todoService := services.NewTodoService(todoRepo, now)
	userService := services.NewUserService(userRepo)
	sessionService := services.NewSessionService(cfg.JWTSecret, cfg.SessionTTL)

	// ハンドラー
	homeHandler := handlers.NewHomeHandler(todoService, userService)
	authHandler := handlers.NewAuthHandler(provider, userService, sessionService, cfg.SessionCookie)
	userHandler := handlers.NewUserHandler(userService, todoService)
	todoHandler := handlers.NewTodoHandler(todoService, cfg.BaseURL)
	ogpHandler := handlers.NewOGPHandler(todoService, ogp.NewRenderer())

	// セッションの解決は全ルート共通
	r.Use(CurrentUser(sessionService, cfg.SessionCookie))

	// 公開ページ
	r.GET("/", homeHandler.ShowHandler)
	r.GET("/login", authHandler.LoginHandler)
	r.GET("/callback", authHandler.CallbackHandler)
	r.GET("/logout", authHandler.LogoutHandler)
	r.GET("/users/:nickname", userHandler.ProfileHandler)
	r.GET("/todos/:id", todoHandler.ShowHandler)
	// OGP画像はシェアウィジェットからのクロスオリジン取得を許可する
	r.GET("/todos/:id/ogp.png", cors.Default(), ogpHandler.ImageHandler)

	r.GET("/healthz", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ログイン必須の操作
	authorized := r.Group("/")
	authorized.Use(RequireLogin())
	{
		authorized.POST("/todos", todoHandler.CreateHandler)
		authorized.POST("/todos/:id", todoHandler.UpdateHandler)
		authorized.POST("/todos/:id/delete", todoHandler.DeleteHandler)
		authorized.POST("/todos/all-delete", todoHandler.BulkDeleteHandler)
	}

	return r
}
