package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-todo-share/server/internal/handlers"
	"go-todo-share/server/internal/services"
)

// CurrentUser はセッションCookieを検証し、ログイン中ならユーザー情報を
// コンテキストに設定するミドルウェアです。未ログインでも処理は継続します。
func CurrentUser(sessionService *services.SessionService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(cookieName)
		if err != nil || tokenString == "" {
			c.Next()
			return
		}

		claims, err := sessionService.ValidateToken(tokenString)
		if err != nil {
			// 期限切れ・改ざんされたCookieは無視して未ログイン扱い
			c.Next()
			return
		}

		c.Set(handlers.ContextUserID, claims.UserID)
		c.Set(handlers.ContextNickname, claims.Nickname)
		c.Next()
	}
}

// RequireLogin は未ログインの場合にログインページへリダイレクトするミドルウェアです。
// CurrentUserの後に使います。
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(handlers.ContextUserID); !exists {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
