package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-todo-share/server/internal/auth"
	"go-todo-share/server/internal/services"
)

// stateCookieName はCSRF対策のOAuth stateを保持するCookie名です。
const stateCookieName = "oauth_state"

// AuthHandler は外部プロバイダでのログイン/ログアウトを処理します。
type AuthHandler struct {
	provider       auth.Provider
	userService    *services.UserService
	sessionService *services.SessionService
	cookieName     string
}

// NewAuthHandler は新しいAuthHandlerを作成します。
func NewAuthHandler(provider auth.Provider, userService *services.UserService, sessionService *services.SessionService, cookieName string) *AuthHandler {
	return &AuthHandler{
		provider:       provider,
		userService:    userService,
		sessionService: sessionService,
		cookieName:     cookieName,
	}
}

// LoginHandler はstateを発行して外部プロバイダの認可画面にリダイレクトします。
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(stateCookieName, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// CallbackHandler はプロバイダからのコールバックを処理します。
// ユーザー情報を取得してfind-or-createし、セッションを確立して / にリダイレクトします。
func (h *AuthHandler) CallbackHandler(c *gin.Context) {
	state := c.Query("state")
	cookieState, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || state != cookieState {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{
			"CurrentUser": nil,
			"Message":     "ログインの検証に失敗しました。もう一度お試しください",
		})
		return
	}
	// stateは使い捨て
	c.SetCookie(stateCookieName, "", -1, "/", "", false, true)

	identity, err := h.provider.FetchIdentity(c.Request.Context(), c.Query("code"))
	if err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{
			"CurrentUser": nil,
			"Message":     "外部プロバイダからの情報取得に失敗しました",
		})
		return
	}

	user, err := h.userService.FindOrCreateFromIdentity(identity)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"CurrentUser": nil,
			"Message":     "ユーザーの作成に失敗しました",
		})
		return
	}

	token, err := h.sessionService.GenerateToken(user.ID, user.Nickname)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"CurrentUser": nil,
			"Message":     "セッションの作成に失敗しました",
		})
		return
	}

	c.SetCookie(h.cookieName, token, int(h.sessionService.TTL().Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// LogoutHandler はセッションCookieを破棄してホームにリダイレクトします。
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
