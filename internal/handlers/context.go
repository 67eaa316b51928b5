// Package handlers はHTTPリクエストを処理するGinハンドラーを提供します。
package handlers

import (
	"github.com/gin-gonic/gin"

	"go-todo-share/server/internal/models"
)

// コンテキストキー。ミドルウェアがセッションから設定します。
const (
	ContextUserID   = "user_id"
	ContextNickname = "nickname"
)

// currentUserID はセッションミドルウェアが設定したユーザーIDを返します。
func currentUserID(c *gin.Context) (int, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

// currentNickname はセッションミドルウェアが設定したnicknameを返します。
func currentNickname(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextNickname)
	if !exists {
		return "", false
	}
	nickname, ok := v.(string)
	return nickname, ok
}

// headerUser はヘッダー表示用のログイン中ユーザーを返します。未ログインならnilです。
func headerUser(c *gin.Context) *models.User {
	nickname, ok := currentNickname(c)
	if !ok {
		return nil
	}
	return &models.User{Nickname: nickname}
}
