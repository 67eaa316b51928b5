package models

import "time"

// User は外部プロバイダでログインしたユーザーのデータベース構造体を表します。
// パスワードは保持しません。認証は常に外部プロバイダ経由です。
type User struct {
	ID         int       `json:"id,omitempty"`
	ProviderID string    `json:"provider_id"`          // 外部プロバイダ側のユーザーID
	Nickname   string    `json:"nickname"`             // プロフィールURLに使う一意な名前
	Name       string    `json:"name"`                 // 表示名
	AvatarURL  string    `json:"avatar_url,omitempty"` // アイコン画像URL
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}
