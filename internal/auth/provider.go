// Package auth は外部プロバイダ（Twitter互換）でのログインを扱います。
package auth

import "context"

// Identity は外部プロバイダから取得したユーザー情報です。
type Identity struct {
	ProviderID string // プロバイダ側のユーザーID
	Nickname   string // スクリーンネーム
	Name       string // 表示名
	AvatarURL  string // アイコン画像URL
}

// Provider は外部プロバイダとのやり取りを抽象化します。
// テストではスタブに差し替えます。グローバルなパッチは不要です。
type Provider interface {
	// AuthCodeURL はユーザーをリダイレクトする認可URLを返します。
	AuthCodeURL(state string) string
	// FetchIdentity は認可コードをトークンに交換し、ユーザー情報を取得します。
	FetchIdentity(ctx context.Context, code string) (*Identity, error)
}
