package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"go-todo-share/server/internal/config"
)

// OAuthProvider はgolang.org/x/oauth2によるProviderの実装です。
type OAuthProvider struct {
	conf        *oauth2.Config
	userInfoURL string
}

// NewOAuthProvider は設定から外部プロバイダのクライアントを作成します。
func NewOAuthProvider(cfg *config.Config) *OAuthProvider {
	return &OAuthProvider{
		conf: &oauth2.Config{
			ClientID:     cfg.ProviderClientID,
			ClientSecret: cfg.ProviderClientSecret,
			RedirectURL:  cfg.ProviderRedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.ProviderAuthURL,
				TokenURL: cfg.ProviderTokenURL,
			},
			Scopes: []string{"users.read"},
		},
		userInfoURL: cfg.ProviderUserInfoURL,
	}
}

// AuthCodeURL は認可URLを返します。
func (p *OAuthProvider) AuthCodeURL(state string) string {
	return p.conf.AuthCodeURL(state)
}

// userInfo はプロバイダのユーザー情報APIのレスポンスです（Twitter互換のフィールド名）。
type userInfo struct {
	IDStr           string `json:"id_str"`
	ScreenName      string `json:"screen_name"`
	Name            string `json:"name"`
	ProfileImageURL string `json:"profile_image_url_https"`
}

// FetchIdentity は認可コードをアクセストークンに交換し、ユーザー情報を取得します。
func (p *OAuthProvider) FetchIdentity(ctx context.Context, code string) (*Identity, error) {
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}

	client := p.conf.Client(ctx, token)
	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request failed with status %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &Identity{
		ProviderID: info.IDStr,
		Nickname:   info.ScreenName,
		Name:       info.Name,
		AvatarURL:  info.ProfileImageURL,
	}, nil
}
