// Package configは環境変数からアプリ設定を読み込みます。
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config はアプリ全体の設定です。envタグで環境変数からパースします。
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	DBUser string `env:"DB_USER"`
	DBPass string `env:"DB_PASS"`
	DBHost string `env:"DB_HOST" envDefault:"127.0.0.1"`
	DBPort string `env:"DB_PORT" envDefault:"3306"`
	DBName string `env:"DB_NAME"`

	JWTSecret     string        `env:"JWT_SECRET"`
	SessionCookie string        `env:"SESSION_COOKIE" envDefault:"todo_session"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// 外部プロバイダ（Twitter互換）のOAuth設定
	ProviderClientID     string `env:"PROVIDER_CLIENT_ID"`
	ProviderClientSecret string `env:"PROVIDER_CLIENT_SECRET"`
	ProviderAuthURL      string `env:"PROVIDER_AUTH_URL" envDefault:"https://twitter.com/i/oauth2/authorize"`
	ProviderTokenURL     string `env:"PROVIDER_TOKEN_URL" envDefault:"https://api.twitter.com/2/oauth2/token"`
	ProviderUserInfoURL  string `env:"PROVIDER_USERINFO_URL" envDefault:"https://api.twitter.com/1.1/account/verify_credentials.json"`
	ProviderRedirectURL  string `env:"PROVIDER_REDIRECT_URL" envDefault:"http://localhost:8080/callback"`
}

// Load は環境変数からConfigを構築します。
// .envの読み込みは呼び出し側（main / testutil）がgodotenvで行います。
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env config: %w", err)
	}
	return &cfg, nil
}

// DSN はMySQL接続文字列を返します。
// 例: user:pass@tcp(db:3306)/dbname?parseTime=true
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}
