// Package repositories はデータベース操作を行うリポジトリを提供します。
package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"

	"go-todo-share/server/internal/models"
)

var (
	ErrDuplicateNickname = errors.New("duplicate nickname")
	ErrUserNotFound      = errors.New("user not found")
)

// UserRepository はusersテーブルの操作を行うための構造体です。
type UserRepository struct {
	DB *sql.DB
}

// NewUserRepository は新しいUserRepositoryインスタンスを作成します。
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Create は新しいユーザーをデータベースに挿入します。
func (r *UserRepository) Create(u *models.User) (*models.User, error) {
	now := time.Now()
	query := "INSERT INTO users (provider_id, nickname, name, avatar_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	result, err := r.DB.Exec(query, u.ProviderID, u.Nickname, u.Name, u.AvatarURL, now, now)
	if err != nil {
		// MySQLの重複エントリーエラーコード1062をチェック（nicknameはUNIQUE）
		if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == 1062 {
			return nil, ErrDuplicateNickname
		}
		log.Printf("Failed to insert user: %v", err)
		return nil, fmt.Errorf("could not insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	u.ID = int(id)
	u.CreatedAt = now
	u.UpdatedAt = now

	return u, nil
}

// FindByID は内部IDでユーザーを検索します。
func (r *UserRepository) FindByID(id int) (*models.User, error) {
	return r.findOne("SELECT id, provider_id, nickname, name, avatar_url, created_at, updated_at FROM users WHERE id = ?", id)
}

// FindByNickname はnicknameでユーザーを検索します。プロフィールURLの解決に使います。
func (r *UserRepository) FindByNickname(nickname string) (*models.User, error) {
	return r.findOne("SELECT id, provider_id, nickname, name, avatar_url, created_at, updated_at FROM users WHERE nickname = ?", nickname)
}

// FindByProviderID は外部プロバイダのIDでユーザーを検索します。ログイン時の照合に使います。
func (r *UserRepository) FindByProviderID(providerID string) (*models.User, error) {
	return r.findOne("SELECT id, provider_id, nickname, name, avatar_url, created_at, updated_at FROM users WHERE provider_id = ?", providerID)
}

func (r *UserRepository) findOne(query string, arg interface{}) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRow(query, arg).Scan(
		&u.ID,
		&u.ProviderID,
		&u.Nickname,
		&u.Name,
		&u.AvatarURL,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		log.Printf("Failed to query user: %v", err)
		return nil, fmt.Errorf("could not query user: %w", err)
	}
	return &u, nil
}

// UpdateProfile はログインのたびに表示名とアイコンを最新に保ちます。
// nicknameとprovider_idは作成後変更しません。
func (r *UserRepository) UpdateProfile(id int, name, avatarURL string) error {
	// 値が変わらない更新はMySQLがRowsAffected=0を返すため、行数チェックはしない。
	_, err := r.DB.Exec("UPDATE users SET name = ?, avatar_url = ?, updated_at = ? WHERE id = ?", name, avatarURL, time.Now(), id)
	if err != nil {
		log.Printf("Failed to update user profile: %v", err)
		return fmt.Errorf("could not update user: %w", err)
	}
	return nil
}
