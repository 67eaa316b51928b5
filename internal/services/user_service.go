package services

import (
	"errors"
	"log"

	"go-todo-share/server/internal/auth"
	"go-todo-share/server/internal/models"
	"go-todo-share/server/internal/repositories"
)

// UserService はユーザー関連のビジネスロジックを扱います。
type UserService struct {
	userRepo *repositories.UserRepository
}

// NewUserService は新しいUserServiceを作成します。
func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// FindOrCreateFromIdentity は外部プロバイダのIDでユーザーを検索し、
// 初回ログインの場合は作成します。2回目以降は表示名とアイコンを最新に更新します。
func (s *UserService) FindOrCreateFromIdentity(identity *auth.Identity) (*models.User, error) {
	user, err := s.userRepo.FindByProviderID(identity.ProviderID)
	if err == nil {
		if user.Name != identity.Name || user.AvatarURL != identity.AvatarURL {
			if err := s.userRepo.UpdateProfile(user.ID, identity.Name, identity.AvatarURL); err != nil {
				// プロフィール更新の失敗はログインを妨げない
				log.Printf("Failed to refresh user profile: %v", err)
			} else {
				user.Name = identity.Name
				user.AvatarURL = identity.AvatarURL
			}
		}
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	newUser := &models.User{
		ProviderID: identity.ProviderID,
		Nickname:   identity.Nickname,
		Name:       identity.Name,
		AvatarURL:  identity.AvatarURL,
	}
	return s.userRepo.Create(newUser)
}

// GetByNickname はnicknameでユーザーを取得します。プロフィールページの表示に使います。
func (s *UserService) GetByNickname(nickname string) (*models.User, error) {
	return s.userRepo.FindByNickname(nickname)
}

// GetByID は内部IDでユーザーを取得します。
func (s *UserService) GetByID(id int) (*models.User, error) {
	return s.userRepo.FindByID(id)
}
