package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims はセッショントークンに含まれるユーザー情報です。
type SessionClaims struct {
	UserID   int
	Nickname string
}

// SessionService はセッショントークン（Cookieに入れるJWT）の生成と検証を扱います。
type SessionService struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionService は新しいSessionServiceを作成します。
func NewSessionService(secret string, ttl time.Duration) *SessionService {
	return &SessionService{secret: []byte(secret), ttl: ttl}
}

// TTL はセッションの有効期間を返します。Cookieの寿命に使います。
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// GenerateToken はログイン済みユーザーのセッショントークンを生成します。
func (s *SessionService) GenerateToken(userID int, nickname string) (string, error) {
	claims := &jwt.MapClaims{
		"user_id":  userID,
		"nickname": nickname,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken はセッショントークンを検証し、クレームを返します。
func (s *SessionService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid user_id")
	}
	nickname, ok := claims["nickname"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid nickname")
	}
	return &SessionClaims{UserID: int(userIDFloat), Nickname: nickname}, nil
}
