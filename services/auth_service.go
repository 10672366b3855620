package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// AuthService проверяет общий админский пароль. Отдельных аккаунтов у
// админки нет — один пароль, хеш которого задаётся окружением.
type AuthService interface {
	VerifyAdminPassword(ctx context.Context, password string) error
}

type authService struct {
	adminPasswordHash string
}

func NewAuthService(adminPasswordHash string) AuthService {
	return &authService{adminPasswordHash: adminPasswordHash}
}

func (s *authService) VerifyAdminPassword(_ context.Context, password string) error {
	if password == "" {
		return ErrAuthInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)); err != nil {
		return ErrAuthInvalidPassword
	}
	return nil
}
