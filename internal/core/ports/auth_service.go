package ports

import (
	"context"

	"github.com/virtualvault/storefront/internal/core/domain"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  any
	Answer   string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns domain.ErrUserNotFound for an unknown e-mail and
	// domain.ErrInvalidCredentials for a wrong password.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ForgotPassword(ctx context.Context, email, answer, newPassword string) error
}
