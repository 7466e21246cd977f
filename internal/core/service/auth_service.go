package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/virtualvault/storefront/internal/core/domain"
	"github.com/virtualvault/storefront/internal/core/ports"
	"github.com/virtualvault/storefront/internal/pkg/password"
)

// TokenIssuer signs a session token for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthService implements registration, login and password reset.
type AuthService struct {
	repo   ports.UserRepository
	tokens TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Phone == "" || domain.AddressMissing(in.Address) || in.Answer == "" {
		return nil, domain.ErrInvalidCredentials
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrUserExists
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Address:      in.Address,
		Answer:       in.Answer,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, plain string) (string, *domain.User, error) {
	if email == "" || plain == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if !password.Compare(plain, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// ForgotPassword replaces the password of the user matching both email and
// answer. A miss on either returns domain.ErrWrongAnswer.
func (s *AuthService) ForgotPassword(ctx context.Context, email, answer, newPassword string) error {
	user, err := s.repo.FindByEmailAndAnswer(ctx, email, answer)
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrWrongAnswer
	}
	if err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("forgot password: hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}
