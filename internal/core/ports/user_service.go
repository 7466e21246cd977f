package ports

import (
	"context"

	"github.com/virtualvault/storefront/internal/core/domain"
)

// ProfileInput carries a self-service update. Empty strings and a nil
// Address keep the stored value. Email is accepted but never applied.
type ProfileInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  any
}

type UserService interface {
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// UpdateRole and DeleteUser return a nil user without error when the
	// target does not exist.
	UpdateRole(ctx context.Context, actorID, userID string, role domain.Role) (*domain.User, error)
	DeleteUser(ctx context.Context, actorID, userID string) (*domain.User, error)
}
