package ports

import (
	"context"

	"github.com/virtualvault/storefront/internal/core/domain"
)

// ProfileFields is the full set of self-service fields written back by a
// profile update. Every field is written; the caller merges with the stored
// record first.
type ProfileFields struct {
	Name         string
	Phone        string
	Address      any
	PasswordHash string
}

// UserRepository is the credential store.
//
// Lookups that back a login or an admin check return domain.ErrUserNotFound
// when nothing matches. Admin writes (UpdateRole, Delete) and UpdateProfile
// return (nil, nil) instead: a missing target is not a failure there.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByEmailAndAnswer(ctx context.Context, email, answer string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, id string, fields ProfileFields) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}
