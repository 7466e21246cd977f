package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/virtualvault/storefront/internal/core/domain"
	"github.com/virtualvault/storefront/internal/core/ports"
	"github.com/virtualvault/storefront/internal/pkg/password"
)

const minPasswordLength = 6

// UserService covers profile self-service and admin user management.
type UserService struct {
	repo   ports.UserRepository
	audit  ports.AuditRepository
	events ports.EventQueue
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditRepository, events ports.EventQueue, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, audit: audit, events: events, log: log}
}

// UpdateProfile merges in with the stored record and writes every mutable
// field back. The read and the write are separate storage calls with no
// lock between them; of two overlapping updates the later write wins.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ports.ProfileInput) (*domain.User, error) {
	if in.Password != "" && len(in.Password) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	current, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	fields := ports.ProfileFields{
		Name:         current.Name,
		Phone:        current.Phone,
		Address:      current.Address,
		PasswordHash: current.PasswordHash,
	}
	if in.Name != "" {
		fields.Name = in.Name
	}
	if in.Phone != "" {
		fields.Phone = in.Phone
	}
	if in.Address != nil {
		fields.Address = in.Address
	}
	if in.Password != "" {
		hash, err := password.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("update profile: hash password: %w", err)
		}
		fields.PasswordHash = hash
	}

	return s.repo.UpdateProfile(ctx, userID, fields)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) UpdateRole(ctx context.Context, actorID, userID string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.repo.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	value := strconv.Itoa(int(role))
	s.record(ctx, domain.AuditEntry{Kind: domain.EventUserRoleChanged, SubjectID: userID, ActorID: actorID, Value: value})
	s.events.Enqueue(domain.Event{
		ID:         uuid.NewString(),
		Type:       domain.EventUserRoleChanged,
		SubjectID:  userID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
		Payload:    map[string]any{"role": int(role)},
	})
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actorID, userID string) (*domain.User, error) {
	user, err := s.repo.Delete(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	s.record(ctx, domain.AuditEntry{Kind: domain.EventUserDeleted, SubjectID: userID, ActorID: actorID})
	s.events.Enqueue(domain.Event{
		ID:         uuid.NewString(),
		Type:       domain.EventUserDeleted,
		SubjectID:  userID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
		Payload:    map[string]any{"email": user.Email},
	})
	return user, nil
}

func (s *UserService) record(ctx context.Context, entry domain.AuditEntry) {
	entry.At = time.Now().UTC()
	if err := s.audit.Append(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("kind", entry.Kind).Str("subject_id", entry.SubjectID).Msg("audit append failed")
	}
}
