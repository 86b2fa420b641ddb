package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailOrUsername resolves the identifier used by board invites:
	// it matches either the email or the username.
	FindByEmailOrUsername(ctx context.Context, identifier string) (*domain.User, error)
}
