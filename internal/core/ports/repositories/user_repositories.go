package repositories

import (
	"context"

	"github.com/invofin/board_backend/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for users.
type UserRepositoryFacade interface {
	// SaveUser persists a new user. Returns ErrDuplicate when the email is
	// already taken by an active user.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves an active user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves an active user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUserIDs returns the IDs of all active users (reconciliation pass).
	ListUserIDs(ctx context.Context) ([]string, error)
}
