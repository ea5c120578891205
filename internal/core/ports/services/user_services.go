package services

import (
	"context"

	"github.com/invofin/board_backend/internal/core/domain"
	"github.com/invofin/board_backend/internal/dto"
)

// UserSvcFacade defines user registration and lookup operations.
type UserSvcFacade interface {
	// RegisterUser creates a new user with a hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// AuthenticateUser verifies credentials and returns the user.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// GetUserByID retrieves an active user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUserIDs returns the IDs of all active users.
	ListUserIDs(ctx context.Context) ([]string, error)
}
