package ports

import (
	"context"

	"github.com/animetrack/anime-tracker/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// ExistsByEmailOrUsername reports whether any account already uses the
	// email or the username.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	// Create inserts the user and returns it with its assigned ID.
	// A unique index violation is reported as domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
