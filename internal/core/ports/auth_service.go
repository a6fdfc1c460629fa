package ports

import (
	"context"

	"github.com/animetrack/anime-tracker/internal/core/domain"
)

// AuthResult is what a successful register or login hands back.
type AuthResult struct {
	User  *domain.User
	Token Token
}

// AuthService covers account registration and login.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
