package ports

import (
	"context"

	"github.com/animetrack/anime-tracker/internal/core/domain"
)

// AnimeService defines use-case operations on anime records. userID is the
// verified token subject.
type AnimeService interface {
	Create(ctx context.Context, userID uint, fields domain.AnimeFields) (*domain.Anime, error)
	GetByID(ctx context.Context, userID, id uint) (*domain.Anime, error)
	ListByUser(ctx context.Context, userID uint) ([]*domain.Anime, error)
	Update(ctx context.Context, userID, id uint, fields domain.AnimeFields) (*domain.Anime, error)
	Delete(ctx context.Context, userID, id uint) (*domain.Anime, error)
}
