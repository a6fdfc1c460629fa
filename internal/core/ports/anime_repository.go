package ports

import (
	"context"

	"github.com/animetrack/anime-tracker/internal/core/domain"
)

// AnimeRepository defines persistence for anime records. Every lookup by ID
// is filtered by owner; a record owned by someone else is reported as
// domain.ErrAnimeNotFound.
type AnimeRepository interface {
	Create(ctx context.Context, anime *domain.Anime) (*domain.Anime, error)
	// FindByID loads the record with its owner's public fields.
	FindByID(ctx context.Context, ownerID, id uint) (*domain.Anime, error)
	ListByUser(ctx context.Context, ownerID uint) ([]*domain.Anime, error)
	// Update replaces the mutable fields and returns the stored record.
	Update(ctx context.Context, ownerID, id uint, fields domain.AnimeFields) (*domain.Anime, error)
	// Delete removes the record and returns it as it was before removal.
	Delete(ctx context.Context, ownerID, id uint) (*domain.Anime, error)
}
