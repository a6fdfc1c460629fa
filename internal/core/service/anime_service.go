package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/animetrack/anime-tracker/internal/core/domain"
	"github.com/animetrack/anime-tracker/internal/core/ports"
)

type AnimeService struct {
	repo   ports.AnimeRepository
	logger zerolog.Logger
}

func NewAnimeService(repo ports.AnimeRepository, logger zerolog.Logger) *AnimeService {
	return &AnimeService{repo: repo, logger: logger}
}

var _ ports.AnimeService = (*AnimeService)(nil)

// Create stores a new record owned by userID.
func (s *AnimeService) Create(ctx context.Context, userID uint, fields domain.AnimeFields) (*domain.Anime, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	anime := &domain.Anime{UserID: userID, CreatedAt: now, UpdatedAt: now}
	anime.Apply(fields)

	created, err := s.repo.Create(ctx, anime)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to create anime")
		return nil, fmt.Errorf("create anime: %w", err)
	}

	s.logger.Info().Uint("anime_id", created.ID).Uint("user_id", userID).Str("title", created.Title).Msg("anime created")
	return created, nil
}

func (s *AnimeService) GetByID(ctx context.Context, userID, id uint) (*domain.Anime, error) {
	anime, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, wrapUnlessNotFound("get anime", err)
	}
	return anime, nil
}

func (s *AnimeService) ListByUser(ctx context.Context, userID uint) ([]*domain.Anime, error) {
	animes, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list anime: %w", err)
	}
	if animes == nil {
		animes = []*domain.Anime{}
	}
	return animes, nil
}

// Update replaces title, saison, episode counters and status in one write.
func (s *AnimeService) Update(ctx context.Context, userID, id uint, fields domain.AnimeFields) (*domain.Anime, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, userID, id, fields)
	if err != nil {
		return nil, wrapUnlessNotFound("update anime", err)
	}

	s.logger.Info().Uint("anime_id", id).Uint("user_id", userID).Msg("anime updated")
	return updated, nil
}

func (s *AnimeService) Delete(ctx context.Context, userID, id uint) (*domain.Anime, error) {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return nil, wrapUnlessNotFound("delete anime", err)
	}

	s.logger.Info().Uint("anime_id", id).Uint("user_id", userID).Msg("anime deleted")
	return deleted, nil
}

func wrapUnlessNotFound(op string, err error) error {
	if errors.Is(err, domain.ErrAnimeNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
