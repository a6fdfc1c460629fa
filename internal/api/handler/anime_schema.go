package handler

import "github.com/animetrack/anime-tracker/internal/core/domain"

// animeRequest is the body of create and update. Pointers separate an
// absent field from a legitimate zero or false.
type animeRequest struct {
	Title          *string `json:"title" validate:"required"`
	Saison         *int    `json:"saison" validate:"required,min=0"`
	EpisodeWatched *int    `json:"episodeWatched" validate:"required,min=0"`
	EpisodeTotal   *int    `json:"episodeTotal" validate:"required,min=0"`
	Status         *bool   `json:"status" validate:"required"`
}

func (r *animeRequest) toFields() domain.AnimeFields {
	return domain.AnimeFields{
		Title:          *r.Title,
		Saison:         *r.Saison,
		EpisodeWatched: *r.EpisodeWatched,
		EpisodeTotal:   *r.EpisodeTotal,
		Status:         *r.Status,
	}
}

type animeResponse struct {
	Message string        `json:"message,omitempty"`
	Anime   *domain.Anime `json:"anime"`
}

type animeListResponse struct {
	Animes []*domain.Anime `json:"animes"`
}
