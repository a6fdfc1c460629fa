package domain

import (
	"fmt"
	"strings"
	"time"
)

// AnimeFields are the five attributes a caller may set on an anime record.
// Update replaces all of them at once.
type AnimeFields struct {
	Title          string
	Saison         int
	EpisodeWatched int
	EpisodeTotal   int
	Status         bool
}

// Validate checks the field rules shared by create and update. Watched may
// exceed total; that relation is left to the caller.
func (f AnimeFields) Validate() error {
	switch {
	case strings.TrimSpace(f.Title) == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case f.Saison < 0:
		return fmt.Errorf("%w: saison must not be negative", ErrValidation)
	case f.EpisodeWatched < 0:
		return fmt.Errorf("%w: episodeWatched must not be negative", ErrValidation)
	case f.EpisodeTotal < 0:
		return fmt.Errorf("%w: episodeTotal must not be negative", ErrValidation)
	}
	return nil
}

// Anime is a single watch-progress record owned by exactly one user.
type Anime struct {
	ID             uint        `json:"id"`
	UserID         uint        `json:"userId"`
	Title          string      `json:"title"`
	Saison         int         `json:"saison"`
	EpisodeWatched int         `json:"episodeWatched"`
	EpisodeTotal   int         `json:"episodeTotal"`
	Status         bool        `json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	User           *PublicUser `json:"user,omitempty"`
}

// Fields returns the mutable part of the record.
func (a *Anime) Fields() AnimeFields {
	return AnimeFields{
		Title:          a.Title,
		Saison:         a.Saison,
		EpisodeWatched: a.EpisodeWatched,
		EpisodeTotal:   a.EpisodeTotal,
		Status:         a.Status,
	}
}

// Apply overwrites every mutable field; ID and owner are left alone.
func (a *Anime) Apply(f AnimeFields) {
	a.Title = f.Title
	a.Saison = f.Saison
	a.EpisodeWatched = f.EpisodeWatched
	a.EpisodeTotal = f.EpisodeTotal
	a.Status = f.Status
}
