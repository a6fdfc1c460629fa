package gormdb

import (
	"time"

	"github.com/animetrack/anime-tracker/internal/core/domain"
)

type userRecord struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:255;not null;uniqueIndex"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"column:password;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type animeRecord struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"not null;index"`
	Title          string `gorm:"size:255;not null"`
	Saison         int    `gorm:"not null;default:0"`
	EpisodeWatched int    `gorm:"not null;default:0"`
	EpisodeTotal   int    `gorm:"not null;default:0"`
	Status         bool   `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	User *userRecord `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (animeRecord) TableName() string { return "anime" }

func newAnimeRecord(a *domain.Anime) *animeRecord {
	return &animeRecord{
		UserID:         a.UserID,
		Title:          a.Title,
		Saison:         a.Saison,
		EpisodeWatched: a.EpisodeWatched,
		EpisodeTotal:   a.EpisodeTotal,
		Status:         a.Status,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (r *animeRecord) toDomain() *domain.Anime {
	a := &domain.Anime{
		ID:             r.ID,
		UserID:         r.UserID,
		Title:          r.Title,
		Saison:         r.Saison,
		EpisodeWatched: r.EpisodeWatched,
		EpisodeTotal:   r.EpisodeTotal,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.User != nil {
		a.User = r.User.toDomain().Public()
	}
	return a
}

// fieldColumns lists every mutable column so zero values are written too.
func fieldColumns(f domain.AnimeFields) map[string]any {
	return map[string]any{
		"title":           f.Title,
		"saison":          f.Saison,
		"episode_watched": f.EpisodeWatched,
		"episode_total":   f.EpisodeTotal,
		"status":          f.Status,
	}
}
