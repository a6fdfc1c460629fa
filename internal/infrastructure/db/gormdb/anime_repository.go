package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/animetrack/anime-tracker/internal/core/domain"
	"github.com/animetrack/anime-tracker/internal/core/ports"
)

type AnimeRepository struct {
	db *gorm.DB
}

func NewAnimeRepository(db *gorm.DB) *AnimeRepository {
	return &AnimeRepository{db: db}
}

var _ ports.AnimeRepository = (*AnimeRepository)(nil)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrAnimeNotFound
	}
	return err
}

func (r *AnimeRepository) Create(ctx context.Context, anime *domain.Anime) (*domain.Anime, error) {
	rec := newAnimeRecord(anime)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("insert anime: %w", err)
	}
	return rec.toDomain(), nil
}

func (r *AnimeRepository) FindByID(ctx context.Context, ownerID, id uint) (*domain.Anime, error) {
	var rec animeRecord
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&rec).Error
	if err != nil {
		return nil, notFound(err)
	}
	return rec.toDomain(), nil
}

func (r *AnimeRepository) ListByUser(ctx context.Context, ownerID uint) ([]*domain.Anime, error) {
	var recs []animeRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list anime: %w", err)
	}

	out := make([]*domain.Anime, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, nil
}

// lockOwned loads the owner's record inside tx. Postgres takes a row lock;
// sqlite serializes writers on its own and ignores the clause.
func lockOwned(tx *gorm.DB, ownerID, id uint) (*animeRecord, error) {
	var rec animeRecord
	q := tx
	if tx.Dialector.Name() == DriverPostgres {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Where("id = ? AND user_id = ?", id, ownerID).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *AnimeRepository) Update(ctx context.Context, ownerID, id uint, fields domain.AnimeFields) (*domain.Anime, error) {
	var rec *animeRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if rec, err = lockOwned(tx, ownerID, id); err != nil {
			return err
		}
		if err := tx.Model(rec).Updates(fieldColumns(fields)).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(rec).Error
	})
	if err != nil {
		return nil, notFound(err)
	}
	return rec.toDomain(), nil
}

func (r *AnimeRepository) Delete(ctx context.Context, ownerID, id uint) (*domain.Anime, error) {
	var rec *animeRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if rec, err = lockOwned(tx, ownerID, id); err != nil {
			return err
		}
		return tx.Delete(&animeRecord{}, rec.ID).Error
	})
	if err != nil {
		return nil, notFound(err)
	}
	return rec.toDomain(), nil
}
