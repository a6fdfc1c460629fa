package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/animetrack/anime-tracker/internal/core/domain"
	"github.com/animetrack/anime-tracker/internal/core/ports"
)

const collectionAnime = "anime"

type AnimeRepository struct {
	col   *mongo.Collection
	users *mongo.Collection
	ids   *sequence
}

func NewAnimeRepository(db *mongo.Database) *AnimeRepository {
	return &AnimeRepository{
		col:   db.Collection(collectionAnime),
		users: db.Collection(collectionUsers),
		ids:   newSequence(db, collectionAnime),
	}
}

var _ ports.AnimeRepository = (*AnimeRepository)(nil)

type mongoAnime struct {
	ID             uint   `bson:"_id"`
	UserID         uint   `bson:"user_id"`
	Title          string `bson:"title"`
	Saison         int    `bson:"saison"`
	EpisodeWatched int    `bson:"episode_watched"`
	EpisodeTotal   int    `bson:"episode_total"`
	Status         bool   `bson:"status"`
	CreatedAt      int64  `bson:"created_at"`
	UpdatedAt      int64  `bson:"updated_at"`

	// filled by the $lookup in FindByID only
	Owner []mongoUser `bson:"owner,omitempty"`
}

func (ma *mongoAnime) toDomain() *domain.Anime {
	a := &domain.Anime{
		ID:             ma.ID,
		UserID:         ma.UserID,
		Title:          ma.Title,
		Saison:         ma.Saison,
		EpisodeWatched: ma.EpisodeWatched,
		EpisodeTotal:   ma.EpisodeTotal,
		Status:         ma.Status,
		CreatedAt:      unixToTime(ma.CreatedAt),
		UpdatedAt:      unixToTime(ma.UpdatedAt),
	}
	if len(ma.Owner) > 0 {
		a.User = ma.Owner[0].toDomain().Public()
	}
	return a
}

func ownedBy(ownerID, id uint) bson.M {
	return bson.M{"_id": id, "user_id": ownerID}
}

func (r *AnimeRepository) Create(ctx context.Context, anime *domain.Anime) (*domain.Anime, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return nil, err
	}

	doc := mongoAnime{
		ID:             id,
		UserID:         anime.UserID,
		Title:          anime.Title,
		Saison:         anime.Saison,
		EpisodeWatched: anime.EpisodeWatched,
		EpisodeTotal:   anime.EpisodeTotal,
		Status:         anime.Status,
		CreatedAt:      anime.CreatedAt.Unix(),
		UpdatedAt:      anime.UpdatedAt.Unix(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert anime: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID joins the owner document so the caller gets the public user fields.
func (r *AnimeRepository) FindByID(ctx context.Context, ownerID, id uint) (*domain.Anime, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: ownedBy(ownerID, id)}},
		{{Key: "$limit", Value: 1}},
		{{Key: "$lookup", Value: bson.M{
			"from":         r.users.Name(),
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "owner",
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("find anime: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoAnime
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode anime: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrAnimeNotFound
	}
	return docs[0].toDomain(), nil
}

func (r *AnimeRepository) ListByUser(ctx context.Context, ownerID uint) ([]*domain.Anime, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": ownerID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list anime: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*domain.Anime, 0)
	for cur.Next(ctx) {
		var doc mongoAnime
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode anime: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list anime: %w", err)
	}
	return out, nil
}

func (r *AnimeRepository) Update(ctx context.Context, ownerID, id uint, fields domain.AnimeFields) (*domain.Anime, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":           fields.Title,
		"saison":          fields.Saison,
		"episode_watched": fields.EpisodeWatched,
		"episode_total":   fields.EpisodeTotal,
		"status":          fields.Status,
		"updated_at":      time.Now().UTC().Unix(),
	}}

	var doc mongoAnime
	err := r.col.FindOneAndUpdate(ctx, ownedBy(ownerID, id), update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAnimeNotFound
		}
		return nil, fmt.Errorf("update anime: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AnimeRepository) Delete(ctx context.Context, ownerID, id uint) (*domain.Anime, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoAnime
	if err := r.col.FindOneAndDelete(ctx, ownedBy(ownerID, id)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAnimeNotFound
		}
		return nil, fmt.Errorf("delete anime: %w", err)
	}
	return doc.toDomain(), nil
}
