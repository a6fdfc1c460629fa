package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animetrack/anime-tracker/internal/api/middleware"
	"github.com/animetrack/anime-tracker/internal/core/domain"
)

type stubAnimeService struct {
	createFn func(ctx context.Context, userID uint, f domain.AnimeFields) (*domain.Anime, error)
	getFn    func(ctx context.Context, userID, id uint) (*domain.Anime, error)
	listFn   func(ctx context.Context, userID uint) ([]*domain.Anime, error)
	updateFn func(ctx context.Context, userID, id uint, f domain.AnimeFields) (*domain.Anime, error)
	deleteFn func(ctx context.Context, userID, id uint) (*domain.Anime, error)
}

func (s *stubAnimeService) Create(ctx context.Context, userID uint, f domain.AnimeFields) (*domain.Anime, error) {
	return s.createFn(ctx, userID, f)
}

func (s *stubAnimeService) GetByID(ctx context.Context, userID, id uint) (*domain.Anime, error) {
	return s.getFn(ctx, userID, id)
}

func (s *stubAnimeService) ListByUser(ctx context.Context, userID uint) ([]*domain.Anime, error) {
	return s.listFn(ctx, userID)
}

func (s *stubAnimeService) Update(ctx context.Context, userID, id uint, f domain.AnimeFields) (*domain.Anime, error) {
	return s.updateFn(ctx, userID, id, f)
}

func (s *stubAnimeService) Delete(ctx context.Context, userID, id uint) (*domain.Anime, error) {
	return s.deleteFn(ctx, userID, id)
}

// animeContext builds a context as the auth gate would leave it.
func animeContext(method, path, body string, id string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := jsonContext(newTestEcho(), method, path, body)
	middleware.WithSubject(c, 7)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

func TestAnimeHandler_Create(t *testing.T) {
	var got domain.AnimeFields
	stub := &stubAnimeService{
		createFn: func(ctx context.Context, userID uint, f domain.AnimeFields) (*domain.Anime, error) {
			require.Equal(t, uint(7), userID)
			got = f
			a := &domain.Anime{ID: 1, UserID: userID}
			a.Apply(f)
			return a, nil
		},
	}
	h := NewAnimeHandler(stub)

	c, rec := animeContext(http.MethodPost, "/anime", `{"title":"X","saison":0,"episodeWatched":0,"episodeTotal":12,"status":false}`, "")
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.AnimeFields{Title: "X", Saison: 0, EpisodeWatched: 0, EpisodeTotal: 12, Status: false}, got)

	var resp struct {
		Message string        `json:"message"`
		Anime   *domain.Anime `json:"anime"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, uint(1), resp.Anime.ID)
	assert.Equal(t, uint(7), resp.Anime.UserID)
}

func TestAnimeHandler_Create_MissingFields(t *testing.T) {
	stub := &stubAnimeService{
		createFn: func(ctx context.Context, userID uint, f domain.AnimeFields) (*domain.Anime, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAnimeHandler(stub)

	bodies := []string{
		`{"saison":1,"episodeWatched":0,"episodeTotal":12,"status":false}`,
		`{"title":"X","episodeWatched":0,"episodeTotal":12,"status":false}`,
		`{"title":"X","saison":1,"episodeTotal":12,"status":false}`,
		`{"title":"X","saison":1,"episodeWatched":0,"status":false}`,
		`{"title":"X","saison":1,"episodeWatched":0,"episodeTotal":12}`,
		`{"title":"X","saison":1,"episodeWatched":0,"episodeTotal":12,"status":null}`,
		`{"title":"X","saison":-1,"episodeWatched":0,"episodeTotal":12,"status":true}`,
	}
	for _, body := range bodies {
		c, _ := animeContext(http.MethodPost, "/anime", body, "")
		assert.ErrorIs(t, h.Create(c), domain.ErrValidation, body)
	}
}

func TestAnimeHandler_RequiresSubject(t *testing.T) {
	h := NewAnimeHandler(&stubAnimeService{})
	c, _ := jsonContext(newTestEcho(), http.MethodGet, "/anime", "")

	var he *echo.HTTPError
	require.True(t, errors.As(h.List(c), &he))
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAnimeHandler_List(t *testing.T) {
	stub := &stubAnimeService{
		listFn: func(ctx context.Context, userID uint) ([]*domain.Anime, error) {
			return []*domain.Anime{}, nil
		},
	}
	h := NewAnimeHandler(stub)

	c, rec := animeContext(http.MethodGet, "/anime", "", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"animes":[]}`, rec.Body.String())
}

func TestAnimeHandler_Get(t *testing.T) {
	stub := &stubAnimeService{
		getFn: func(ctx context.Context, userID, id uint) (*domain.Anime, error) {
			if id == 404 {
				return nil, domain.ErrAnimeNotFound
			}
			return &domain.Anime{ID: id, UserID: userID, Title: "X", User: &domain.PublicUser{ID: userID, Username: "alice"}}, nil
		},
	}
	h := NewAnimeHandler(stub)

	c, rec := animeContext(http.MethodGet, "/anime/3", "", "3")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(3), resp["anime"]["id"])
	assert.Equal(t, "alice", resp["anime"]["user"].(map[string]any)["username"])

	c, _ = animeContext(http.MethodGet, "/anime/404", "", "404")
	assert.ErrorIs(t, h.Get(c), domain.ErrAnimeNotFound)
}

func TestAnimeHandler_BadID(t *testing.T) {
	h := NewAnimeHandler(&stubAnimeService{})

	for _, id := range []string{"abc", "0", "-1", "1.5", ""} {
		c, _ := animeContext(http.MethodGet, "/anime/"+id, "", id)
		var he *echo.HTTPError
		require.True(t, errors.As(h.Get(c), &he), id)
		assert.Equal(t, http.StatusBadRequest, he.Code, id)
	}
}

func TestAnimeHandler_Update(t *testing.T) {
	stub := &stubAnimeService{
		updateFn: func(ctx context.Context, userID, id uint, f domain.AnimeFields) (*domain.Anime, error) {
			a := &domain.Anime{ID: id, UserID: userID}
			a.Apply(f)
			return a, nil
		},
	}
	h := NewAnimeHandler(stub)

	c, rec := animeContext(http.MethodPut, "/anime/5", `{"title":"Y","saison":2,"episodeWatched":3,"episodeTotal":24,"status":true}`, "5")
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	anime := resp["anime"].(map[string]any)
	assert.Equal(t, "Y", anime["title"])
	assert.Equal(t, true, anime["status"])
	assert.NotEmpty(t, resp["message"])

	c, _ = animeContext(http.MethodPut, "/anime/5", `{"title":"Y"}`, "5")
	assert.ErrorIs(t, h.Update(c), domain.ErrValidation)
}

func TestAnimeHandler_Delete(t *testing.T) {
	stub := &stubAnimeService{
		deleteFn: func(ctx context.Context, userID, id uint) (*domain.Anime, error) {
			if id == 9 {
				return nil, domain.ErrAnimeNotFound
			}
			return &domain.Anime{ID: id, UserID: userID, Title: "X"}, nil
		},
	}
	h := NewAnimeHandler(stub)

	c, rec := animeContext(http.MethodDelete, "/anime/2", "", "2")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"X"`)

	c, _ = animeContext(http.MethodDelete, "/anime/9", "", "9")
	assert.ErrorIs(t, h.Delete(c), domain.ErrAnimeNotFound)
}

func TestAnimeHandler_StoreFailurePassesThrough(t *testing.T) {
	boom := errors.New("db down")
	stub := &stubAnimeService{
		listFn: func(ctx context.Context, userID uint) ([]*domain.Anime, error) { return nil, boom },
	}
	h := NewAnimeHandler(stub)

	c, _ := animeContext(http.MethodGet, "/anime", "", "")
	assert.ErrorIs(t, h.List(c), boom)
}
