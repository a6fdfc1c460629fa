package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animetrack/anime-tracker/internal/infrastructure/db"
	"github.com/animetrack/anime-tracker/internal/pkg/config"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := &config.Config{
		Env: "test",
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			CookieName: "token",
			BcryptCost: 4,
		},
	}

	ctx := context.Background()
	store, err := db.Open(ctx, config.StoreConfig{Driver: config.StoreSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(ctx) })

	e, err := NewRouter(cfg, store, zerolog.Nop())
	require.NoError(t, err)
	return e
}

type call struct {
	method string
	path   string
	body   string
	cookie *http.Cookie
	accept string
}

func do(t *testing.T, e *echo.Echo, c call) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if c.body != "" {
		body = strings.NewReader(c.body)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	if c.body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if c.accept != "" {
		req.Header.Set(echo.HeaderAccept, c.accept)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func tokenCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "token" {
			return ck
		}
	}
	t.Fatalf("no token cookie in response")
	return nil
}

func register(t *testing.T, e *echo.Echo, username, email string) *http.Cookie {
	t.Helper()
	rec := do(t, e, call{method: http.MethodPost, path: "/auth/register",
		body: fmt.Sprintf(`{"username":%q,"email":%q,"password":"p1"}`, username, email)})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return tokenCookie(t, rec)
}

const sampleAnime = `{"title":"X","saison":1,"episodeWatched":0,"episodeTotal":12,"status":false}`

func TestRouter_Scenario(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, call{method: http.MethodPost, path: "/auth/register", body: `{"username":"a","email":"a@x.com","password":"p1"}`})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.NotEmpty(t, body["token"])
	assert.NotEmpty(t, body["message"])
	cookie := tokenCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, body["token"], cookie.Value)

	rec = do(t, e, call{method: http.MethodPost, path: "/auth/register", body: `{"username":"b","email":"a@x.com","password":"p2"}`})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, e, call{method: http.MethodPost, path: "/auth/login", body: `{"email":"a@x.com","password":"wrong"}`})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, e, call{method: http.MethodPost, path: "/auth/login", body: `{"email":"a@x.com","password":"p1"}`})
	require.Equal(t, http.StatusCreated, rec.Code)
	cookie = tokenCookie(t, rec)

	rec = do(t, e, call{method: http.MethodPost, path: "/anime", body: sampleAnime, cookie: cookie})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)["anime"].(map[string]any)
	id := int(created["id"].(float64))

	rec = do(t, e, call{method: http.MethodGet, path: fmt.Sprintf("/anime/%d", id), cookie: cookie})
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)["anime"].(map[string]any)
	assert.Equal(t, "X", got["title"])
	assert.Equal(t, float64(1), got["saison"])
	assert.Equal(t, float64(0), got["episodeWatched"])
	assert.Equal(t, float64(12), got["episodeTotal"])
	assert.Equal(t, false, got["status"])
	owner := got["user"].(map[string]any)
	assert.Equal(t, "a", owner["username"])
	assert.NotContains(t, owner, "password")

	rec = do(t, e, call{method: http.MethodDelete, path: fmt.Sprintf("/anime/%d", id), cookie: cookie})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "X", decode(t, rec)["anime"].(map[string]any)["title"])

	rec = do(t, e, call{method: http.MethodGet, path: fmt.Sprintf("/anime/%d", id), cookie: cookie})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_LoginUnknownEmail(t *testing.T) {
	e := newTestServer(t)
	rec := do(t, e, call{method: http.MethodPost, path: "/auth/login", body: `{"email":"ghost@x.com","password":"p"}`})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_RegisterMissingField(t *testing.T) {
	e := newTestServer(t)
	rec := do(t, e, call{method: http.MethodPost, path: "/auth/register", body: `{"username":"a","password":"p1"}`})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "email is required")
}

func TestRouter_AnimeRequiresToken(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, call{method: http.MethodGet, path: "/anime"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decode(t, rec)["error"])

	rec = do(t, e, call{method: http.MethodGet, path: "/anime", cookie: &http.Cookie{Name: "token", Value: "garbage"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid token", decode(t, rec)["error"])
}

func TestRouter_ZeroValuesAcceptedAbsentRejected(t *testing.T) {
	e := newTestServer(t)
	cookie := register(t, e, "a", "a@x.com")

	rec := do(t, e, call{method: http.MethodPost, path: "/anime", cookie: cookie,
		body: `{"title":"Zero","saison":0,"episodeWatched":0,"episodeTotal":0,"status":false}`})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, e, call{method: http.MethodPost, path: "/anime", cookie: cookie,
		body: `{"title":"NoStatus","saison":1,"episodeWatched":0,"episodeTotal":12}`})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, call{method: http.MethodPost, path: "/anime", cookie: cookie,
		body: `{"title":"Neg","saison":1,"episodeWatched":-1,"episodeTotal":12,"status":true}`})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_UpdateAndList(t *testing.T) {
	e := newTestServer(t)
	cookie := register(t, e, "a", "a@x.com")

	rec := do(t, e, call{method: http.MethodPost, path: "/anime", body: sampleAnime, cookie: cookie})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := int(decode(t, rec)["anime"].(map[string]any)["id"].(float64))

	rec = do(t, e, call{method: http.MethodPut, path: fmt.Sprintf("/anime/%d", id), cookie: cookie,
		body: `{"title":"Y","saison":2,"episodeWatched":13,"episodeTotal":12,"status":true}`})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode(t, rec)["anime"].(map[string]any)
	assert.Equal(t, "Y", updated["title"])
	assert.Equal(t, float64(13), updated["episodeWatched"])
	assert.Equal(t, true, updated["status"])

	rec = do(t, e, call{method: http.MethodPut, path: fmt.Sprintf("/anime/%d", id), cookie: cookie, body: `{"title":"only"}`})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, call{method: http.MethodGet, path: "/anime", cookie: cookie})
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode(t, rec)["animes"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "Y", list[0].(map[string]any)["title"])
}

func TestRouter_BadIDAndOwnership(t *testing.T) {
	e := newTestServer(t)
	alice := register(t, e, "alice", "alice@x.com")
	bob := register(t, e, "bob", "bob@x.com")

	for _, p := range []string{"/anime/abc", "/anime/0", "/anime/-3"} {
		rec := do(t, e, call{method: http.MethodGet, path: p, cookie: alice})
		assert.Equal(t, http.StatusBadRequest, rec.Code, p)
	}

	rec := do(t, e, call{method: http.MethodPost, path: "/anime", body: sampleAnime, cookie: alice})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := int(decode(t, rec)["anime"].(map[string]any)["id"].(float64))

	rec = do(t, e, call{method: http.MethodGet, path: fmt.Sprintf("/anime/%d", id), cookie: bob})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, call{method: http.MethodDelete, path: fmt.Sprintf("/anime/%d", id), cookie: bob})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, call{method: http.MethodGet, path: "/anime", cookie: bob})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["animes"])
}

func TestRouter_Pages(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, call{method: http.MethodGet, path: "/"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<form")

	rec = do(t, e, call{method: http.MethodGet, path: "/dashboard"})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	cookie := register(t, e, "a", "a@x.com")
	rec = do(t, e, call{method: http.MethodPost, path: "/anime", body: sampleAnime, cookie: cookie})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, e, call{method: http.MethodGet, path: "/dashboard", cookie: cookie})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<td>X</td>")

	rec = do(t, e, call{method: http.MethodGet, path: "/nowhere", accept: "text/html,application/xhtml+xml"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error 404")

	rec = do(t, e, call{method: http.MethodGet, path: "/nowhere", accept: "application/json"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", decode(t, rec)["error"])
}

func TestRouter_Logout(t *testing.T) {
	e := newTestServer(t)
	rec := do(t, e, call{method: http.MethodPost, path: "/auth/logout"})
	require.Equal(t, http.StatusOK, rec.Code)
	ck := tokenCookie(t, rec)
	assert.Empty(t, ck.Value)
	assert.Less(t, ck.MaxAge, 0)
}

func TestRouter_OpsEndpoints(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, call{method: http.MethodGet, path: "/health"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, call{method: http.MethodGet, path: "/health/ready"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])

	do(t, e, call{method: http.MethodGet, path: "/anime"})
	rec = do(t, e, call{method: http.MethodGet, path: "/metrics"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "anime_tracker_gate_rejections_total")
	assert.Contains(t, rec.Body.String(), "http_requests_total")

	rec = do(t, e, call{method: http.MethodGet, path: "/swagger/doc.json"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/anime/{id}")
}
