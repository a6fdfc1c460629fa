package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/animetrack/anime-tracker/internal/api/web"
	"github.com/animetrack/anime-tracker/internal/core/domain"
	"github.com/animetrack/anime-tracker/internal/core/ports"
)

// PageHandler renders the HTML shell. Data comes from the same service the
// JSON routes use.
type PageHandler struct {
	animeService ports.AnimeService
}

func NewPageHandler(animeService ports.AnimeService) *PageHandler {
	return &PageHandler{animeService: animeService}
}

type dashboardView struct {
	Animes []*domain.Anime
}

// Index serves the login / register page.
func (h *PageHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, web.PageIndex, nil)
}

// Dashboard lists the signed-in user's records.
func (h *PageHandler) Dashboard(c echo.Context) error {
	userID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	animes, err := h.animeService.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, web.PageDashboard, dashboardView{Animes: animes})
}
