package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/animetrack/anime-tracker/internal/api/metrics"
	"github.com/animetrack/anime-tracker/internal/core/ports"
)

// AnimeHandler serves the /anime routes. Every route sits behind the auth
// gate and acts on behalf of the verified subject.
type AnimeHandler struct {
	animeService ports.AnimeService
}

func NewAnimeHandler(animeService ports.AnimeService) *AnimeHandler {
	return &AnimeHandler{animeService: animeService}
}

func observe(op string, err error) {
	metrics.AnimeOperationsTotal.WithLabelValues(op, metrics.Result(err)).Inc()
}

// bindAnime decodes and validates a create or update body.
func bindAnime(c echo.Context) (*animeRequest, error) {
	var req animeRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Create adds a record for the signed-in user.
//
// @Summary      Create anime
// @Tags         anime
// @Accept       json
// @Produce      json
// @Param        body  body      animeRequest  true  "Anime fields"
// @Success      201   {object}  animeResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /anime [post]
func (h *AnimeHandler) Create(c echo.Context) error {
	userID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	req, err := bindAnime(c)
	if err != nil {
		observe("create", err)
		return err
	}

	anime, err := h.animeService.Create(c.Request().Context(), userID, req.toFields())
	observe("create", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, animeResponse{Message: "anime created", Anime: anime})
}

// List returns every record of the signed-in user.
//
// @Summary      List anime
// @Tags         anime
// @Produce      json
// @Success      200   {object}  animeListResponse
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /anime [get]
func (h *AnimeHandler) List(c echo.Context) error {
	userID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	animes, err := h.animeService.ListByUser(c.Request().Context(), userID)
	observe("list", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, animeListResponse{Animes: animes})
}

// Get returns one record with its owner.
//
// @Summary      Get anime
// @Tags         anime
// @Produce      json
// @Param        id    path      int  true  "Anime ID"
// @Success      200   {object}  animeResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /anime/{id} [get]
func (h *AnimeHandler) Get(c echo.Context) error {
	userID, err := ctxSubject(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	anime, err := h.animeService.GetByID(c.Request().Context(), userID, id)
	observe("get", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, animeResponse{Anime: anime})
}

// Update replaces all five fields of a record.
//
// @Summary      Update anime
// @Tags         anime
// @Accept       json
// @Produce      json
// @Param        id    path      int           true  "Anime ID"
// @Param        body  body      animeRequest  true  "Anime fields"
// @Success      200   {object}  animeResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /anime/{id} [put]
func (h *AnimeHandler) Update(c echo.Context) error {
	userID, err := ctxSubject(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	req, err := bindAnime(c)
	if err != nil {
		observe("update", err)
		return err
	}

	anime, err := h.animeService.Update(c.Request().Context(), userID, id, req.toFields())
	observe("update", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, animeResponse{Message: "anime updated", Anime: anime})
}

// Delete removes a record and echoes it back.
//
// @Summary      Delete anime
// @Tags         anime
// @Produce      json
// @Param        id    path      int  true  "Anime ID"
// @Success      200   {object}  animeResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /anime/{id} [delete]
func (h *AnimeHandler) Delete(c echo.Context) error {
	userID, err := ctxSubject(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	anime, err := h.animeService.Delete(c.Request().Context(), userID, id)
	observe("delete", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, animeResponse{Message: "anime deleted", Anime: anime})
}
