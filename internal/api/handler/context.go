package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/animetrack/anime-tracker/internal/api/middleware"
)

// ctxSubject returns the user ID the auth gate verified. A missing subject
// means the route was mounted without the gate, so fail closed with 401.
func ctxSubject(c echo.Context) (uint, error) {
	id, ok := middleware.SubjectID(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}

// pathID parses the :id route parameter. Zero is not a valid record ID.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid anime id")
	}
	return uint(id), nil
}
