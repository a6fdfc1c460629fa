package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/animetrack/anime-tracker/internal/api/metrics"
	"github.com/animetrack/anime-tracker/internal/core/domain"
	"github.com/animetrack/anime-tracker/internal/core/ports"
)

// subjectKey is where the verified user ID lives on the echo context.
const subjectKey = "subject_id"

// GateMode decides how a request without a token is turned away.
type GateMode int

const (
	// ModeAPI answers 401 with a JSON error.
	ModeAPI GateMode = iota
	// ModeUI redirects the browser to the login page.
	ModeUI
)

// LoginPath is where ModeUI sends anonymous visitors.
const LoginPath = "/"

// Auth reads the token cookie, verifies it and stores the subject on the
// context for downstream handlers.
func Auth(verifier ports.TokenVerifier, cookieName string, mode GateMode) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				metrics.GateRejectionsTotal.WithLabelValues(metrics.GateReason(domain.ErrTokenMissing)).Inc()
				if mode == ModeUI {
					return c.Redirect(http.StatusFound, LoginPath)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			userID, err := verifier.Verify(cookie.Value)
			if err != nil {
				metrics.GateRejectionsTotal.WithLabelValues(metrics.GateReason(err)).Inc()
				return err
			}

			c.Set(subjectKey, userID)
			return next(c)
		}
	}
}

// SubjectID returns the user ID the gate verified for this request.
func SubjectID(c echo.Context) (uint, bool) {
	id, ok := c.Get(subjectKey).(uint)
	return id, ok && id != 0
}

// WithSubject marks the request as authenticated as userID. Handler tests use
// it to skip the cookie round trip.
func WithSubject(c echo.Context, userID uint) {
	c.Set(subjectKey, userID)
}
