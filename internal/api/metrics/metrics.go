// Package metrics defines the custom Prometheus metrics of the anime tracker
// API: names, labels and help strings live here and nowhere else.
//
// Call Register once per registry before serving /metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/animetrack/anime-tracker/internal/core/domain"
)

const namespace = "anime_tracker"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login calls.
// Labels:
//   - action: "register" or "login"
//   - result: see Result
var AuthAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by outcome.",
	},
	[]string{"action", "result"},
)

// GateRejectionsTotal counts requests the auth gate turned away.
// Label:
//   - reason: "missing", "invalid", "expired" or "malformed"
var GateRejectionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_rejections_total",
		Help:      "Total number of requests rejected by the token gate.",
	},
	[]string{"reason"},
)

// ── Anime metrics ─────────────────────────────────────────────────────────────

// AnimeOperationsTotal counts record operations.
// Labels:
//   - operation: "create", "get", "list", "update" or "delete"
//   - result: see Result
var AnimeOperationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "anime_operations_total",
		Help:      "Total number of anime record operations, by outcome.",
	},
	[]string{"operation", "result"},
)

// Register adds every collector above to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{AuthAttemptsTotal, GateRejectionsTotal, AnimeOperationsTotal} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// Result turns a service error into a low-cardinality label value.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrUserExists):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "denied"
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrAnimeNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// GateReason maps a token error onto the GateRejectionsTotal label.
func GateReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, domain.ErrTokenMissing):
		return "missing"
	default:
		return "invalid"
	}
}
