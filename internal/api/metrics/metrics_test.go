package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animetrack/anime-tracker/internal/core/domain"
)

func TestRegister_Twice(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))
	require.NoError(t, Register(reg))
}

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", Result(nil))
	assert.Equal(t, "invalid", Result(fmt.Errorf("%w: title", domain.ErrValidation)))
	assert.Equal(t, "conflict", Result(domain.ErrUserExists))
	assert.Equal(t, "denied", Result(domain.ErrInvalidCredentials))
	assert.Equal(t, "not_found", Result(domain.ErrAnimeNotFound))
	assert.Equal(t, "not_found", Result(domain.ErrUserNotFound))
	assert.Equal(t, "error", Result(errors.New("boom")))
}

func TestGateReason(t *testing.T) {
	assert.Equal(t, "expired", GateReason(domain.ErrTokenExpired))
	assert.Equal(t, "malformed", GateReason(domain.ErrTokenMalformed))
	assert.Equal(t, "missing", GateReason(domain.ErrTokenMissing))
	assert.Equal(t, "invalid", GateReason(domain.ErrTokenInvalid))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestCounters(t *testing.T) {
	c := AnimeOperationsTotal.WithLabelValues("create", "ok")
	before := counterValue(t, c)
	c.Inc()
	assert.Equal(t, before+1, counterValue(t, c))
}
