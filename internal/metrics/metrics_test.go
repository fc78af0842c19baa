package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRunsTotal_CountsByOutcome(t *testing.T) {
	before := testutil.ToFloat64(MatchRunsTotal.WithLabelValues(OutcomeConflict))
	MatchRunsTotal.WithLabelValues(OutcomeConflict).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(MatchRunsTotal.WithLabelValues(OutcomeConflict)))
}

func TestCollectors_AreLintClean(t *testing.T) {
	problems, err := testutil.CollectAndLint(MatchesCreatedTotal)
	require.NoError(t, err)
	assert.Empty(t, problems)

	problems, err = testutil.CollectAndLint(MatchRunDuration)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	MatchesCreatedTotal.Add(0)
	EventsFailedTotal.Add(0)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), "vacancy_matches_created_total")
	assert.Contains(t, string(body), "vacancy_match_events_failed_total")
	assert.Contains(t, string(body), "vacancy_match_run_duration_seconds")
}
