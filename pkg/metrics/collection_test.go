// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_Record(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	m.AddUnmatchedReason("game-1", "rank", "score_gap")
	m.AddUnmatchedReason("game-1", "rank", "score_gap")
	m.AddRoomsFormed("game-1", "rank", 3)
	m.AddVerificationOutcome("game-1", "rank", "verified")
	m.AddDropIn("tank", "substituted")
	m.SetQueueSize("game-1", "rank", "queue", 7)
	m.AddMatchElapsedTimeMs("game-1", "rank", "match", 3*time.Millisecond)

	pm, ok := m.(prometheusMetrics)
	require.True(t, ok)
	assert.Equal(t, float64(2), testutil.ToFloat64(pm.unmatchedReasons.WithLabelValues("game-1", "rank", "score_gap")))
	assert.Equal(t, float64(3), testutil.ToFloat64(pm.roomsFormed.WithLabelValues("game-1", "rank")))
	assert.Equal(t, float64(1), testutil.ToFloat64(pm.verificationOutcomes.WithLabelValues("game-1", "rank", "verified")))
	assert.Equal(t, float64(1), testutil.ToFloat64(pm.dropIns.WithLabelValues("tank", "substituted")))
	assert.Equal(t, float64(7), testutil.ToFloat64(pm.queueSize.WithLabelValues("game-1", "rank", "queue")))

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 6)
}
