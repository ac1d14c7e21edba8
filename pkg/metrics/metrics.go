// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type MatchmakingMetrics interface {
	AddMatchElapsedTimeMs(gameID, mode, function string, elapsedTime time.Duration)
	AddUnmatchedReason(gameID, mode, reason string)
	AddRoomsFormed(gameID, mode string, rooms int)
	AddVerificationOutcome(gameID, mode, outcome string)
	AddDropIn(role, outcome string)
	SetQueueSize(gameID, mode, source string, size int)
}

func NewMetrics(registry *prometheus.Registry) MatchmakingMetrics {
	return setupPrometheusMetrics(registry)
}
