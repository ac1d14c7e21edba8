// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"time"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/metrics"
)

type stubMetricsCollection struct{}

func (s stubMetricsCollection) AddMatchElapsedTimeMs(gameID, mode, function string, elapsedTime time.Duration) {
}

func (s stubMetricsCollection) AddUnmatchedReason(gameID, mode, reason string) {
}

func (s stubMetricsCollection) AddRoomsFormed(gameID, mode string, rooms int) {
}

func (s stubMetricsCollection) AddVerificationOutcome(gameID, mode, outcome string) {
}

func (s stubMetricsCollection) AddDropIn(role, outcome string) {
}

func (s stubMetricsCollection) SetQueueSize(gameID, mode, source string, size int) {
}

func NewMetrics() metrics.MatchmakingMetrics {
	return stubMetricsCollection{}
}
