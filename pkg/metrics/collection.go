// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusMetrics struct {
	queueSize            prometheus.GaugeVec
	matchElapsedTime     prometheus.HistogramVec
	unmatchedReasons     prometheus.CounterVec
	roomsFormed          prometheus.CounterVec
	verificationOutcomes prometheus.CounterVec
	dropIns              prometheus.CounterVec
}

func setupPrometheusMetrics(registry *prometheus.Registry) prometheusMetrics {
	factory := promauto.With(registry)
	gameLabelDimensions := []string{"game_id", "mode"}

	queueSize := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rankmatch_candidates_in_pool",
			Help: "Number of candidates loaded for a match attempt per source",
		}, append(gameLabelDimensions, "source"))

	//nolint:promlinter
	matchElapsedTime := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rankmatch_match_elapsed_time_ms",
			Help:    "A histogram of matching functions elapsed time in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, append(gameLabelDimensions, "function"))
	//nolint:promlinter
	unmatchedReasons := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rankmatch_unmatched_reasons",
			Help: "A counter for match attempts that did not produce a ready room, by reason",
		}, append(gameLabelDimensions, "reason"))
	roomsFormed := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rankmatch_rooms_formed_total",
			Help: "Number of ready rooms formed by the matching engine",
		}, gameLabelDimensions)
	verificationOutcomes := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rankmatch_verification_outcomes_total",
			Help: "Number of server side verifications by outcome",
		}, append(gameLabelDimensions, "outcome"))
	dropIns := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rankmatch_drop_ins_total",
			Help: "Number of drop-in substitution attempts by outcome",
		}, []string{"role", "outcome"})

	return prometheusMetrics{
		queueSize:            *queueSize,
		matchElapsedTime:     *matchElapsedTime,
		unmatchedReasons:     *unmatchedReasons,
		roomsFormed:          *roomsFormed,
		verificationOutcomes: *verificationOutcomes,
		dropIns:              *dropIns,
	}
}

func (metrics prometheusMetrics) SetQueueSize(gameID, mode, source string, size int) {
	metrics.queueSize.With(prometheus.Labels{"game_id": gameID, "mode": mode, "source": source}).Set(float64(size))
}

func (metrics prometheusMetrics) AddMatchElapsedTimeMs(gameID, mode, function string, elapsedTime time.Duration) {
	metrics.matchElapsedTime.With(prometheus.Labels{"game_id": gameID, "mode": mode, "function": function}).Observe(float64(elapsedTime.Milliseconds()))
}

func (metrics prometheusMetrics) AddUnmatchedReason(gameID, mode, reason string) {
	metrics.unmatchedReasons.With(prometheus.Labels{"game_id": gameID, "mode": mode, "reason": reason}).Add(float64(1))
}

func (metrics prometheusMetrics) AddRoomsFormed(gameID, mode string, rooms int) {
	metrics.roomsFormed.With(prometheus.Labels{"game_id": gameID, "mode": mode}).Add(float64(rooms))
}

func (metrics prometheusMetrics) AddVerificationOutcome(gameID, mode, outcome string) {
	metrics.verificationOutcomes.With(prometheus.Labels{"game_id": gameID, "mode": mode, "outcome": outcome}).Add(float64(1))
}

func (metrics prometheusMetrics) AddDropIn(role, outcome string) {
	metrics.dropIns.With(prometheus.Labels{"role": role, "outcome": outcome}).Add(float64(1))
}
