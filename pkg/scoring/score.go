// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package scoring turns session outcomes into bounded score deltas.
package scoring

import (
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/mathutil"
)

// SessionScoreInput holds raw settlement values. Every value is truncated to an integer and
// non-finite values count as 0. Nil bounds are not applied.
type SessionScoreInput struct {
	Wins        float64
	Losses      float64
	WinPoint    float64
	WinCap      float64 // <= 0 means uncapped
	LossPenalty float64

	ScoreDeltaMax *float64
	ScoreDeltaMin *float64
	Floor         *float64
	Ceiling       *float64
}

// Bounds limits a running score.
type Bounds struct {
	Floor   *int
	Ceiling *int
}

// ComputeSessionScore returns min(wins, winCap) * winPoint - lossPenalty, clamped to the delta
// bounds and then to floor and ceiling. The penalty is subtracted once whether or not losses were recorded.
// Intermediate results saturate at the int range.
func ComputeSessionScore(input SessionScoreInput) int {
	wins := max(mathutil.TruncateFinite(input.Wins), 0)
	if winCap := mathutil.TruncateFinite(input.WinCap); winCap > 0 {
		wins = min(wins, winCap)
	}

	delta := mathutil.SaturatingSub(
		mathutil.SaturatingMul(wins, mathutil.TruncateFinite(input.WinPoint)),
		mathutil.TruncateFinite(input.LossPenalty),
	)
	delta = mathutil.Clamp(delta, truncatePtr(input.ScoreDeltaMin), truncatePtr(input.ScoreDeltaMax))
	return mathutil.Clamp(delta, truncatePtr(input.Floor), truncatePtr(input.Ceiling))
}

// ApplyScoreDelta adds delta to current, saturating at the int range, and clamps the sum to bounds.
func ApplyScoreDelta(current, delta int, bounds Bounds) int {
	return mathutil.Clamp(mathutil.SaturatingAdd(current, delta), bounds.Floor, bounds.Ceiling)
}

func truncatePtr(v *float64) *int {
	if v == nil {
		return nil
	}
	truncated := mathutil.TruncateFinite(*v)
	return &truncated
}
