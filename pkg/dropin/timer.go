// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package dropin

import (
	"time"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/config"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

// TurnTimer computes turn durations of one session. It is not safe for concurrent use;
// the owner of the session serializes turn advances.
//
// Turn numbers start at 1. LastDropInAppliedTurn of 0 means no bonus was applied yet.
type TurnTimer struct {
	state *models.TurnTimerState
}

// NewTurnTimer returns a timer with the durations from cfg and the first turn bonus available.
func NewTurnTimer(cfg *config.Config) *TurnTimer {
	state := &models.TurnTimerState{FirstTurnBonusAvailable: true}
	if cfg != nil {
		state.BaseSeconds = cfg.TurnBaseSeconds
		state.FirstTurnBonusSeconds = cfg.FirstTurnBonusSeconds
		state.DropInBonusSeconds = cfg.DropInBonusSeconds
	}
	return &TurnTimer{state: state}
}

// TimerFromState resumes a timer over an existing state, which it mutates.
func TimerFromState(state *models.TurnTimerState) *TurnTimer {
	return &TurnTimer{state: state}
}

// State returns a copy of the current bookkeeping.
func (t *TurnTimer) State() models.TurnTimerState {
	return *t.state
}

// NextTurnDuration returns the duration of turn. The first turn bonus is consumed once per
// session and a pending drop-in bonus is consumed by the next call.
func (t *TurnTimer) NextTurnDuration(turn int) time.Duration {
	seconds := t.state.BaseSeconds

	if turn <= 1 && t.state.FirstTurnBonusAvailable {
		seconds += t.state.FirstTurnBonusSeconds
		t.state.FirstTurnBonusAvailable = false
	}
	if t.state.PendingDropInBonus {
		seconds += t.state.DropInBonusSeconds
		t.state.PendingDropInBonus = false
		t.state.LastDropInAppliedTurn = turn
	}

	t.state.LastTurnNumber = turn
	return time.Duration(max(seconds, 0)) * time.Second
}

// RegisterDropInBonus credits the drop-in bonus. An immediate bonus applies to turn at once and
// returns the credited time, or 0 when turn was already bonused or is not a valid turn. Otherwise the bonus is left
// pending for the next NextTurnDuration call and 0 is returned.
func (t *TurnTimer) RegisterDropInBonus(immediate bool, turn int) time.Duration {
	if !immediate {
		t.state.PendingDropInBonus = true
		return 0
	}
	if turn < 1 || t.state.LastDropInAppliedTurn == turn {
		return 0
	}
	t.state.LastDropInAppliedTurn = turn
	return time.Duration(max(t.state.DropInBonusSeconds, 0)) * time.Second
}
