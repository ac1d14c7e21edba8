// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

// Participant results.
const (
	ResultPending    = "pending"
	ResultWin        = "win"
	ResultLoss       = "loss"
	ResultEliminated = "eliminated"
)

// TurnTimerState is the turn timer bookkeeping of one session.
type TurnTimerState struct {
	BaseSeconds             int  `json:"baseSeconds"`
	FirstTurnBonusSeconds   int  `json:"firstTurnBonusSeconds"`
	DropInBonusSeconds      int  `json:"dropInBonusSeconds"`
	FirstTurnBonusAvailable bool `json:"firstTurnBonusAvailable"`
	PendingDropInBonus      bool `json:"pendingDropInBonus"`
	LastTurnNumber          int  `json:"lastTurnNumber"`
	LastDropInAppliedTurn   int  `json:"lastDropInAppliedTurn"`
}

// OutcomeLedgerEntry is the running outcome of one original participant of a session.
type OutcomeLedgerEntry struct {
	OwnerID      string `json:"ownerId"`
	HeroID       string `json:"heroId"`
	HeroName     string `json:"heroName"`
	Role         string `json:"role"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Eliminated   bool   `json:"eliminated"`
	Result       string `json:"result"`
	ScoreDelta   int    `json:"scoreDelta"`
	ActiveHeroID string `json:"activeHeroId"` // differs from HeroID after a drop-in
}
