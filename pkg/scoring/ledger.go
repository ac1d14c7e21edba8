// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package scoring

import (
	"errors"
	"maps"
	"sync"

	"github.com/go-openapi/swag"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

var ErrAlreadySettled = errors.New("participant already settled for this session")

// RoleScoreRule is the settlement rule of one role.
type RoleScoreRule struct {
	WinPoint      int
	WinCap        int
	LossPenalty   int
	ScoreDeltaMin *int
	ScoreDeltaMax *int
}

// Ledger accumulates settled deltas per owner across sessions.
// Each participant, identified by its hero id, is settled at most once per session. An owner
// holding several seats of one session is credited the sum of their deltas.
type Ledger struct {
	mu sync.Mutex

	defaultRule RoleScoreRule
	roleRules   map[string]RoleScoreRule
	bounds      Bounds

	scores  map[string]int
	settled map[string]map[string]struct{} // sessionID -> heroIDs
}

func NewLedger(defaultRule RoleScoreRule, bounds Bounds) *Ledger {
	return &Ledger{
		defaultRule: defaultRule,
		roleRules:   make(map[string]RoleScoreRule),
		bounds:      bounds,
		scores:      make(map[string]int),
		settled:     make(map[string]map[string]struct{}),
	}
}

// SetRoleRule overrides the settlement rule of role.
func (l *Ledger) SetRoleRule(role string, rule RoleScoreRule) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.roleRules[role] = rule
}

// SetScore seeds the running score of an owner.
func (l *Ledger) SetScore(ownerID string, score int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scores[ownerID] = score
}

// Settle computes the delta of every entry with its role rule, records it and returns the
// entries with ScoreDelta filled in. Participants already settled for the session are not credited again.
func (l *Ledger) Settle(sessionID string, entries []models.OutcomeLedgerEntry) []models.OutcomeLedgerEntry {
	settled := make([]models.OutcomeLedgerEntry, 0, len(entries))
	for _, entry := range entries {
		rule := l.ruleFor(entry.Role)
		entry.ScoreDelta = ComputeSessionScore(SessionScoreInput{
			Wins:          float64(entry.Wins),
			Losses:        float64(entry.Losses),
			WinPoint:      float64(rule.WinPoint),
			WinCap:        float64(rule.WinCap),
			LossPenalty:   float64(rule.LossPenalty),
			ScoreDeltaMin: toFloatPtr(rule.ScoreDeltaMin),
			ScoreDeltaMax: toFloatPtr(rule.ScoreDeltaMax),
		})
		// ErrAlreadySettled leaves the running score untouched
		_ = l.Record(sessionID, entry.HeroID, entry.OwnerID, entry.ScoreDelta)
		settled = append(settled, entry)
	}
	return settled
}

// Record adds the delta of the participant heroID to the running score of ownerID, once per
// session and participant.
func (l *Ledger) Record(sessionID, heroID, ownerID string, delta int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	participants, ok := l.settled[sessionID]
	if !ok {
		participants = make(map[string]struct{})
		l.settled[sessionID] = participants
	}
	if _, done := participants[heroID]; done {
		return ErrAlreadySettled
	}
	participants[heroID] = struct{}{}
	l.scores[ownerID] = ApplyScoreDelta(l.scores[ownerID], delta, l.bounds)
	return nil
}

// Total returns the running score of an owner.
func (l *Ledger) Total(ownerID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.scores[ownerID]
}

// Totals returns a copy of every running score.
func (l *Ledger) Totals() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return maps.Clone(l.scores)
}

func (l *Ledger) ruleFor(role string) RoleScoreRule {
	l.mu.Lock()
	defer l.mu.Unlock()
	if rule, ok := l.roleRules[role]; ok {
		return rule
	}
	return l.defaultRule
}

func toFloatPtr(v *int) *float64 {
	if v == nil {
		return nil
	}
	return swag.Float64(float64(*v))
}
