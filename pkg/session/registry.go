// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package session keeps the per-session records of running matches: the outcome ledger of
// every original participant and the turn timer.
package session

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/config"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/dropin"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/envelope"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/scoring"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/utils"
)

// TurnOutcome is the result of one participant for one turn. A participant is identified by
// the hero it was seated with, so an owner holding several seats reports each one.
type TurnOutcome struct {
	HeroID string
	Result string // models.ResultWin, models.ResultLoss or models.ResultEliminated
}

type record struct {
	id        string
	gameID    string
	mode      string
	roomID    string
	entries   []models.OutcomeLedgerEntry
	timer     models.TurnTimerState
	completed bool
	openedAt  time.Time
}

func (r *record) entryIndex(heroID string) int {
	return slices.IndexFunc(r.entries, func(entry models.OutcomeLedgerEntry) bool {
		return entry.HeroID == heroID
	})
}

// Registry is an arena of session records keyed by session id.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*record

	cfg    *config.Config
	dropIn *dropin.Service
	ledger *scoring.Ledger
	now    func() time.Time
}

type Option func(*Registry)

// WithLedger settles completed sessions into ledger.
func WithLedger(ledger *scoring.Ledger) Option {
	return func(r *Registry) { r.ledger = ledger }
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(cfg *config.Config, dropIn *dropin.Service, opts ...Option) *Registry {
	registry := &Registry{
		sessions: make(map[string]*record),
		cfg:      cfg,
		dropIn:   dropIn,
		now:      time.Now,
	}
	if registry.dropIn == nil {
		registry.dropIn = dropin.NewService(nil, nil)
	}
	for _, opt := range opts {
		opt(registry)
	}
	return registry
}

// Open creates a session from a committed room with one pending ledger entry per member.
func (r *Registry) Open(rootScope *envelope.Scope, gameID, mode string, room models.Room) (string, error) {
	scope := rootScope.NewChildScope("session.Open")
	defer scope.Finish()

	members := room.GetMembers()
	if len(members) == 0 {
		return "", fmt.Errorf("%w: room %q has no members", models.ErrParticipantNotFound, room.ID)
	}

	entries := make([]models.OutcomeLedgerEntry, 0, len(members))
	for _, member := range members {
		entries = append(entries, models.OutcomeLedgerEntry{
			OwnerID:      member.OwnerID,
			HeroID:       member.HeroID,
			HeroName:     member.HeroName,
			Role:         member.Role,
			Result:       models.ResultPending,
			ActiveHeroID: member.HeroID,
		})
	}

	rec := &record{
		id:       utils.GenerateUUID(),
		gameID:   gameID,
		mode:     mode,
		roomID:   room.ID,
		entries:  entries,
		timer:    dropin.NewTurnTimer(r.cfg).State(),
		openedAt: r.now(),
	}

	r.mu.Lock()
	r.sessions[rec.id] = rec
	r.mu.Unlock()

	scope.Log.WithFields(logrus.Fields{
		"sessionID":    rec.id,
		"roomID":       room.ID,
		"participants": len(entries),
	}).Info("session opened")
	return rec.id, nil
}

// RecordTurn applies the outcomes of one turn to the ledger entries.
// Outcomes are validated before any entry changes.
func (r *Registry) RecordTurn(sessionID string, turn int, outcomes []TurnOutcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, err := r.openRecord(sessionID)
	if err != nil {
		return err
	}

	indexes := make([]int, 0, len(outcomes))
	for _, outcome := range outcomes {
		idx := rec.entryIndex(outcome.HeroID)
		if idx < 0 {
			return fmt.Errorf("%w: hero %q", models.ErrParticipantNotFound, outcome.HeroID)
		}
		switch outcome.Result {
		case models.ResultWin, models.ResultLoss, models.ResultEliminated:
		default:
			return fmt.Errorf("%w: %q", models.ErrInvalidTurnResult, outcome.Result)
		}
		indexes = append(indexes, idx)
	}

	for i, outcome := range outcomes {
		entry := &rec.entries[indexes[i]]
		switch outcome.Result {
		case models.ResultWin:
			entry.Wins++
		case models.ResultLoss:
			entry.Losses++
		case models.ResultEliminated:
			entry.Eliminated = true
		}
		entry.Result = outcome.Result
	}
	rec.timer.LastTurnNumber = max(rec.timer.LastTurnNumber, turn)
	return nil
}

// NextTurnDuration returns the duration of turn and consumes the bonuses it uses.
func (r *Registry) NextTurnDuration(sessionID string, turn int) (time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, err := r.openRecord(sessionID)
	if err != nil {
		return 0, err
	}
	return dropin.TimerFromState(&rec.timer).NextTurnDuration(turn), nil
}

// ApplyDropIn replaces the active hero of the seat opened with heroID by a substitute of the same role picked
// from pool. The original ledger entry is kept. A nil candidate means no substitute was left.
// The returned duration is the bonus credited at once when immediate is set.
func (r *Registry) ApplyDropIn(rootScope *envelope.Scope, sessionID, heroID string, pool []models.Candidate, immediate bool, turn int) (*models.Candidate, time.Duration, error) {
	scope := rootScope.NewChildScope("session.ApplyDropIn")
	defer scope.Finish()

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, err := r.openRecord(sessionID)
	if err != nil {
		return nil, 0, err
	}
	idx := rec.entryIndex(heroID)
	if idx < 0 {
		return nil, 0, fmt.Errorf("%w: hero %q", models.ErrParticipantNotFound, heroID)
	}

	usedHeroIDs := make([]string, 0, len(rec.entries)*2)
	for _, entry := range rec.entries {
		usedHeroIDs = append(usedHeroIDs, entry.HeroID, entry.ActiveHeroID)
	}

	entry := &rec.entries[idx]
	substitute := r.dropIn.Substitute(scope, entry.Role, pool, usedHeroIDs)
	if substitute == nil {
		return nil, 0, nil
	}

	entry.ActiveHeroID = substitute.HeroID
	bonus := dropin.TimerFromState(&rec.timer).RegisterDropInBonus(immediate, turn)

	scope.Log.WithFields(logrus.Fields{
		"sessionID": sessionID,
		"ownerID":   entry.OwnerID,
		"seatHero":  heroID,
		"heroID":    substitute.HeroID,
		"bonus":     bonus,
	}).Info("drop-in applied")
	return substitute, bonus, nil
}

// Complete freezes the session ledger and settles it when a scoring ledger is configured.
func (r *Registry) Complete(rootScope *envelope.Scope, sessionID string) ([]models.OutcomeLedgerEntry, error) {
	scope := rootScope.NewChildScope("session.Complete")
	defer scope.Finish()

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, err := r.openRecord(sessionID)
	if err != nil {
		return nil, err
	}

	if r.ledger != nil {
		rec.entries = r.ledger.Settle(sessionID, rec.entries)
	}
	rec.completed = true

	scope.Log.WithFields(logrus.Fields{
		"sessionID": sessionID,
		"gameID":    rec.gameID,
		"mode":      rec.mode,
		"roomID":    rec.roomID,
		"duration":  r.now().Sub(rec.openedAt),
	}).Info("session completed")
	return slices.Clone(rec.entries), nil
}

// Entries returns a copy of the ledger entries of a session.
func (r *Registry) Entries(sessionID string) ([]models.OutcomeLedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrSessionNotFound, sessionID)
	}
	return slices.Clone(rec.entries), nil
}

// FindByRoom returns the id of the session opened for roomID.
func (r *Registry) FindByRoom(roomID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.sessions {
		if rec.roomID == roomID {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: no session for room %q", models.ErrSessionNotFound, roomID)
}

// Timer returns a copy of the turn timer state of a session.
func (r *Registry) Timer(sessionID string) (models.TurnTimerState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.sessions[sessionID]
	if !ok {
		return models.TurnTimerState{}, fmt.Errorf("%w: %q", models.ErrSessionNotFound, sessionID)
	}
	return rec.timer, nil
}

func (r *Registry) openRecord(sessionID string) (*record, error) {
	rec, ok := r.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrSessionNotFound, sessionID)
	}
	if rec.completed {
		return nil, fmt.Errorf("%w: %q", models.ErrSessionCompleted, sessionID)
	}
	return rec, nil
}
