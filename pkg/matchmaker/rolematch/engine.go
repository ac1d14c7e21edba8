// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package rolematch implements the role-balanced room matcher.
package rolematch

import (
	"fmt"
	"maps"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/config"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/constants"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/envelope"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/matchmaker"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/metrics"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
	reordertool "github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/utils/reorder-tool"
)

var _ matchmaker.Matcher = (*Engine)(nil)

// Engine fills rooms role by role inside a widening score window around an anchor candidate.
type Engine struct {
	cfg     *config.Config
	metrics metrics.MatchmakingMetrics
	pool    *models.Pool
}

func New(cfg *config.Config, m metrics.MatchmakingMetrics) *Engine {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Engine{
		cfg:     cfg,
		metrics: m,
		pool:    models.NewPool(),
	}
}

// Match forms as many complete rooms as the candidates allow.
// The first room is the one mirrored in the result's Assignments and MaxWindow.
func (e *Engine) Match(rootScope *envelope.Scope, request matchmaker.Request) (models.MatchResult, error) {
	scope := rootScope.NewChildScope("rolematch.Match")
	defer scope.Finish()

	for i, candidate := range request.Queue {
		if err := candidate.Validate(); err != nil {
			return models.MatchResult{}, fmt.Errorf("%w: candidate %d (id %q)", err, i, candidate.ID)
		}
	}

	var (
		matchTimer    elapsedTimer
		formRoomTimer elapsedTimer
		result        models.MatchResult
	)
	matchTimer.start()

	defer func() {
		matchTimer.end()

		elapsedTimeMaps := map[string]time.Duration{
			constants.MatchFunction:    matchTimer.elapsed(),
			constants.FillRoomFunction: formRoomTimer.totalElapsed(),
		}

		scope.Log.WithFields(logrus.Fields{
			"gameID":         request.GameID,
			"mode":           request.Mode,
			"rooms":          len(result.Rooms),
			"anchorAttempts": result.Metadata.AnchorAttempts,
			"elapsed":        elapsedTimeMaps,
		}).Debug("rolematch match done")

		if e.metrics == nil {
			return
		}
		for k, v := range elapsedTimeMaps {
			e.metrics.AddMatchElapsedTimeMs(request.GameID, request.Mode, k, v)
		}
		if result.Ready {
			e.metrics.AddRoomsFormed(request.GameID, request.Mode, len(result.Rooms))
		}
		if result.Error != nil {
			e.metrics.AddUnmatchedReason(request.GameID, request.Mode, result.Error.Code)
		}
	}()

	windows := matchmaker.NormalizeScoreWindows(request.ScoreWindows, e.cfg.ScoreWindows)
	queueCount, poolCount := request.TotalCandidates()
	result = models.MatchResult{
		Assignments: []models.RoleAssignment{},
		Rooms:       []models.Room{},
		MaxWindow:   windows[len(windows)-1],
		Metadata: models.MatchMetadata{
			ScoreWindows:   windows,
			CandidateCount: len(request.Queue),
			QueueCount:     queueCount,
			PoolCount:      poolCount,
			AliveCounts:    maps.Clone(request.AliveCounts),
			Seed:           request.Seed,
		},
	}
	scope.SetAttributes(envelope.GameIDTag, request.GameID)
	scope.SetAttributes(envelope.ModeTag, request.Mode)

	roles, err := matchmaker.MergeRoles(request.Roles)
	if err != nil {
		scope.Log.WithError(err).Debug("invalid role requirements")
		result.Error = &models.MatchError{Code: models.ErrorCodeInvalidRoles}
		return result, nil
	}
	result.TotalSlots = matchmaker.TotalSlots(roles)

	needs := roleNeeds(roles, request.AliveCounts)
	if len(needs) == 0 {
		result.Error = &models.MatchError{Code: models.ErrorCodeRolesAlreadyFilled}
		return result, nil
	}

	remaining := canonicalOrder(needs, request.Queue)
	for e.cfg.MaxRoomsPerMatch <= 0 || len(result.Rooms) < e.cfg.MaxRoomsPerMatch {
		formRoomTimer.start()
		attempt := e.formRoom(needs, remaining, windows)
		formRoomTimer.end()

		result.Metadata.AnchorAttempts += attempt.anchorAttempts
		if attempt.err != nil {
			if len(result.Rooms) == 0 {
				result.Error = attempt.err
				result.Assignments = attempt.partial
			}
			break
		}

		result.Rooms = append(result.Rooms, attempt.room)
		remaining = removeRoomMembers(remaining, attempt.room)
	}

	if len(result.Rooms) > 0 {
		primary := result.Rooms[0]
		result.Ready = true
		result.MaxWindow = primary.MaxWindow
		result.Assignments = cloneAssignments(primary.Assignments)
		scope.SetAttributes(envelope.RoomCountTag, len(result.Rooms))
	}

	return result, nil
}

type roomAttempt struct {
	room           models.Room
	err            *models.MatchError
	partial        []models.RoleAssignment
	anchorAttempts int
}

// formRoom walks the windows narrowest first and, per window, rotates the anchor through
// the candidates of the first role until one room is filled.
func (e *Engine) formRoom(needs []models.RoleRequirement, remaining map[string][]models.Candidate, windows []int) roomAttempt {
	var attempt roomAttempt
	widest := windows[len(windows)-1]
	bestMissing := math.MaxInt

	for _, window := range windows {
		for anchor := range e.anchors(needs, remaining) {
			attempt.anchorAttempts++
			assignments, missing := e.fill(needs, remaining, &anchor, float64(window))
			if missing == 0 {
				attempt.room = newRoom(assignments, window, anchor.Score)
				return attempt
			}
			if window == widest && missing < bestMissing {
				bestMissing = missing
				attempt.partial = assignments
			}
		}
	}

	attempt.err = e.classifyFailure(needs, remaining)
	if attempt.partial == nil {
		attempt.partial, _ = e.fill(needs, remaining, nil, float64(widest))
	}
	return attempt
}

// classifyFailure tells a score gap (seats could be filled ignoring scores) from a role shortfall.
func (e *Engine) classifyFailure(needs []models.RoleRequirement, remaining map[string][]models.Candidate) *models.MatchError {
	var best []models.RoleAssignment
	bestMissing := math.MaxInt
	for anchor := range e.anchors(needs, remaining) {
		assignments, missing := e.fill(needs, remaining, &anchor, math.Inf(1))
		if missing == 0 {
			return &models.MatchError{Code: models.ErrorCodeScoreGap}
		}
		if missing < bestMissing {
			bestMissing = missing
			best = assignments
		}
	}
	if best == nil {
		best, _ = e.fill(needs, remaining, nil, math.Inf(1))
	}

	shortfalls := make([]models.RoleShortfall, 0, len(best))
	for _, assignment := range best {
		if missing := assignment.Slots - len(assignment.Members); missing > 0 {
			shortfalls = append(shortfalls, models.RoleShortfall{Role: assignment.Role, Missing: missing})
		}
	}
	return &models.MatchError{Code: models.ErrorCodeRoleShortfall, Shortfalls: shortfalls}
}

// anchors yields the candidates of the first role in rotation order, bounded by FindAnchorMaxLoop.
func (e *Engine) anchors(needs []models.RoleRequirement, remaining map[string][]models.Candidate) func(yield func(models.Candidate) bool) {
	return func(yield func(models.Candidate) bool) {
		candidates := remaining[needs[0].Name]
		rotation := reordertool.NewOnePointerByLength(len(candidates))
		rotation.SetOptions(reordertool.Options{SkipEmpty: true, MaxLoop: e.cfg.FindAnchorMaxLoop})
		for rotation.HasNext() {
			if !yield(candidates[rotation.Pointer()]) {
				return
			}
		}
	}
}

// fill seats members role by role in canonical order. The anchor, when given, takes the first
// seat of the first role and fixes the score band; otherwise the first accepted member does.
// It returns the assignments and the number of seats left empty.
func (e *Engine) fill(needs []models.RoleRequirement, remaining map[string][]models.Candidate, anchor *models.Candidate, window float64) ([]models.RoleAssignment, int) {
	var (
		missing     int
		anchorScore float64
		hasAnchor   bool
	)
	usedHeroIDs := make(map[string]struct{})
	if anchor != nil {
		usedHeroIDs[anchor.HeroID] = struct{}{}
		anchorScore = anchor.Score
		hasAnchor = true
	}

	assignments := make([]models.RoleAssignment, 0, len(needs))
	for i, need := range needs {
		members := e.pool.GetCandidates()
		if i == 0 && anchor != nil {
			members = append(members, *anchor)
		}

		for _, candidate := range remaining[need.Name] {
			if len(members) >= need.SlotCount {
				break
			}
			if anchor != nil && candidate.ID == anchor.ID {
				continue
			}
			if _, used := usedHeroIDs[candidate.HeroID]; used {
				continue
			}
			if hasAnchor && math.Abs(candidate.Score-anchorScore) > window {
				continue
			}
			if !hasAnchor {
				anchorScore = candidate.Score
				hasAnchor = true
			}
			usedHeroIDs[candidate.HeroID] = struct{}{}
			members = append(members, candidate)
		}

		missing += need.SlotCount - len(members)
		assignments = append(assignments, models.RoleAssignment{
			Role:    need.Name,
			Slots:   need.SlotCount,
			Members: append(make([]models.Candidate, 0, len(members)), members...),
		})
		e.pool.PutCandidates(members)
	}

	return assignments, missing
}

func cloneAssignments(assignments []models.RoleAssignment) []models.RoleAssignment {
	cloned := make([]models.RoleAssignment, 0, len(assignments))
	for _, assignment := range assignments {
		assignment.Members = append(make([]models.Candidate, 0, len(assignment.Members)), assignment.Members...)
		cloned = append(cloned, assignment)
	}
	return cloned
}
