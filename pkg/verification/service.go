// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package verification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/candidatepool"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/constants"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/envelope"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/matchmaker"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/metrics"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/store"
)

// Service is the server side of verification. It rebuilds the candidate pool with the client's
// seed, reruns the matcher and commits the room only when both results agree.
type Service struct {
	roles     RoleLoader
	builder   *candidatepool.Builder
	matcher   matchmaker.Matcher
	committer Committer
	metrics   metrics.MatchmakingMetrics
}

func NewService(roleLoader RoleLoader, builder *candidatepool.Builder, matcher matchmaker.Matcher, committer Committer, m metrics.MatchmakingMetrics) *Service {
	return &Service{
		roles:     roleLoader,
		builder:   builder,
		matcher:   matcher,
		committer: committer,
		metrics:   m,
	}
}

// Verify recomputes the match of a submission. Disagreement is reported in the outcome;
// only infrastructure failures are returned as errors.
func (s *Service) Verify(rootScope *envelope.Scope, submission Submission) (Outcome, error) {
	scope := rootScope.NewChildScope("verification.Service.Verify")
	defer scope.Finish()

	gameID := strings.TrimSpace(submission.GameID)
	mode := strings.TrimSpace(submission.Mode)

	var (
		outcome Outcome
		err     error
		start   = time.Now()
	)
	defer func() {
		scope.Log.WithFields(logrus.Fields{
			"gameID":   gameID,
			"mode":     mode,
			"host":     submission.Host,
			"verified": outcome.Verified,
			"outcome":  outcome.Outcome,
			"reason":   outcome.Reason,
			"elapsed":  time.Since(start),
		}).Info("verification done")

		if s.metrics == nil || err != nil {
			return
		}
		s.metrics.AddMatchElapsedTimeMs(gameID, mode, constants.VerifyFunction, time.Since(start))
		s.metrics.AddVerificationOutcome(gameID, mode, outcome.Outcome)
	}()

	outcome, err = s.verify(scope, gameID, mode, submission)
	return outcome, err
}

func (s *Service) verify(scope *envelope.Scope, gameID, mode string, submission Submission) (Outcome, error) {
	resolution, err := s.roles.LoadRoleConfig(scope.Ctx, gameID)
	if err != nil {
		if errors.Is(err, models.ErrNoRoleInformation) || errors.Is(err, models.ErrInvalidRoleName) ||
			errors.Is(err, models.ErrInvalidSlotCount) || errors.Is(err, models.ErrDuplicateSlotIndex) {
			return Outcome{Outcome: constants.VerifyOutcomeRejected, Reason: ReasonInvalidRoles}, nil
		}
		return Outcome{}, fmt.Errorf("load role config: %w", err)
	}

	snapshot, err := s.builder.Build(scope, candidatepool.BuildRequest{
		GameID:          gameID,
		Mode:            mode,
		RealtimeEnabled: submission.Realtime,
		BrawlEnabled:    mode == constants.ModeBrawl,
		Seed:            submission.Seed,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("build candidate pool: %w", err)
	}

	server, err := s.matcher.Match(scope, matchmaker.Request{
		GameID:      gameID,
		Mode:        mode,
		Roles:       resolution.Roles,
		Queue:       snapshot.Candidates,
		AliveCounts: snapshot.AliveCounts,
		Seed:        snapshot.Seed,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("recompute match: %w", err)
	}

	if equivalent, reason := Compare(submission.ClientResult, server); !equivalent {
		outcome := constants.VerifyOutcomeMismatch
		if reason == ReasonClientNotReady || reason == ReasonServerNotReady {
			outcome = constants.VerifyOutcomeNotReady
		}
		return Outcome{Outcome: outcome, Reason: reason, ServerResult: server}, nil
	}

	room, _ := server.PrimaryRoom()
	if s.committer == nil {
		return Outcome{Verified: true, Outcome: constants.VerifyOutcomeVerified, Room: room, ServerResult: server}, nil
	}

	committed, err := s.committer.Commit(scope, gameID, mode, room)
	if errors.Is(err, store.ErrQueueConflict) {
		return Outcome{Outcome: constants.VerifyOutcomeCommitFailed, Reason: ReasonQueueChanged, ServerResult: server}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("commit room: %w", err)
	}
	return Outcome{Verified: true, Outcome: constants.VerifyOutcomeVerified, Room: committed, ServerResult: server}, nil
}
