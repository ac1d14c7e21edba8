// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package verification

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/candidatepool"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/config"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/constants"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/envelope"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/matchmaker"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/metrics"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

// Server is the remote side of the protocol; *Client satisfies it.
type Server interface {
	Verify(scope *envelope.Scope, submission Submission) (Response, error)
}

// RunRequest describes one client attempt.
type RunRequest struct {
	GameID   string
	Mode     string
	Host     string
	Realtime bool
	Roles    []models.RoleRequirement
}

// RunResult is the local match and what the server made of it.
type RunResult struct {
	Result  models.MatchResult
	Outcome Outcome
	Seed    int64
}

// Protocol is the client side of verification: compute locally, then ask the server to confirm.
type Protocol struct {
	cfg     *config.Config
	builder *candidatepool.Builder
	matcher matchmaker.Matcher
	server  Server
	seeds   candidatepool.SeedSource
	metrics metrics.MatchmakingMetrics
}

func NewProtocol(cfg *config.Config, builder *candidatepool.Builder, matcher matchmaker.Matcher, server Server, m metrics.MatchmakingMetrics) *Protocol {
	return &Protocol{
		cfg:     cfg,
		builder: builder,
		matcher: matcher,
		server:  server,
		seeds:   candidatepool.RandomSeed,
		metrics: m,
	}
}

// Run builds a fresh snapshot, matches it and submits the result. A result that is not ready is
// never sent. A stalled server is cut off after the verify timeout and reported as unverified.
// Only local failures are returned as errors.
func (p *Protocol) Run(rootScope *envelope.Scope, request RunRequest) (RunResult, error) {
	scope := rootScope.NewChildScope("verification.Protocol.Run")
	defer scope.Finish()

	seed := p.seeds()
	snapshot, err := p.builder.Build(scope, candidatepool.BuildRequest{
		GameID:          request.GameID,
		Mode:            request.Mode,
		RealtimeEnabled: request.Realtime,
		BrawlEnabled:    request.Mode == constants.ModeBrawl,
		Seed:            seed,
	})
	if err != nil {
		return RunResult{}, err
	}

	result, err := p.matcher.Match(scope, matchmaker.Request{
		GameID:      request.GameID,
		Mode:        request.Mode,
		Roles:       request.Roles,
		Queue:       snapshot.Candidates,
		AliveCounts: snapshot.AliveCounts,
		Seed:        snapshot.Seed,
	})
	if err != nil {
		return RunResult{}, err
	}

	run := RunResult{Result: result, Seed: snapshot.Seed}
	if !result.Ready {
		run.Outcome = Outcome{Outcome: constants.VerifyOutcomeNotReady, Reason: ReasonClientNotReady}
		return run, nil
	}

	ctx, cancel := context.WithTimeout(scope.Ctx, p.cfg.VerifyTimeout())
	defer cancel()

	response, err := p.server.Verify(scope.WithContext(ctx), Submission{
		GameID:       request.GameID,
		Mode:         request.Mode,
		Host:         request.Host,
		Realtime:     request.Realtime,
		Seed:         snapshot.Seed,
		ClientResult: result.Copy(),
	})
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		run.Outcome = Outcome{Outcome: constants.VerifyOutcomeTimeout, Reason: ReasonRequestTimedOut}
	case err != nil:
		scope.Log.WithError(err).Warn("verification request failed")
		run.Outcome = Outcome{Outcome: constants.VerifyOutcomeServerFailed, Reason: ReasonServerError}
	default:
		run.Outcome = Outcome{Verified: response.Verified, Outcome: response.Outcome, Reason: response.Reason}
		if response.Verified {
			run.Outcome.Room, _ = result.PrimaryRoom()
			run.Outcome.Room.ID = response.RoomID
		}
		if response.ServerResult != nil {
			run.Outcome.ServerResult = *response.ServerResult
		}
	}

	scope.Log.WithFields(logrus.Fields{
		"gameID":   request.GameID,
		"mode":     request.Mode,
		"seed":     snapshot.Seed,
		"verified": run.Outcome.Verified,
		"outcome":  run.Outcome.Outcome,
	}).Debug("client verification attempt")
	if p.metrics != nil && !run.Outcome.Verified {
		p.metrics.AddVerificationOutcome(request.GameID, request.Mode, run.Outcome.Outcome)
	}
	return run, nil
}

// RunUntilVerified repeats Run from a fresh snapshot until a room is verified, the result is not
// ready or attempts run out. The last attempt is returned.
func (p *Protocol) RunUntilVerified(rootScope *envelope.Scope, request RunRequest, attempts int) (RunResult, error) {
	if attempts < 1 {
		return RunResult{}, fmt.Errorf("attempts must be at least 1, got %d", attempts)
	}

	var last RunResult
	for i := 0; i < attempts; i++ {
		run, err := p.Run(rootScope, request)
		if err != nil {
			return RunResult{}, err
		}
		last = run
		if run.Outcome.Verified || !run.Result.Ready {
			break
		}
		if err := rootScope.Ctx.Err(); err != nil {
			return last, err
		}
	}
	return last, nil
}
