// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package dropin picks replacements for participants who leave mid-session
// and keeps the turn timer bonuses that come with them.
package dropin

import (
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/typ.v4/slices"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/constants"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/envelope"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/metrics"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

// IntN is the randomness PickSubstitute draws from. *rand.Rand satisfies it.
type IntN interface {
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int { return rand.IntN(n) }

// PickSubstitute returns a uniformly chosen candidate whose hero is not in usedHeroIDs,
// or nil when none remain. A nil rng uses the default entropy source.
func PickSubstitute(pool []models.Candidate, usedHeroIDs []string, rng IntN) *models.Candidate {
	used := make(map[string]struct{}, len(usedHeroIDs))
	for _, heroID := range usedHeroIDs {
		used[heroID] = struct{}{}
	}

	available := slices.Filter(pool, func(candidate models.Candidate) bool {
		if candidate.HeroID == "" {
			return false
		}
		_, taken := used[candidate.HeroID]
		return !taken
	})
	if len(available) == 0 {
		return nil
	}

	if rng == nil {
		rng = defaultRand{}
	}
	picked := available[rng.IntN(len(available))]
	return &picked
}

// Service wraps PickSubstitute with role filtering, logging and metrics.
type Service struct {
	metrics metrics.MatchmakingMetrics
	rng     IntN
}

func NewService(m metrics.MatchmakingMetrics, rng IntN) *Service {
	return &Service{metrics: m, rng: rng}
}

// Substitute picks a replacement for a vacated seat of role. Exhaustion is a nil result, not an error.
func (s *Service) Substitute(rootScope *envelope.Scope, role string, pool []models.Candidate, usedHeroIDs []string) *models.Candidate {
	scope := rootScope.NewChildScope("dropin.Substitute")
	defer scope.Finish()

	role = strings.TrimSpace(role)
	sameRole := slices.Filter(pool, func(candidate models.Candidate) bool {
		return role == "" || strings.TrimSpace(candidate.Role) == role
	})

	picked := PickSubstitute(sameRole, usedHeroIDs, s.rng)

	outcome := constants.DropInOutcomeSubstituted
	if picked == nil {
		outcome = constants.DropInOutcomeExhausted
	}
	scope.Log.WithFields(logrus.Fields{
		"role":      role,
		"poolSize":  len(sameRole),
		"usedHeros": len(usedHeroIDs),
		"outcome":   outcome,
	}).Debug("drop-in substitute")

	if s.metrics != nil {
		s.metrics.AddDropIn(role, outcome)
	}
	return picked
}
