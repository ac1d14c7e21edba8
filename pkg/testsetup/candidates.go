// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

// BaseTime is the join time of the first fixture candidate.
var BaseTime = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

var entropy = &ulid.LockedMonotonicReader{MonotonicReader: ulid.Monotonic(rand.New(rand.NewSource(BaseTime.UnixNano())), 0)}

// NewCandidateID returns a time ordered id for t.
func NewCandidateID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// CandidateSpec is a compact description of a fixture candidate.
type CandidateSpec struct {
	Role   string
	HeroID string
	Score  float64
}

// Candidates builds queue candidates joining one second apart, in order.
func Candidates(specs ...CandidateSpec) []models.Candidate {
	candidates := make([]models.Candidate, 0, len(specs))
	for i, spec := range specs {
		joinedAt := BaseTime.Add(time.Duration(i) * time.Second)
		candidates = append(candidates, models.Candidate{
			ID:       NewCandidateID(joinedAt),
			OwnerID:  "owner-" + spec.HeroID,
			HeroID:   spec.HeroID,
			Role:     spec.Role,
			Score:    spec.Score,
			JoinedAt: joinedAt,
			Source:   models.SourceQueue,
		})
	}
	return candidates
}
