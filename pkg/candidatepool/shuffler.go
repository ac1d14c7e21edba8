// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package candidatepool

import (
	"math/rand/v2"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

// Shuffler reorders the fallback pool. Shuffling the same input with the same seed
// must give the same order, on any machine.
type Shuffler interface {
	Shuffle(seed int64, candidates []models.Candidate)
}

// SeedSource hands out seeds for builds that did not ask for one.
type SeedSource func() int64

// PCGShuffler is a Fisher-Yates shuffle over a PCG generator seeded with seed.
type PCGShuffler struct{}

func (PCGShuffler) Shuffle(seed int64, candidates []models.Candidate) {
	random := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	random.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
}

// RandomSeed draws a non-zero seed from the runtime entropy source.
func RandomSeed() int64 {
	for {
		if seed := rand.Int64(); seed != 0 {
			return seed
		}
	}
}
