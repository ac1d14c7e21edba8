// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package matchmaker

import (
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

// Request is one matching attempt for a game and mode.
type Request struct {
	GameID       string                   // The game the candidates queued for
	Mode         string                   // The queue mode, used for metrics labels
	Roles        []models.RoleRequirement // Ordered role requirements of one room
	Queue        []models.Candidate       // Candidates in arrival order (queue first, pool appended)
	ScoreWindows []int                    // Ascending score windows, empty means the configured default
	AliveCounts  map[string]int           // Brawl only: live occupancy per role, reduces the need of that role
	Seed         int64                    // Shuffle seed the pool was built with, echoed in metadata
}

// TotalCandidates counts candidates per source.
func (r Request) TotalCandidates() (queue int, pool int) {
	for _, candidate := range r.Queue {
		if candidate.IsStandin() {
			pool++
			continue
		}
		queue++
	}
	return queue, pool
}
