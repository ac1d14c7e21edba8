// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package verification

import (
	"context"
	"fmt"
	"sync"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/candidatepool"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/config"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/envelope"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/matchmaker/rolematch"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/roles"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/testsetup"
)

const (
	testGameID = "game-1"
	testMode   = "rank"
	testHost   = "host-owner"
)

var testRoles = []models.RoleRequirement{{Name: "tank", SlotCount: 1}, {Name: "dealer", SlotCount: 2}}

var testConfig = &config.Config{ScoreWindows: []int{100, 200}, VerifyTimeoutMs: 200}

type staticRoles struct {
	resolution roles.Resolution
	err        error
}

func (s staticRoles) LoadRoleConfig(context.Context, string) (roles.Resolution, error) {
	return s.resolution, s.err
}

type recordingCommitter struct {
	mu      sync.Mutex
	rooms   []models.Room
	err     error
	counter int
}

func (c *recordingCommitter) Commit(_ *envelope.Scope, _, _ string, room models.Room) (models.Room, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return models.Room{}, c.err
	}
	c.counter++
	room.ID = fmt.Sprintf("room-%d", c.counter)
	c.rooms = append(c.rooms, room)
	return room, nil
}

func readyQueue() []models.Candidate {
	return testsetup.Candidates(
		testsetup.CandidateSpec{Role: "tank", HeroID: "h1", Score: 1200},
		testsetup.CandidateSpec{Role: "dealer", HeroID: "h2", Score: 1190},
		testsetup.CandidateSpec{Role: "dealer", HeroID: "h3", Score: 1230},
		testsetup.CandidateSpec{Role: "dealer", HeroID: "h4", Score: 1500},
	)
}

func newTestService(source candidatepool.Source, committer Committer) *Service {
	return NewService(
		staticRoles{resolution: roles.Resolution{Roles: testRoles}},
		candidatepool.NewBuilder(source),
		rolematch.New(testConfig, testsetup.NewMetrics()),
		committer,
		testsetup.NewMetrics(),
	)
}

// clientResult computes what an honest client sees on source with seed.
func clientResult(source candidatepool.Source, seed int64) models.MatchResult {
	scope := testsetup.NewTestScope()
	snapshot, err := candidatepool.NewBuilder(source).Build(scope, candidatepool.BuildRequest{
		GameID: testGameID, Mode: testMode, Seed: seed,
	})
	if err != nil {
		panic(err)
	}
	result, err := rolematch.New(testConfig, testsetup.NewMetrics()).Match(scope, matchmakerRequest(snapshot))
	if err != nil {
		panic(err)
	}
	return result
}
