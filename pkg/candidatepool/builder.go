// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package candidatepool builds the ordered candidate snapshot a match attempt runs on.
package candidatepool

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/constants"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/envelope"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/metrics"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

// Source is the read side of the store the pool is built from.
type Source interface {
	// ListQueue returns the waiting queue entries of a game and mode, oldest first.
	ListQueue(ctx context.Context, gameID, mode string) ([]models.Candidate, error)
	// ListParticipantPool returns past participants of a game that can stand in as opponents.
	ListParticipantPool(ctx context.Context, gameID string, limit int) ([]models.Candidate, error)
	// CountAliveByRole returns the live participant count per role of a game.
	CountAliveByRole(ctx context.Context, gameID string) (map[string]int, error)
}

// BuildRequest selects what goes into a snapshot.
type BuildRequest struct {
	GameID          string
	Mode            string
	RealtimeEnabled bool
	BrawlEnabled    bool
	Seed            int64 // 0 draws a fresh seed
}

// Snapshot is the candidate set of one match attempt: queue first, shuffled pool appended.
type Snapshot struct {
	Candidates  []models.Candidate
	QueueCount  int
	PoolCount   int
	AliveCounts map[string]int
	Seed        int64
}

type Builder struct {
	source    Source
	shuffler  Shuffler
	seeds     SeedSource
	poolLimit int
	metrics   metrics.MatchmakingMetrics
}

type Option func(*Builder)

// WithShuffler replaces the pool shuffler.
func WithShuffler(shuffler Shuffler) Option {
	return func(b *Builder) { b.shuffler = shuffler }
}

// WithSeedSource replaces the seed source used when a request carries no seed.
func WithSeedSource(seeds SeedSource) Option {
	return func(b *Builder) { b.seeds = seeds }
}

// WithPoolLimit bounds the number of participants loaded into the fallback pool.
func WithPoolLimit(limit int) Option {
	return func(b *Builder) { b.poolLimit = limit }
}

// WithMetrics reports snapshot sizes.
func WithMetrics(m metrics.MatchmakingMetrics) Option {
	return func(b *Builder) { b.metrics = m }
}

func NewBuilder(source Source, opts ...Option) *Builder {
	builder := &Builder{
		source:    source,
		shuffler:  PCGShuffler{},
		seeds:     RandomSeed,
		poolLimit: 100,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder
}

// Build loads the queue and, depending on the mode flags, the fallback pool and the alive counts.
// It never writes to the source.
func (b *Builder) Build(rootScope *envelope.Scope, request BuildRequest) (Snapshot, error) {
	scope := rootScope.NewChildScope("candidatepool.Build")
	defer scope.Finish()

	if strings.TrimSpace(request.GameID) == "" {
		return Snapshot{}, models.ErrInvalidGameID
	}

	startTime := time.Now()
	defer func() {
		if b.metrics != nil {
			b.metrics.AddMatchElapsedTimeMs(request.GameID, request.Mode, constants.BuildPoolFunction, time.Since(startTime))
		}
	}()

	seed := request.Seed
	if seed == 0 {
		seed = b.seeds()
	}

	queue, err := b.source.ListQueue(scope.Ctx, request.GameID, request.Mode)
	if err != nil {
		scope.Log.WithError(err).Error("unable to load queue")
		return Snapshot{}, err
	}
	queue = normalizeQueue(queue)

	snapshot := Snapshot{
		Candidates: queue,
		QueueCount: len(queue),
		Seed:       seed,
	}

	if !request.RealtimeEnabled {
		participants, err := b.source.ListParticipantPool(scope.Ctx, request.GameID, b.poolLimit)
		if err != nil {
			scope.Log.WithError(err).Error("unable to load participant pool")
			return Snapshot{}, err
		}
		pool := filterPool(participants, queue)
		b.shuffler.Shuffle(seed, pool)
		snapshot.Candidates = append(snapshot.Candidates, pool...)
		snapshot.PoolCount = len(pool)
	}

	if request.BrawlEnabled {
		aliveCounts, err := b.source.CountAliveByRole(scope.Ctx, request.GameID)
		if err != nil {
			scope.Log.WithError(err).Error("unable to count alive participants")
			return Snapshot{}, err
		}
		snapshot.AliveCounts = aliveCounts
	}

	scope.Log.WithField("queue", snapshot.QueueCount).
		WithField("pool", snapshot.PoolCount).
		WithField("seed", seed).
		Debug("candidate pool built")
	if b.metrics != nil {
		b.metrics.SetQueueSize(request.GameID, request.Mode, models.SourceQueue, snapshot.QueueCount)
		b.metrics.SetQueueSize(request.GameID, request.Mode, models.SourcePool, snapshot.PoolCount)
	}

	return snapshot, nil
}

// normalizeQueue tags queue entries and orders them oldest first, id breaking ties.
func normalizeQueue(queue []models.Candidate) []models.Candidate {
	result := make([]models.Candidate, 0, len(queue))
	for _, candidate := range queue {
		candidate.Source = models.SourceQueue
		result = append(result, candidate)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].JoinedAt.Equal(result[j].JoinedAt) {
			return result[i].JoinedAt.Before(result[j].JoinedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// filterPool drops participants whose owner is already queued, tags the rest as pool
// candidates and sorts them by id so the shuffle starts from a storage independent order.
func filterPool(participants []models.Candidate, queue []models.Candidate) []models.Candidate {
	queuedOwners := make(map[string]struct{}, len(queue))
	for _, candidate := range queue {
		if candidate.OwnerID != "" {
			queuedOwners[candidate.OwnerID] = struct{}{}
		}
	}

	pool := make([]models.Candidate, 0, len(participants))
	for _, participant := range participants {
		if _, queued := queuedOwners[participant.OwnerID]; queued {
			continue
		}
		participant.Source = models.SourcePool
		pool = append(pool, participant)
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].ID < pool[j].ID
	})
	return pool
}
