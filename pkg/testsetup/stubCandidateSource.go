// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"context"
	"sync"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

// StubCandidateSource serves fixed candidates. Queue can be swapped between calls to
// simulate the queue moving under a running verification.
type StubCandidateSource struct {
	mu sync.Mutex

	Queue       []models.Candidate
	Pool        []models.Candidate
	AliveCounts map[string]int
	Err         error

	QueueCalls int
	PoolCalls  int
	PoolLimit  int
}

func (s *StubCandidateSource) ListQueue(ctx context.Context, gameID, mode string) ([]models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.QueueCalls++
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]models.Candidate(nil), s.Queue...), nil
}

func (s *StubCandidateSource) ListParticipantPool(ctx context.Context, gameID string, limit int) ([]models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PoolCalls++
	s.PoolLimit = limit
	if s.Err != nil {
		return nil, s.Err
	}
	pool := append([]models.Candidate(nil), s.Pool...)
	if limit > 0 && len(pool) > limit {
		pool = pool[:limit]
	}
	return pool, nil
}

func (s *StubCandidateSource) CountAliveByRole(ctx context.Context, gameID string) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	counts := make(map[string]int, len(s.AliveCounts))
	for role, count := range s.AliveCounts {
		counts[role] = count
	}
	return counts, nil
}

// SetQueue replaces the queue served by later calls.
func (s *StubCandidateSource) SetQueue(queue []models.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Queue = queue
}
