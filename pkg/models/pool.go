// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"gopkg.in/typ.v4/sync2"
)

// Pool reusable objects to reduce garbage collector
type Pool struct {
	Candidates *sync2.Pool[[]Candidate]
}

func NewPool() *Pool {
	return &Pool{
		Candidates: &sync2.Pool[[]Candidate]{
			New: func() []Candidate {
				return make([]Candidate, 0, 16)
			},
		},
	}
}

// GetCandidates returns an empty candidate slice from the pool.
func (p *Pool) GetCandidates() []Candidate {
	return p.Candidates.Get()[:0]
}

// PutCandidates returns a candidate slice to the pool.
func (p *Pool) PutCandidates(candidates []Candidate) {
	clear(candidates)
	p.Candidates.Put(candidates[:0])
}
