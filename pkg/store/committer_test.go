// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/onsi/gomega"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/envelope"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/events"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/testsetup"
)

type recordingPublisher struct {
	events []events.RoomCommitted
	err    error
}

func (p *recordingPublisher) PublishRoomCommitted(_ *envelope.Scope, event events.RoomCommitted) error {
	p.events = append(p.events, event)
	return p.err
}

func seedCommitQueue(g testsetup.GomegaWithScope, s Store) models.Room {
	ctx := context.Background()
	g.Expect(s.Migrate(ctx)).To(gomega.Succeed())

	members := testsetup.Candidates(
		testsetup.CandidateSpec{Role: "tank", HeroID: "h1", Score: 1200},
		testsetup.CandidateSpec{Role: "healer", HeroID: "h2", Score: 1210},
	)
	for _, member := range members {
		g.Expect(s.Enqueue(ctx, QueueEntry{
			ID: member.ID, GameID: "game-1", Mode: "rank", OwnerID: member.OwnerID,
			HeroID: member.HeroID, Role: member.Role, Score: member.Score, JoinedAt: member.JoinedAt,
		})).To(gomega.Succeed())
	}

	poolMember := models.Candidate{ID: "p-1", OwnerID: "o9", HeroID: "h9", Role: "dealer", Score: 1190, Source: models.SourcePool}
	return models.Room{
		Assignments: []models.RoleAssignment{
			{Role: "tank", Slots: 1, Members: members[:1]},
			{Role: "healer", Slots: 1, Members: members[1:]},
			{Role: "dealer", Slots: 1, Members: []models.Candidate{poolMember}},
		},
		Ready:     true,
		MaxWindow: 100,
	}
}

func TestRoomCommitter_Commit(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	s := newSQLiteStore(t)
	room := seedCommitQueue(g, s)

	publisher := &recordingPublisher{}
	committer := NewRoomCommitter(s, publisher)

	committed, err := committer.Commit(g.TestScope, "game-1", "rank", room)
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(committed.ID).ToNot(gomega.BeEmpty())

	queue, err := s.ListQueue(context.Background(), "game-1", "rank")
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(queue).To(gomega.BeEmpty())

	g.Expect(publisher.events).To(gomega.HaveLen(1))
	g.Expect(publisher.events[0].RoomID).To(gomega.Equal(committed.ID))
	g.Expect(publisher.events[0].Members).To(gomega.HaveLen(3))

	// the same room cannot be committed twice
	_, err = committer.Commit(g.TestScope, "game-1", "rank", room)
	g.Expect(err).To(gomega.MatchError(ErrQueueConflict))
	g.Expect(publisher.events).To(gomega.HaveLen(1))
}

func TestRoomCommitter_PublishFailureKeepsCommit(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	s := newSQLiteStore(t)
	room := seedCommitQueue(g, s)
	room.ID = "room-fixed"

	committer := NewRoomCommitter(s, &recordingPublisher{err: errors.New("broker down")})

	committed, err := committer.Commit(g.TestScope, "game-1", "rank", room)
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(committed.ID).To(gomega.Equal("room-fixed"))

	queue, err := s.ListQueue(context.Background(), "game-1", "rank")
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(queue).To(gomega.BeEmpty())
}
