// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package events

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/constants"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/testsetup"
)

func committedRoom() models.Room {
	members := testsetup.Candidates(
		testsetup.CandidateSpec{Role: "tank", HeroID: "h1", Score: 1200},
		testsetup.CandidateSpec{Role: "healer", HeroID: "h2", Score: 1210},
	)
	members[0].HeroName = "Aegis"
	members[1].HeroName = "Solace"
	return models.Room{
		ID: "room-1",
		Assignments: []models.RoleAssignment{
			{Role: "tank", Slots: 1, Members: members[:1]},
			{Role: "healer", Slots: 1, Members: members[1:]},
		},
		Ready:     true,
		MaxWindow: 100,
	}
}

func TestPublishRoomCommitted(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)

	bus := NewInProcessBus(logrus.New())
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	messages, err := bus.Subscribe(ctx, constants.TopicRoomCommitted)
	g.Expect(err).ToNot(gomega.HaveOccurred())

	committedAt := testsetup.BaseTime.Add(time.Minute)
	event := NewRoomCommitted("game-1", constants.ModeRank, committedRoom(), committedAt)
	g.Expect(NewRoomPublisher(bus).PublishRoomCommitted(g.TestScope, event)).To(gomega.Succeed())

	var received *message.Message
	select {
	case received = <-messages:
	case <-ctx.Done():
		t.Fatal("room committed event not delivered")
	}
	received.Ack()

	g.Expect(received.Metadata.Get(SubjectMetadataKey)).To(gomega.Equal(constants.TopicRoomCommitted))
	decoded, err := DecodeRoomCommitted(received)
	g.Expect(err).ToNot(gomega.HaveOccurred())
	g.Expect(decoded).To(gomega.Equal(event))
	g.Expect(decoded.Members).To(gomega.HaveLen(2))
	g.Expect(decoded.Members[0].HeroID).To(gomega.Equal("h1"))
	g.Expect(decoded.Members[0].HeroName).To(gomega.Equal("Aegis"))
	g.Expect(decoded.Members[1].Role).To(gomega.Equal("healer"))
}

func TestDecodeRoomCommitted_Malformed(t *testing.T) {
	_, err := DecodeRoomCommitted(message.NewMessage("id", []byte("{")))
	require.Error(t, err)
}
