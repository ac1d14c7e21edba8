// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package events publishes room notifications to subscribers.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/constants"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/envelope"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

// SubjectMetadataKey is the message metadata key carrying the event subject.
const SubjectMetadataKey = "subject"

// RoomMember is one seated candidate of a committed room.
type RoomMember struct {
	CandidateID string  `json:"candidateId"`
	OwnerID     string  `json:"ownerId"`
	HeroID      string  `json:"heroId"`
	HeroName    string  `json:"heroName,omitempty"`
	Role        string  `json:"role"`
	Score       float64 `json:"score"`
	Source      string  `json:"source"`
}

// RoomCommitted is the payload of TopicRoomCommitted.
type RoomCommitted struct {
	RoomID      string       `json:"roomId"`
	GameID      string       `json:"gameId"`
	Mode        string       `json:"mode"`
	MaxWindow   int          `json:"maxWindow"`
	Members     []RoomMember `json:"members"`
	CommittedAt time.Time    `json:"committedAt"`
}

// NewRoomCommitted flattens room into its notification payload.
func NewRoomCommitted(gameID, mode string, room models.Room, committedAt time.Time) RoomCommitted {
	event := RoomCommitted{
		RoomID:      room.ID,
		GameID:      gameID,
		Mode:        mode,
		MaxWindow:   room.MaxWindow,
		Members:     make([]RoomMember, 0, room.CountMembers()),
		CommittedAt: committedAt.UTC(),
	}
	for _, member := range room.GetMembers() {
		event.Members = append(event.Members, RoomMember{
			CandidateID: member.ID,
			OwnerID:     member.OwnerID,
			HeroID:      member.HeroID,
			HeroName:    member.HeroName,
			Role:        member.Role,
			Score:       member.Score,
			Source:      member.Source,
		})
	}
	return event
}

// RoomPublisher publishes room events on a watermill publisher.
type RoomPublisher struct {
	publisher message.Publisher
}

func NewRoomPublisher(publisher message.Publisher) *RoomPublisher {
	return &RoomPublisher{publisher: publisher}
}

// PublishRoomCommitted sends event on TopicRoomCommitted with the trace context in the metadata.
func (p *RoomPublisher) PublishRoomCommitted(rootScope *envelope.Scope, event RoomCommitted) error {
	scope := rootScope.NewChildScope("events.PublishRoomCommitted")
	defer scope.Finish()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal room committed payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(SubjectMetadataKey, constants.TopicRoomCommitted)
	msg.SetContext(scope.Ctx)
	otel.GetTextMapPropagator().Inject(scope.Ctx, propagation.MapCarrier(msg.Metadata))

	if err := p.publisher.Publish(constants.TopicRoomCommitted, msg); err != nil {
		return fmt.Errorf("failed to publish room committed event: %w", err)
	}

	scope.Log.WithFields(logrus.Fields{
		"messageID": msg.UUID,
		"roomID":    event.RoomID,
		"members":   len(event.Members),
	}).Debug("room committed event published")
	return nil
}

// DecodeRoomCommitted reads a RoomCommitted payload from msg.
func DecodeRoomCommitted(msg *message.Message) (RoomCommitted, error) {
	var event RoomCommitted
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return RoomCommitted{}, fmt.Errorf("failed to unmarshal room committed payload: %w", err)
	}
	return event, nil
}
