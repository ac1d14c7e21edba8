// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/envelope"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

// RoomCommittedHandler processes one decoded room committed event.
type RoomCommittedHandler func(scope *envelope.Scope, event RoomCommitted) error

// Room rebuilds the committed room, grouping members by role in first appearance order.
func (e RoomCommitted) Room() models.Room {
	room := models.Room{ID: e.RoomID, Ready: true, MaxWindow: e.MaxWindow}
	index := make(map[string]int)
	for _, member := range e.Members {
		i, ok := index[member.Role]
		if !ok {
			i = len(room.Assignments)
			index[member.Role] = i
			room.Assignments = append(room.Assignments, models.RoleAssignment{Role: member.Role})
		}
		room.Assignments[i].Slots++
		room.Assignments[i].Members = append(room.Assignments[i].Members, models.Candidate{
			ID:       member.CandidateID,
			OwnerID:  member.OwnerID,
			HeroID:   member.HeroID,
			HeroName: member.HeroName,
			Role:     member.Role,
			Score:    member.Score,
			Source:   member.Source,
		})
	}
	return room
}

// ProcessRoomCommitted delivers every message of a TopicRoomCommitted subscription to handle
// until ctx is done or the subscription closes. Messages are acked even when decoding or
// handling fails; failures are logged.
func ProcessRoomCommitted(ctx context.Context, messages <-chan *message.Message, handle RoomCommittedHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			consume(ctx, msg, handle)
		}
	}
}

func consume(ctx context.Context, msg *message.Message, handle RoomCommittedHandler) {
	defer msg.Ack()

	remoteCtx := otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Metadata))
	scope := envelope.ChildScopeFromRemoteScope(remoteCtx, "events.ConsumeRoomCommitted")
	defer scope.Finish()

	event, err := DecodeRoomCommitted(msg)
	if err != nil {
		scope.Log.WithError(err).WithField("messageID", msg.UUID).Error("dropping malformed room committed event")
		return
	}
	if err := handle(scope, event); err != nil {
		scope.Log.WithError(err).WithFields(logrus.Fields{
			"messageID": msg.UUID,
			"roomID":    event.RoomID,
		}).Error("room committed handler failed")
	}
}
