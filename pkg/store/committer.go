// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/envelope"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/events"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/utils"
)

// RoomEventPublisher receives a notification for every committed room.
type RoomEventPublisher interface {
	PublishRoomCommitted(scope *envelope.Scope, event events.RoomCommitted) error
}

// RoomCommitter takes the queued members of a verified room out of the queue and announces the room.
type RoomCommitter struct {
	store     Store
	publisher RoomEventPublisher
	now       func() time.Time
}

func NewRoomCommitter(store Store, publisher RoomEventPublisher) *RoomCommitter {
	return &RoomCommitter{store: store, publisher: publisher, now: time.Now}
}

// Commit assigns the room an id, marks its queued members matched and publishes the room.
// Pool members have no queue entry and are only announced. A publish failure does not undo the commit.
func (c *RoomCommitter) Commit(rootScope *envelope.Scope, gameID, mode string, room models.Room) (models.Room, error) {
	scope := rootScope.NewChildScope("store.RoomCommitter.Commit")
	defer scope.Finish()

	committed := room
	if committed.ID == "" {
		committed.ID = utils.GenerateUUID()
	}

	queueIDs := make([]string, 0, room.CountMembers())
	for _, member := range room.GetMembers() {
		if member.Source == models.SourceQueue {
			queueIDs = append(queueIDs, member.ID)
		}
	}

	if err := c.store.MarkQueueMatched(scope.Ctx, committed.ID, queueIDs); err != nil {
		return models.Room{}, err
	}

	log := scope.Log.WithFields(logrus.Fields{
		"gameID":  gameID,
		"mode":    mode,
		"roomID":  committed.ID,
		"queued":  len(queueIDs),
		"members": room.CountMembers(),
	})
	if c.publisher != nil {
		event := events.NewRoomCommitted(gameID, mode, committed, c.now())
		if err := c.publisher.PublishRoomCommitted(scope, event); err != nil {
			log.WithError(err).Warn("room committed but event not published")
		}
	}
	log.Info("room committed")
	return committed, nil
}
