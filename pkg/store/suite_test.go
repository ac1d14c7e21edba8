// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/testsetup"
)

// runStoreSuite exercises every Store operation against a freshly migrated backend.
func runStoreSuite(t *testing.T, s Store) {
	ctx := context.Background()
	require.NoError(t, s.Migrate(ctx))
	// migrations are idempotent
	require.NoError(t, s.Migrate(ctx))

	t.Run("RoleConfig_RoleRows", func(t *testing.T) {
		err := s.SaveRoleConfig(ctx, "game-roles", RoleConfig{Roles: []models.RoleRequirement{
			{Name: "tank", SlotCount: 1},
			{Name: "dealer", SlotCount: 2},
		}})
		require.NoError(t, err)

		resolution, err := s.LoadRoleConfig(ctx, "game-roles")
		require.NoError(t, err)
		assert.Equal(t, []models.RoleRequirement{{Name: "tank", SlotCount: 1}, {Name: "dealer", SlotCount: 2}}, resolution.Roles)
		assert.Nil(t, resolution.SlotLayout)
	})

	t.Run("RoleConfig_SlotRowsWin", func(t *testing.T) {
		err := s.SaveRoleConfig(ctx, "game-slots", RoleConfig{
			Roles: []models.RoleRequirement{{Name: "tank", SlotCount: 3}},
			Slots: []models.SlotAssignment{{SlotIndex: 1, Role: "healer"}, {SlotIndex: 0, Role: "tank"}},
		})
		require.NoError(t, err)

		resolution, err := s.LoadRoleConfig(ctx, "game-slots")
		require.NoError(t, err)
		assert.Equal(t, []models.SlotAssignment{{SlotIndex: 0, Role: "tank"}, {SlotIndex: 1, Role: "healer"}}, resolution.SlotLayout)
		assert.Equal(t, []models.RoleRequirement{{Name: "tank", SlotCount: 1}, {Name: "healer", SlotCount: 1}}, resolution.Roles)
	})

	t.Run("RoleConfig_InlineLayout", func(t *testing.T) {
		err := s.SaveRoleConfig(ctx, "game-inline", RoleConfig{InlineRoles: `["dealer","dealer","healer"]`})
		require.NoError(t, err)

		resolution, err := s.LoadRoleConfig(ctx, "game-inline")
		require.NoError(t, err)
		assert.Len(t, resolution.SlotLayout, 3)
		assert.Equal(t, []models.RoleRequirement{{Name: "dealer", SlotCount: 2}, {Name: "healer", SlotCount: 1}}, resolution.Roles)
	})

	t.Run("RoleConfig_Replace", func(t *testing.T) {
		require.NoError(t, s.SaveRoleConfig(ctx, "game-replace", RoleConfig{Roles: []models.RoleRequirement{{Name: "tank", SlotCount: 1}}}))
		require.NoError(t, s.SaveRoleConfig(ctx, "game-replace", RoleConfig{Roles: []models.RoleRequirement{{Name: "healer", SlotCount: 2}}}))

		resolution, err := s.LoadRoleConfig(ctx, "game-replace")
		require.NoError(t, err)
		assert.Equal(t, []models.RoleRequirement{{Name: "healer", SlotCount: 2}}, resolution.Roles)
	})

	t.Run("RoleConfig_Missing", func(t *testing.T) {
		_, err := s.LoadRoleConfig(ctx, "game-unknown")
		assert.ErrorIs(t, err, models.ErrNoRoleInformation)
	})

	t.Run("Queue", func(t *testing.T) {
		entries := []QueueEntry{
			{ID: "q-3", GameID: "game-q", Mode: "rank", OwnerID: "o3", HeroID: "h3", Role: "tank", Score: 1300, JoinedAt: testsetup.BaseTime.Add(2 * time.Second)},
			{ID: "q-1", GameID: "game-q", Mode: "rank", OwnerID: "o1", HeroID: "h1", HeroName: "Ari", Role: "dealer", Score: 1100.5, JoinedAt: testsetup.BaseTime},
			{ID: "q-2", GameID: "game-q", Mode: "rank", OwnerID: "o2", HeroID: "h2", Role: "dealer", Score: 1200, JoinedAt: testsetup.BaseTime},
			{ID: "q-4", GameID: "game-q", Mode: "brawl", OwnerID: "o4", HeroID: "h4", Role: "tank", Score: 900, JoinedAt: testsetup.BaseTime},
		}
		for _, entry := range entries {
			require.NoError(t, s.Enqueue(ctx, entry))
		}
		assert.ErrorIs(t, s.Enqueue(ctx, entries[0]), ErrDuplicateEntry)

		queue, err := s.ListQueue(ctx, "game-q", "rank")
		require.NoError(t, err)
		require.Len(t, queue, 3)
		assert.Equal(t, []string{"q-1", "q-2", "q-3"}, []string{queue[0].ID, queue[1].ID, queue[2].ID})
		assert.Equal(t, "Ari", queue[0].HeroName)
		assert.Equal(t, 1100.5, queue[0].Score)
		assert.Equal(t, models.SourceQueue, queue[0].Source)
		assert.True(t, queue[0].JoinedAt.Equal(testsetup.BaseTime))

		require.NoError(t, s.MarkQueueMatched(ctx, "room-1", []string{"q-1", "q-3", "q-1"}))
		queue, err = s.ListQueue(ctx, "game-q", "rank")
		require.NoError(t, err)
		require.Len(t, queue, 1)
		assert.Equal(t, "q-2", queue[0].ID)

		// q-1 is taken, so q-2 must stay waiting
		err = s.MarkQueueMatched(ctx, "room-2", []string{"q-2", "q-1"})
		assert.ErrorIs(t, err, ErrQueueConflict)
		queue, err = s.ListQueue(ctx, "game-q", "rank")
		require.NoError(t, err)
		assert.Len(t, queue, 1)

		assert.NoError(t, s.MarkQueueMatched(ctx, "room-3", nil))
	})

	t.Run("Participants", func(t *testing.T) {
		participants := []Participant{
			{ID: "p-2", GameID: "game-p", OwnerID: "o2", HeroID: "h2", Role: "tank", Score: 1000, UpdatedAt: testsetup.BaseTime},
			{ID: "p-1", GameID: "game-p", OwnerID: "o1", HeroID: "h1", Role: "dealer", Score: 1100, UpdatedAt: testsetup.BaseTime},
			{ID: "p-3", GameID: "game-p", OwnerID: "o3", HeroID: "h3", Role: "dealer", Score: 1200, Status: ParticipantStatusEliminated, UpdatedAt: testsetup.BaseTime},
		}
		for _, participant := range participants {
			require.NoError(t, s.UpsertParticipant(ctx, participant))
		}

		pool, err := s.ListParticipantPool(ctx, "game-p", 2)
		require.NoError(t, err)
		require.Len(t, pool, 2)
		assert.Equal(t, "p-1", pool[0].ID)
		assert.Equal(t, "p-2", pool[1].ID)
		assert.Equal(t, models.SourcePool, pool[0].Source)

		all, err := s.ListParticipantPool(ctx, "game-p", 0)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		alive, err := s.CountAliveByRole(ctx, "game-p")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"tank": 1, "dealer": 1}, alive)

		participants[0].Status = ParticipantStatusLeft
		require.NoError(t, s.UpsertParticipant(ctx, participants[0]))
		alive, err = s.CountAliveByRole(ctx, "game-p")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"dealer": 1}, alive)
	})

	t.Run("ContextCanceled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := s.ListQueue(canceled, "game-q", "rank")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, ErrUnexpectedDatabase)
	})
}
