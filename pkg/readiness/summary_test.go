// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package readiness

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/testsetup"
)

func members(heroIDs ...string) []models.Candidate {
	result := make([]models.Candidate, 0, len(heroIDs))
	for _, heroID := range heroIDs {
		result = append(result, models.Candidate{ID: "c-" + heroID, HeroID: heroID})
	}
	return result
}

func TestBuildRoleSummaries_SlotLayoutScenario(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)

	layout := []models.SlotAssignment{{SlotIndex: 0, Role: "공격"}, {SlotIndex: 1, Role: "수비"}}
	assignments := []models.RoleAssignment{{Role: "공격", Slots: 1, Members: members("h1")}}

	summary := BuildRoleSummaries(layout, nil, assignments)
	g.Expect(summary.Roles).To(gomega.Equal([]models.RoleSummary{
		{Role: "공격", Total: 1, Filled: 1, Missing: 0, Ready: true},
		{Role: "수비", Total: 1, Filled: 0, Missing: 1, Ready: false},
	}))
	g.Expect(summary.Ready).To(gomega.BeFalse())
}

func TestFromSlotLayoutAndAssignments(t *testing.T) {
	layout := []models.SlotAssignment{
		{SlotIndex: 0, Role: "수비"},
		{SlotIndex: 1, Role: "공격"},
		{SlotIndex: 2, Role: "수비"},
	}

	t.Run("order of first appearance is kept", func(t *testing.T) {
		summary := FromSlotLayoutAndAssignments(layout, nil)
		require.Len(t, summary.Roles, 2)
		assert.Equal(t, "수비", summary.Roles[0].Role)
		assert.Equal(t, 2, summary.Roles[0].Total)
		assert.Equal(t, "공격", summary.Roles[1].Role)
		assert.False(t, summary.Ready)
	})

	t.Run("matched by slot index", func(t *testing.T) {
		assignments := []models.RoleAssignment{
			{Role: "수비", Slots: 2, Members: members("h1", "h2"), SlotIndexes: []int{0, 7}},
			{Role: "공격", Slots: 1, Members: members("h3"), SlotIndexes: []int{1}},
		}
		summary := FromSlotLayoutAndAssignments(layout, assignments)
		defense, ok := summary.Get("수비")
		require.True(t, ok)
		assert.Equal(t, models.RoleSummary{Role: "수비", Total: 2, Filled: 1, Missing: 1, Ready: false}, defense)
		attack, _ := summary.Get("공격")
		assert.True(t, attack.Ready)
		assert.False(t, summary.Ready)
	})

	t.Run("matched by order without slot indexes", func(t *testing.T) {
		assignments := []models.RoleAssignment{
			{Role: "수비", Slots: 1, Members: members("h1")},
			{Role: "수비", Slots: 1, Members: members("h2")},
			{Role: "공격", Slots: 1, Members: members("h3")},
		}
		summary := FromSlotLayoutAndAssignments(layout, assignments)
		assert.True(t, summary.Ready)
	})

	t.Run("blank heroes do not fill a seat", func(t *testing.T) {
		assignments := []models.RoleAssignment{
			{Role: "수비", Slots: 2, Members: members("h1", " ")},
			{Role: "공격", Slots: 1, Members: members("h3")},
		}
		summary := FromSlotLayoutAndAssignments(layout, assignments)
		defense, _ := summary.Get("수비")
		assert.Equal(t, 1, defense.Missing)
	})
}

func TestFromRoleCountsAndAssignments(t *testing.T) {
	roles := []models.RoleRequirement{{Name: "수비", SlotCount: 2}, {Name: "공격", SlotCount: 1}}

	summary := FromRoleCountsAndAssignments(roles, []models.RoleAssignment{
		{Role: "공격", Slots: 1, Members: members("h1", "h2")},
		{Role: "수비", Slots: 2, Members: members("h3")},
	})
	assert.Equal(t, []models.RoleSummary{
		{Role: "수비", Total: 2, Filled: 1, Missing: 1, Ready: false},
		{Role: "공격", Total: 1, Filled: 1, Missing: 0, Ready: true},
	}, summary.Roles)
	assert.False(t, summary.Ready)

	empty := FromRoleCountsAndAssignments(nil, nil)
	assert.Empty(t, empty.Roles)
	assert.False(t, empty.Ready)
}

// Given the same occupancy, layout based and count based summaries agree on readiness.
func TestReadinessFallbackEquivalence(t *testing.T) {
	names := []string{"tank", "healer", "dealer"}
	for seed := uint64(1); seed <= 100; seed++ {
		faker := gofakeit.New(seed)
		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			var (
				layout      []models.SlotAssignment
				roles       []models.RoleRequirement
				assignments []models.RoleAssignment
			)
			for _, name := range names[:faker.IntRange(1, len(names))] {
				slots := faker.IntRange(1, 3)
				roles = append(roles, models.RoleRequirement{Name: name, SlotCount: slots})
				for i := 0; i < slots; i++ {
					layout = append(layout, models.SlotAssignment{SlotIndex: len(layout), Role: name})
				}
				filled := faker.IntRange(0, slots)
				heroes := make([]string, 0, filled)
				for i := 0; i < filled; i++ {
					heroes = append(heroes, fmt.Sprintf("%s-%d", name, i))
				}
				assignments = append(assignments, models.RoleAssignment{Role: name, Slots: slots, Members: members(heroes...)})
			}

			byLayout := FromSlotLayoutAndAssignments(layout, assignments)
			byCounts := FromRoleCountsAndAssignments(roles, assignments)
			assert.Equal(t, byCounts.Ready, byLayout.Ready)
			assert.Equal(t, byCounts.Roles, byLayout.Roles)
		})
	}
}
