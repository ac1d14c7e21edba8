// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rolematch

import (
	"sort"
	"strings"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

// lessCanonical orders queue candidates oldest first (id breaks ties) and
// keeps every pool candidate after the queue in its given order.
func lessCanonical(a, b models.Candidate) bool {
	if a.IsStandin() || b.IsStandin() {
		return !a.IsStandin() && b.IsStandin()
	}
	if !a.JoinedAt.Equal(b.JoinedAt) {
		return a.JoinedAt.Before(b.JoinedAt)
	}
	return a.ID < b.ID
}

// canonicalOrder groups candidates by the roles in needs, each group in canonical order.
// Candidates repeating an earlier id and candidates of unknown roles are dropped.
func canonicalOrder(needs []models.RoleRequirement, queue []models.Candidate) map[string][]models.Candidate {
	grouped := make(map[string][]models.Candidate, len(needs))
	for _, need := range needs {
		grouped[need.Name] = make([]models.Candidate, 0)
	}

	seen := make(map[string]struct{}, len(queue))
	for _, candidate := range queue {
		if _, ok := seen[candidate.ID]; ok {
			continue
		}
		seen[candidate.ID] = struct{}{}

		candidate.Role = strings.TrimSpace(candidate.Role)
		if _, ok := grouped[candidate.Role]; !ok {
			continue
		}
		grouped[candidate.Role] = append(grouped[candidate.Role], candidate)
	}

	for role, candidates := range grouped {
		sort.SliceStable(candidates, func(i, j int) bool {
			return lessCanonical(candidates[i], candidates[j])
		})
		grouped[role] = candidates
	}
	return grouped
}

// removeRoomMembers drops every candidate seated in room, and every other candidate
// of a seated hero, from the remaining groups.
func removeRoomMembers(grouped map[string][]models.Candidate, room models.Room) map[string][]models.Candidate {
	heroIDs := room.GetMapHeroIDs()
	ids := make(map[string]struct{}, len(heroIDs))
	for _, member := range room.GetMembers() {
		ids[member.ID] = struct{}{}
	}

	result := make(map[string][]models.Candidate, len(grouped))
	for role, candidates := range grouped {
		kept := make([]models.Candidate, 0, len(candidates))
		for _, candidate := range candidates {
			if _, ok := ids[candidate.ID]; ok {
				continue
			}
			if _, ok := heroIDs[candidate.HeroID]; ok {
				continue
			}
			kept = append(kept, candidate)
		}
		result[role] = kept
	}
	return result
}

// roleNeeds returns the seats each role still needs once live occupancy is subtracted.
// Roles that need nothing are left out.
func roleNeeds(roles []models.RoleRequirement, aliveCounts map[string]int) []models.RoleRequirement {
	needs := make([]models.RoleRequirement, 0, len(roles))
	for _, role := range roles {
		need := role.SlotCount - max(aliveCounts[role.Name], 0)
		if need <= 0 {
			continue
		}
		needs = append(needs, models.RoleRequirement{Name: role.Name, SlotCount: need})
	}
	return needs
}
