// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package readiness derives per-role occupancy from a room assignment or from raw role data.
package readiness

import (
	"strings"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

// BuildRoleSummaries summarizes by slot layout when one exists and by role counts otherwise.
func BuildRoleSummaries(slotLayout []models.SlotAssignment, roles []models.RoleRequirement, assignments []models.RoleAssignment) models.ReadinessSummary {
	if len(slotLayout) > 0 {
		return FromSlotLayoutAndAssignments(slotLayout, assignments)
	}
	return FromRoleCountsAndAssignments(roles, assignments)
}

// FromSlotLayoutAndAssignments counts, per role of the layout, the seats that have a member.
// Seats are matched by slot index when the role's assignments carry slot indexes, by order otherwise.
func FromSlotLayoutAndAssignments(slotLayout []models.SlotAssignment, assignments []models.RoleAssignment) models.ReadinessSummary {
	order := make([]string, 0)
	slotsByRole := make(map[string][]int)
	for _, slot := range slotLayout {
		role := strings.TrimSpace(slot.Role)
		if role == "" {
			continue
		}
		if _, ok := slotsByRole[role]; !ok {
			order = append(order, role)
		}
		slotsByRole[role] = append(slotsByRole[role], slot.SlotIndex)
	}

	occupancy := collectOccupancy(assignments)
	totals := make([]tally, 0, len(order))
	for _, role := range order {
		slots := slotsByRole[role]
		seats := occupancy[role]

		var filled int
		if seats.indexed {
			for _, slotIndex := range slots {
				if _, ok := seats.slotIndexes[slotIndex]; ok {
					filled++
				}
			}
		} else {
			filled = min(len(slots), seats.members)
		}
		totals = append(totals, tally{role: role, total: len(slots), filled: filled})
	}
	return summarize(totals)
}

// FromRoleCountsAndAssignments counts members per role against the configured slot counts.
func FromRoleCountsAndAssignments(roles []models.RoleRequirement, assignments []models.RoleAssignment) models.ReadinessSummary {
	occupancy := collectOccupancy(assignments)

	totals := make([]tally, 0, len(roles))
	index := make(map[string]int, len(roles))
	for _, requirement := range roles {
		role := strings.TrimSpace(requirement.Name)
		if role == "" {
			continue
		}
		if i, ok := index[role]; ok {
			totals[i].total += max(requirement.SlotCount, 0)
			continue
		}
		index[role] = len(totals)
		totals = append(totals, tally{role: role, total: max(requirement.SlotCount, 0)})
	}
	for i := range totals {
		totals[i].filled = min(totals[i].total, occupancy[totals[i].role].members)
	}
	return summarize(totals)
}

type tally struct {
	role   string
	total  int
	filled int
}

type seats struct {
	members     int
	indexed     bool
	slotIndexes map[int]struct{}
}

// collectOccupancy gathers the members of every role across assignments. A role is indexed
// only when each of its assignments carries one slot index per member.
func collectOccupancy(assignments []models.RoleAssignment) map[string]seats {
	occupancy := make(map[string]seats)
	for _, assignment := range assignments {
		role := strings.TrimSpace(assignment.Role)
		current, seen := occupancy[role]
		indexed := len(assignment.SlotIndexes) > 0 && len(assignment.SlotIndexes) == len(assignment.Members)
		if !seen {
			current = seats{indexed: indexed, slotIndexes: make(map[int]struct{})}
		}
		current.indexed = current.indexed && indexed

		for i, member := range assignment.Members {
			if strings.TrimSpace(member.HeroID) == "" {
				continue
			}
			current.members++
			if indexed {
				current.slotIndexes[assignment.SlotIndexes[i]] = struct{}{}
			}
		}
		occupancy[role] = current
	}
	return occupancy
}

func summarize(totals []tally) models.ReadinessSummary {
	summary := models.ReadinessSummary{
		Roles: make([]models.RoleSummary, 0, len(totals)),
		Ready: len(totals) > 0,
	}
	for _, t := range totals {
		missing := t.total - t.filled
		ready := missing == 0
		summary.Roles = append(summary.Roles, models.RoleSummary{
			Role:    t.role,
			Total:   t.total,
			Filled:  t.filled,
			Missing: missing,
			Ready:   ready,
		})
		summary.Ready = summary.Ready && ready
	}
	return summary
}
