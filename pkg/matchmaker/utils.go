// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package matchmaker

import (
	"strings"

	pie "github.com/elliotchance/pie/v2"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/constants"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

// NormalizeScoreWindows sorts windows ascending, drops duplicates and non-positive values,
// and falls back to fallback (or the package default) when nothing usable is left.
func NormalizeScoreWindows(windows []int, fallback []int) []int {
	result := pie.Sort(pie.Unique(pie.Filter(windows, func(w int) bool { return w > 0 })))
	if len(result) > 0 {
		return result
	}
	if len(fallback) > 0 {
		return NormalizeScoreWindows(fallback, nil)
	}
	return pie.Sort(constants.DefaultScoreWindows)
}

// MergeRoles trims role names and merges duplicates by summing their slot counts,
// keeping the order of first appearance.
func MergeRoles(roles []models.RoleRequirement) ([]models.RoleRequirement, error) {
	if len(roles) == 0 {
		return nil, models.ErrNoRoleInformation
	}
	merged := make([]models.RoleRequirement, 0, len(roles))
	index := make(map[string]int, len(roles))
	for _, role := range roles {
		name := strings.TrimSpace(role.Name)
		if name == "" {
			return nil, models.ErrInvalidRoleName
		}
		if role.SlotCount < 1 {
			return nil, models.ErrInvalidSlotCount
		}
		if i, ok := index[name]; ok {
			merged[i].SlotCount += role.SlotCount
			continue
		}
		index[name] = len(merged)
		merged = append(merged, models.RoleRequirement{Name: name, SlotCount: role.SlotCount})
	}
	return merged, nil
}

// TotalSlots sums the slot counts of roles.
func TotalSlots(roles []models.RoleRequirement) int {
	return pie.Sum(pie.Map(roles, func(r models.RoleRequirement) int { return r.SlotCount }))
}
