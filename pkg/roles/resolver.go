// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package roles normalizes the role configuration of a game into ordered role requirements.
package roles

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	pie "github.com/elliotchance/pie/v2"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/matchmaker"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

// InlineKind is how an inline role list is interpreted.
type InlineKind int

const (
	// InlineNone means no usable inline list.
	InlineNone InlineKind = iota
	// InlineLayout means one entry per seat; order and repeats are meaningful.
	InlineLayout
	// InlineCatalogue means one entry per distinct role; capacities come from role rows.
	InlineCatalogue
)

func (k InlineKind) String() string {
	switch k {
	case InlineLayout:
		return "layout"
	case InlineCatalogue:
		return "catalogue"
	default:
		return "none"
	}
}

// Resolution is the normalized role configuration. SlotLayout is nil when no per-seat layout exists.
type Resolution struct {
	Roles      []models.RoleRequirement `json:"roles"`
	SlotLayout []models.SlotAssignment  `json:"slotLayout"`
}

// ClassifyInlineRoles decides whether an inline role list is a seat layout or a role catalogue.
// A list that repeats any name is a layout; a list of distinct names is a catalogue.
// A one-entry list is therefore always a catalogue.
func ClassifyInlineRoles(inlineRoles []string) InlineKind {
	names := pie.Map(inlineRoles, strings.TrimSpace)
	if len(names) == 0 {
		return InlineNone
	}
	if len(pie.Unique(names)) < len(names) {
		return InlineLayout
	}
	return InlineCatalogue
}

// Resolve merges the three role sources of a game. Explicit slot rows win over the inline list,
// which wins over role rows alone. Duplicate role names are merged by summing slot counts.
func Resolve(roleRows []models.RoleRequirement, slotRows []models.SlotAssignment, inlineRoles []string) (Resolution, error) {
	if len(slotRows) > 0 {
		return resolveSlotRows(slotRows)
	}

	switch ClassifyInlineRoles(inlineRoles) {
	case InlineLayout:
		layout := make([]models.SlotAssignment, 0, len(inlineRoles))
		for i, name := range inlineRoles {
			layout = append(layout, models.SlotAssignment{SlotIndex: i, Role: name})
		}
		return resolveSlotRows(layout)
	case InlineCatalogue:
		return resolveCatalogue(roleRows, inlineRoles)
	}

	if len(roleRows) == 0 {
		return Resolution{}, models.ErrNoRoleInformation
	}
	roles, err := matchmaker.MergeRoles(roleRows)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Roles: roles}, nil
}

func resolveSlotRows(slotRows []models.SlotAssignment) (Resolution, error) {
	layout := make([]models.SlotAssignment, 0, len(slotRows))
	seen := make(map[int]struct{}, len(slotRows))
	for _, slot := range slotRows {
		name := strings.TrimSpace(slot.Role)
		if name == "" {
			return Resolution{}, fmt.Errorf("%w: slot %d", models.ErrInvalidRoleName, slot.SlotIndex)
		}
		if _, ok := seen[slot.SlotIndex]; ok {
			return Resolution{}, fmt.Errorf("%w: slot %d", models.ErrDuplicateSlotIndex, slot.SlotIndex)
		}
		seen[slot.SlotIndex] = struct{}{}
		layout = append(layout, models.SlotAssignment{SlotIndex: slot.SlotIndex, Role: name})
	}
	sort.SliceStable(layout, func(i, j int) bool {
		return layout[i].SlotIndex < layout[j].SlotIndex
	})

	roles := make([]models.RoleRequirement, 0, len(layout))
	for _, slot := range layout {
		roles = append(roles, models.RoleRequirement{Name: slot.Role, SlotCount: 1})
	}
	merged, err := matchmaker.MergeRoles(roles)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Roles: merged, SlotLayout: layout}, nil
}

// resolveCatalogue takes the role order from the inline list and capacities from role rows.
// A catalogue role without a row gets one seat.
func resolveCatalogue(roleRows []models.RoleRequirement, inlineRoles []string) (Resolution, error) {
	capacities := make(map[string]int, len(roleRows))
	for _, row := range roleRows {
		capacities[strings.TrimSpace(row.Name)] += row.SlotCount
	}

	roles := make([]models.RoleRequirement, 0, len(inlineRoles))
	for _, name := range inlineRoles {
		name = strings.TrimSpace(name)
		if name == "" {
			return Resolution{}, models.ErrInvalidRoleName
		}
		slotCount, ok := capacities[name]
		if !ok {
			slotCount = 1
		}
		roles = append(roles, models.RoleRequirement{Name: name, SlotCount: slotCount})
	}
	merged, err := matchmaker.MergeRoles(roles)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Roles: merged}, nil
}

// ParseInlineRoles decodes a stored inline role list. Both a list of names and a list of
// objects carrying a "name" or "role" field are accepted. Blank input is an empty list.
func ParseInlineRoles(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err == nil {
		return names, nil
	}

	var objects []struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal([]byte(raw), &objects); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrNoRoleInformation, err)
	}
	names = make([]string, 0, len(objects))
	for _, object := range objects {
		if object.Name != "" {
			names = append(names, object.Name)
			continue
		}
		names = append(names, object.Role)
	}
	return names, nil
}
