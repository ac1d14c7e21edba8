// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

// RoleSummary is the occupancy of one role.
type RoleSummary struct {
	Role    string `json:"role"`
	Total   int    `json:"total"`
	Filled  int    `json:"filled"`
	Missing int    `json:"missing"`
	Ready   bool   `json:"ready"`
}

// ReadinessSummary is the ordered per-role occupancy plus the overall verdict.
type ReadinessSummary struct {
	Roles []RoleSummary `json:"roles"`
	Ready bool          `json:"ready"`
}

// Get returns the summary of the given role.
func (s ReadinessSummary) Get(role string) (RoleSummary, bool) {
	for _, summary := range s.Roles {
		if summary.Role == role {
			return summary, true
		}
	}
	return RoleSummary{}, false
}
