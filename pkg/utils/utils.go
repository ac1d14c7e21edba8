// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID generates uuid without hyphens.
func GenerateUUID() string {
	id, _ := uuid.NewRandom()
	return strings.ReplaceAll(id.String(), "-", "")
}

// HasSameElement reports whether s1 and s2 hold the same elements with the same multiplicity, ignoring order.
func HasSameElement(s1, s2 []string) bool {
	if len(s1) != len(s2) {
		return false
	}
	counts := make(map[string]int, len(s1))
	for _, v := range s1 {
		counts[v]++
	}
	for _, v := range s2 {
		if counts[v] == 0 {
			return false
		}
		counts[v]--
	}
	return true
}
