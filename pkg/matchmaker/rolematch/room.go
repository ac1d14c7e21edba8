// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rolematch

import (
	pie "github.com/elliotchance/pie/v2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

func newRoom(assignments []models.RoleAssignment, window int, anchorScore float64) models.Room {
	room := models.Room{
		Assignments: assignments,
		Ready:       true,
		MaxWindow:   window,
	}
	room.Stats = roomStats(room.GetMembers(), anchorScore)
	return room
}

func roomStats(members []models.Candidate, anchorScore float64) models.RoomStats {
	stats := models.RoomStats{AnchorScore: anchorScore}
	if len(members) == 0 {
		return stats
	}

	scores := pie.Map(members, func(c models.Candidate) float64 { return c.Score })
	stats.MeanScore = stat.Mean(scores, nil)
	if len(scores) > 1 {
		stats.StdDev = stat.StdDev(scores, nil)
	}
	stats.Spread = floats.Max(scores) - floats.Min(scores)
	return stats
}
