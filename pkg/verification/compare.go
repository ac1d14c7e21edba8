// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package verification

import (
	"maps"
	"slices"

	"github.com/elliotchance/pie/v2"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/utils"
)

// Compare reports whether two results describe the same committed room: both ready, the same
// hero ids per role in the first room regardless of order, and the same max window.
// Ids, timestamps and later rooms are not compared.
func Compare(client, server models.MatchResult) (bool, string) {
	clientRoom, clientReady := client.PrimaryRoom()
	if !client.Ready || !clientReady {
		return false, ReasonClientNotReady
	}
	serverRoom, serverReady := server.PrimaryRoom()
	if !server.Ready || !serverReady {
		return false, ReasonServerNotReady
	}

	clientHeroes := heroesByRole(clientRoom)
	serverHeroes := heroesByRole(serverRoom)

	clientRoles := pie.Sort(slices.Collect(maps.Keys(clientHeroes)))
	serverRoles := pie.Sort(slices.Collect(maps.Keys(serverHeroes)))
	if !slices.Equal(clientRoles, serverRoles) {
		return false, ReasonRoleMismatch
	}
	if !maps.EqualFunc(clientHeroes, serverHeroes, utils.HasSameElement) {
		return false, ReasonMemberMismatch
	}
	if clientRoom.MaxWindow != serverRoom.MaxWindow || client.MaxWindow != server.MaxWindow {
		return false, ReasonWindowMismatch
	}
	return true, ""
}

// heroesByRole maps every role of the room to its hero ids in seat order.
func heroesByRole(room models.Room) map[string][]string {
	heroes := make(map[string][]string, len(room.Assignments))
	for _, assignment := range room.Assignments {
		heroes[assignment.Role] = append(heroes[assignment.Role], assignment.HeroIDs()...)
	}
	return heroes
}
