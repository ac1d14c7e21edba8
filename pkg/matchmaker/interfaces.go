// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package matchmaker provides the core interfaces and data structures for
// forming role-balanced rooms out of queued candidates.
package matchmaker

import (
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/envelope"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

/*
Matcher is a thing that has logic to take role requirements and candidates and make rooms.

Match must be pure: given identical requests it returns structurally identical results,
because the same call runs on the requesting client and again on the server that verifies it.
Not having enough players or compatible scores is reported in MatchResult.Error, never as an error;
the returned error is reserved for malformed candidates.
*/
type Matcher interface {
	Match(scope *envelope.Scope, request Request) (models.MatchResult, error)
}
