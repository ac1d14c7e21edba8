// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package constants

import "time"

const (
	VerifyTimeLimit = 5 * time.Second
	MatchTimeLimit  = 2 * time.Second
)

var DefaultScoreWindows = []int{100, 200}

const (
	ModeRank  = "rank"
	ModeBrawl = "brawl"
)

const (
	MatchFunction          = "match"
	FillRoomFunction       = "fillRoom"
	BuildPoolFunction      = "buildPool"
	VerifyFunction         = "verify"
	PickSubstituteFunction = "pickSubstitute"

	// not matched reason constants.
	ReasonRoleShortfall      = "role_shortfall"
	ReasonScoreGap           = "score_gap"
	ReasonInvalidRoles       = "invalid_roles"
	ReasonRolesAlreadyFilled = "roles_already_filled"
	ReasonNoCandidates       = "no_candidates"

	// verification outcome constants.
	VerifyOutcomeVerified     = "verified"
	VerifyOutcomeMismatch     = "mismatch"
	VerifyOutcomeNotReady     = "not_ready"
	VerifyOutcomeServerFailed = "server_failed"
	VerifyOutcomeTimeout      = "timeout"
	VerifyOutcomeRejected     = "rejected"
	VerifyOutcomeCommitFailed = "commit_failed"

	// drop-in outcome constants.
	DropInOutcomeSubstituted = "substituted"
	DropInOutcomeExhausted   = "exhausted"
)

const (
	TopicRoomCommitted = "room.committed"
)
