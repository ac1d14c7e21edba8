// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"errors"
)

var (
	ErrInvalidCandidate      = errors.New("candidate requires id, hero id and role")
	ErrInvalidCandidateScore = errors.New("candidate score must be a finite number")
	ErrInvalidRoleName       = errors.New("role name cannot be empty")
	ErrInvalidSlotCount      = errors.New("role slot count must be at least 1")
	ErrDuplicateSlotIndex    = errors.New("slot index is declared more than once")
	ErrNoRoleInformation     = errors.New("no usable role information")
	ErrInvalidGameID         = errors.New("game id cannot be empty")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionCompleted      = errors.New("session is already completed")
	ErrParticipantNotFound   = errors.New("participant not found in session")
	ErrInvalidTurnResult     = errors.New("turn result must be win, loss or eliminated")
	ErrInvalidVerifyRequest  = errors.New("invalid verification request")
)

var validationErrorCodeMap = map[error]int{
	ErrInvalidCandidate:      510201,
	ErrInvalidCandidateScore: 510202,
	ErrInvalidRoleName:       510203,
	ErrInvalidSlotCount:      510204,
	ErrDuplicateSlotIndex:    510205,
	ErrNoRoleInformation:     510206,
	ErrInvalidGameID:         510207,
	ErrSessionNotFound:       510301,
	ErrSessionCompleted:      510302,
	ErrParticipantNotFound:   510303,
	ErrInvalidTurnResult:     510304,
	ErrInvalidVerifyRequest:  510401,
}

// ValidationErrorCode returns a code for the error.
// Wrapped errors resolve to the code of the registered error they wrap.
// It returns 20002 if the error is not registered in the map.
func ValidationErrorCode(err error) int {
	for registered, code := range validationErrorCodeMap {
		if errors.Is(err, registered) {
			return code
		}
	}
	return 20002
}
