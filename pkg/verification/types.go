// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package verification lets a client compute a match and have the server confirm it by
// recomputing from the same inputs before the room is committed.
package verification

import (
	"context"
	"strings"

	validator "github.com/AccelByte/justice-input-validation-go"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/envelope"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/roles"
)

// Mismatch reasons reported next to constants.VerifyOutcome* values.
const (
	ReasonClientNotReady  = "client_not_ready"
	ReasonServerNotReady  = "server_not_ready"
	ReasonRoleMismatch    = "role_mismatch"
	ReasonMemberMismatch  = "member_mismatch"
	ReasonWindowMismatch  = "window_mismatch"
	ReasonQueueChanged    = "queue_changed"
	ReasonInvalidRoles    = "invalid_roles"
	ReasonServerError     = "server_error"
	ReasonRequestTimedOut = "request_timed_out"
)

// Submission is what a client sends for verification.
type Submission struct {
	GameID       string             `json:"gameId"`
	Mode         string             `json:"mode"`
	Host         string             `json:"host"`
	Realtime     bool               `json:"realtime"`
	Seed         int64              `json:"seed"`
	ClientResult models.MatchResult `json:"clientResult"`
}

type submissionHeader struct {
	GameID string `valid:"required,stringlength(1|128)"`
	Mode   string `valid:"required,stringlength(1|32)"`
	Host   string `valid:"required,stringlength(1|255)"`
}

// Validate checks the identifying fields of the submission.
func (s Submission) Validate() error {
	header := submissionHeader{
		GameID: strings.TrimSpace(s.GameID),
		Mode:   strings.TrimSpace(s.Mode),
		Host:   strings.TrimSpace(s.Host),
	}
	if _, err := validator.ValidateStruct(header); err != nil {
		return err
	}
	return nil
}

// Response is the server answer. Verified false is a normal outcome, not an error.
type Response struct {
	Verified     bool                `json:"verified"`
	Outcome      string              `json:"outcome"`
	Reason       string              `json:"reason,omitempty"`
	RoomID       string              `json:"roomId,omitempty"`
	ServerResult *models.MatchResult `json:"serverResult,omitempty"`
}

// Outcome is the result of one verification attempt on either side.
type Outcome struct {
	Verified     bool
	Outcome      string // one of constants.VerifyOutcome*
	Reason       string
	Room         models.Room
	ServerResult models.MatchResult
}

// Committer persists a verified room and returns it with its assigned id.
type Committer interface {
	Commit(scope *envelope.Scope, gameID, mode string, room models.Room) (models.Room, error)
}

// RoleLoader reads the role configuration of a game.
type RoleLoader interface {
	LoadRoleConfig(ctx context.Context, gameID string) (roles.Resolution, error)
}
