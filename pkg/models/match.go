// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"math"
	"strings"
	"time"

	"github.com/mitchellh/copystructure"
	"github.com/sirupsen/logrus"
)

// Candidate sources.
const (
	SourceQueue = "queue"
	SourcePool  = "pool"
)

// Match error codes, carried as data in MatchResult.Error.
const (
	ErrorCodeRoleShortfall      = "role_shortfall"
	ErrorCodeScoreGap           = "score_gap"
	ErrorCodeInvalidRoles       = "invalid_roles"
	ErrorCodeRolesAlreadyFilled = "roles_already_filled"
)

// RoleRequirement is one role of a game and the number of seats it needs in a room.
type RoleRequirement struct {
	Name      string `json:"name"`
	SlotCount int    `json:"slotCount"`
}

// SlotAssignment is one seat of an explicit slot layout.
type SlotAssignment struct {
	SlotIndex int    `json:"slotIndex"`
	Role      string `json:"role"`
}

// Candidate is one queued or poolable player-hero pairing for one role.
type Candidate struct {
	ID       string    `json:"id"`
	OwnerID  string    `json:"ownerId"`
	HeroID   string    `json:"heroId"`
	HeroName string    `json:"heroName,omitempty"`
	Role     string    `json:"role"`
	Score    float64   `json:"score"`
	JoinedAt time.Time `json:"joinedAt"`
	Source   string    `json:"source,omitempty"` // queue (default) or pool
}

// IsStandin reports whether the candidate comes from the fallback participant pool.
func (c Candidate) IsStandin() bool {
	return c.Source == SourcePool
}

// Validate rejects candidates that cannot be matched at all.
func (c Candidate) Validate() error {
	if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.HeroID) == "" || strings.TrimSpace(c.Role) == "" {
		return ErrInvalidCandidate
	}
	if math.IsNaN(c.Score) || math.IsInf(c.Score, 0) {
		return ErrInvalidCandidateScore
	}
	return nil
}

// RoleAssignment is the set of members seated for one role in a room.
// SlotIndexes is optional; when set it is parallel to Members.
type RoleAssignment struct {
	Role        string      `json:"role"`
	Slots       int         `json:"slots"`
	Members     []Candidate `json:"members"`
	SlotIndexes []int       `json:"slotIndexes,omitempty"`
}

// HeroIDs returns the hero ids of the members in seat order.
func (a RoleAssignment) HeroIDs() []string {
	heroIDs := make([]string, 0, len(a.Members))
	for _, member := range a.Members {
		heroIDs = append(heroIDs, member.HeroID)
	}
	return heroIDs
}

// IsFilled reports whether every slot of the assignment has a member.
func (a RoleAssignment) IsFilled() bool {
	return len(a.Members) == a.Slots
}

// RoomStats holds the score statistics of a formed room.
type RoomStats struct {
	AnchorScore float64 `json:"anchorScore"`
	MeanScore   float64 `json:"meanScore"`
	StdDev      float64 `json:"stdDev"`
	Spread      float64 `json:"spread"`
}

// Room is a completed or attempted match unit.
type Room struct {
	ID          string           `json:"id,omitempty"`
	Assignments []RoleAssignment `json:"assignments"`
	Ready       bool             `json:"ready"`
	MaxWindow   int              `json:"maxWindow"`
	Error       *MatchError      `json:"error"`
	Stats       RoomStats        `json:"stats"`
}

// CountMembers returns the number of seated members across all assignments.
func (r Room) CountMembers() int {
	var count int
	for _, assignment := range r.Assignments {
		count += len(assignment.Members)
	}
	return count
}

// GetMembers returns every seated member in assignment order.
func (r Room) GetMembers() []Candidate {
	members := make([]Candidate, 0, r.CountMembers())
	for _, assignment := range r.Assignments {
		members = append(members, assignment.Members...)
	}
	return members
}

// GetHeroIDs returns every seated hero id in assignment order.
func (r Room) GetHeroIDs() []string {
	heroIDs := make([]string, 0, r.CountMembers())
	for _, assignment := range r.Assignments {
		heroIDs = append(heroIDs, assignment.HeroIDs()...)
	}
	return heroIDs
}

// GetMapHeroIDs returns the set of seated hero ids.
func (r Room) GetMapHeroIDs() map[string]struct{} {
	mapHeroIDs := make(map[string]struct{}, r.CountMembers())
	for _, assignment := range r.Assignments {
		for _, member := range assignment.Members {
			mapHeroIDs[member.HeroID] = struct{}{}
		}
	}
	return mapHeroIDs
}

// RoleShortfall is the number of seats a role is missing.
type RoleShortfall struct {
	Role    string `json:"role"`
	Missing int    `json:"missing"`
}

// MatchError is the machine readable reason a match attempt did not become ready.
type MatchError struct {
	Code       string          `json:"code"`
	Shortfalls []RoleShortfall `json:"shortfalls,omitempty"`
}

func (e MatchError) Error() string {
	return e.Code
}

// TotalMissing sums the missing seats of all shortfalls.
func (e MatchError) TotalMissing() int {
	var total int
	for _, s := range e.Shortfalls {
		total += s.Missing
	}
	return total
}

// MatchMetadata describes how a match attempt was computed.
type MatchMetadata struct {
	ScoreWindows   []int          `json:"scoreWindows"`
	CandidateCount int            `json:"candidateCount"`
	QueueCount     int            `json:"queueCount"`
	PoolCount      int            `json:"poolCount"`
	AnchorAttempts int            `json:"anchorAttempts"`
	AliveCounts    map[string]int `json:"aliveCounts,omitempty"`
	Seed           int64          `json:"seed,omitempty"`
}

// MatchResult is the output of one matching attempt.
// Assignments, Ready and MaxWindow mirror Rooms[0] when Ready is true.
type MatchResult struct {
	Ready       bool             `json:"ready"`
	Assignments []RoleAssignment `json:"assignments"`
	Rooms       []Room           `json:"rooms"`
	MaxWindow   int              `json:"maxWindow"`
	TotalSlots  int              `json:"totalSlots"`
	Error       *MatchError      `json:"error"`
	Metadata    MatchMetadata    `json:"metadata"`
}

// PrimaryRoom returns the first room, if any room was formed.
func (r MatchResult) PrimaryRoom() (Room, bool) {
	if len(r.Rooms) == 0 {
		return Room{}, false
	}
	return r.Rooms[0], true
}

// Copy returns a deep copy of the result.
func (r MatchResult) Copy() MatchResult {
	copied, err := copystructure.Copy(r)
	if err != nil {
		logrus.Warn("failed copy MatchResult:", err)
		return r
	}
	result, _ := copied.(MatchResult)
	return result
}
