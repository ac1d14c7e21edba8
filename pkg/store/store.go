// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package store persists role configuration, the match queue and past participants.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/candidatepool"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/roles"
)

// Queue entry statuses.
const (
	QueueStatusWaiting = "waiting"
	QueueStatusMatched = "matched"
)

// Participant statuses.
const (
	ParticipantStatusAlive      = "alive"
	ParticipantStatusEliminated = "eliminated"
	ParticipantStatusLeft       = "left"
)

var (
	ErrUnexpectedDatabase = errors.New("unexpected database error")
	ErrQueueConflict      = errors.New("queue entries are no longer waiting")
	ErrDuplicateEntry     = errors.New("queue entry already exists")
	ErrUnknownDriver      = errors.New("unknown database driver")
)

// RoleConfig is the stored role configuration of a game. InlineRoles is the raw JSON list
// kept on the game row.
type RoleConfig struct {
	Roles       []models.RoleRequirement
	Slots       []models.SlotAssignment
	InlineRoles string
}

// QueueEntry is one queued player-hero pairing.
type QueueEntry struct {
	ID       string
	GameID   string
	Mode     string
	OwnerID  string
	HeroID   string
	HeroName string
	Role     string
	Score    float64
	JoinedAt time.Time
}

// Participant is a past or current participant of a game.
type Participant struct {
	ID        string
	GameID    string
	OwnerID   string
	HeroID    string
	HeroName  string
	Role      string
	Score     float64
	Status    string
	UpdatedAt time.Time
}

type Store interface {
	candidatepool.Source

	LoadRoleConfig(ctx context.Context, gameID string) (roles.Resolution, error)
	SaveRoleConfig(ctx context.Context, gameID string, config RoleConfig) error
	Enqueue(ctx context.Context, entry QueueEntry) error
	UpsertParticipant(ctx context.Context, participant Participant) error
	// MarkQueueMatched moves every id to matched for roomID, or none of them when any is not waiting.
	MarkQueueMatched(ctx context.Context, roomID string, ids []string) error
	Migrate(ctx context.Context) error
	Close() error
}

// Open returns the store backend named by driver.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite", "":
		return NewSQLiteStore(dsn)
	case "postgres":
		return NewPostgresStore(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

const (
	selectQueueSQL = `SELECT id, owner_id, hero_id, hero_name, role, score, joined_at_ms
		FROM rank_match_queue
		WHERE game_id = ? AND mode = ? AND status = 'waiting'
		ORDER BY joined_at_ms, id`

	selectParticipantsSQL = `SELECT id, owner_id, hero_id, hero_name, role, score, updated_at_ms
		FROM rank_participants
		WHERE game_id = ?
		ORDER BY id
		LIMIT ?`

	countAliveSQL = `SELECT role, COUNT(*)
		FROM rank_participants
		WHERE game_id = ? AND status = 'alive'
		GROUP BY role`

	selectRolesSQL = `SELECT name, slot_count FROM rank_game_roles WHERE game_id = ? ORDER BY position`

	selectSlotsSQL = `SELECT slot_index, role FROM rank_game_slots WHERE game_id = ? ORDER BY slot_index`

	selectInlineRolesSQL = `SELECT COALESCE(inline_roles, '') FROM rank_games WHERE id = ?`

	upsertGameSQL = `INSERT INTO rank_games (id, inline_roles) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET inline_roles = excluded.inline_roles`

	deleteRolesSQL = `DELETE FROM rank_game_roles WHERE game_id = ?`
	deleteSlotsSQL = `DELETE FROM rank_game_slots WHERE game_id = ?`
	insertRoleSQL  = `INSERT INTO rank_game_roles (game_id, name, slot_count, position) VALUES (?, ?, ?, ?)`
	insertSlotSQL  = `INSERT INTO rank_game_slots (game_id, slot_index, role) VALUES (?, ?, ?)`

	insertQueueSQL = `INSERT INTO rank_match_queue (id, game_id, mode, owner_id, hero_id, hero_name, role, score, status, joined_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'waiting', ?)`

	upsertParticipantSQL = `INSERT INTO rank_participants (id, game_id, owner_id, hero_id, hero_name, role, score, status, updated_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			owner_id = excluded.owner_id,
			hero_id = excluded.hero_id,
			hero_name = excluded.hero_name,
			role = excluded.role,
			score = excluded.score,
			status = excluded.status,
			updated_at_ms = excluded.updated_at_ms`
)

// markMatchedSQL builds the matched update for n ids.
func markMatchedSQL(n int) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
	return `UPDATE rank_match_queue SET status = 'matched', room_id = ?
		WHERE status = 'waiting' AND id IN (` + placeholders + `)`
}

// rebind turns ? placeholders into $n placeholders.
func rebind(query string) string {
	var (
		builder strings.Builder
		n       int
	)
	builder.Grow(len(query) + 8)
	for _, r := range query {
		if r != '?' {
			builder.WriteRune(r)
			continue
		}
		n++
		builder.WriteByte('$')
		builder.WriteString(strconv.Itoa(n))
	}
	return builder.String()
}

// wrapErr keeps context errors untouched and marks everything else as a database failure.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnexpectedDatabase, err)
}

// rowScanner is satisfied by *sql.Rows and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row rowScanner, source string) (models.Candidate, error) {
	var (
		candidate models.Candidate
		atMillis  int64
	)
	if err := row.Scan(&candidate.ID, &candidate.OwnerID, &candidate.HeroID, &candidate.HeroName,
		&candidate.Role, &candidate.Score, &atMillis); err != nil {
		return models.Candidate{}, err
	}
	candidate.JoinedAt = time.UnixMilli(atMillis).UTC()
	candidate.Source = source
	return candidate, nil
}

func queueArgs(entry QueueEntry) []any {
	return []any{entry.ID, entry.GameID, entry.Mode, entry.OwnerID, entry.HeroID, entry.HeroName,
		entry.Role, entry.Score, entry.JoinedAt.UnixMilli()}
}

func participantArgs(participant Participant) []any {
	status := participant.Status
	if status == "" {
		status = ParticipantStatusAlive
	}
	return []any{participant.ID, participant.GameID, participant.OwnerID, participant.HeroID,
		participant.HeroName, participant.Role, participant.Score, status, participant.UpdatedAt.UnixMilli()}
}

func markMatchedArgs(roomID string, ids []string) []any {
	args := make([]any, 0, len(ids)+1)
	args = append(args, roomID)
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}

// resolveRoleConfig runs the stored rows through the role resolver.
func resolveRoleConfig(config RoleConfig) (roles.Resolution, error) {
	inlineRoles, err := roles.ParseInlineRoles(config.InlineRoles)
	if err != nil {
		return roles.Resolution{}, err
	}
	return roles.Resolve(config.Roles, config.Slots, inlineRoles)
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
