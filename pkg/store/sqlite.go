// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/elliotchance/pie/v2"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/roles"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dsn. Call Migrate before first use.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps in-memory databases shared and serializes writers
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := runMigrations(ctx, goose.DialectSQLite3, s.db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListQueue(ctx context.Context, gameID, mode string) ([]models.Candidate, error) {
	return s.listCandidates(ctx, models.SourceQueue, selectQueueSQL, gameID, mode)
}

func (s *SQLiteStore) ListParticipantPool(ctx context.Context, gameID string, limit int) ([]models.Candidate, error) {
	if limit <= 0 {
		limit = -1 // no limit in sqlite
	}
	return s.listCandidates(ctx, models.SourcePool, selectParticipantsSQL, gameID, limit)
}

func (s *SQLiteStore) listCandidates(ctx context.Context, source, query string, args ...any) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	candidates := make([]models.Candidate, 0)
	for rows.Next() {
		candidate, err := scanCandidate(rows, source)
		if err != nil {
			return nil, wrapErr(err)
		}
		candidates = append(candidates, candidate)
	}
	return candidates, wrapErr(rows.Err())
}

func (s *SQLiteStore) CountAliveByRole(ctx context.Context, gameID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, countAliveSQL, gameID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			role  string
			count int
		)
		if err := rows.Scan(&role, &count); err != nil {
			return nil, wrapErr(err)
		}
		counts[role] = count
	}
	return counts, wrapErr(rows.Err())
}

func (s *SQLiteStore) LoadRoleConfig(ctx context.Context, gameID string) (roles.Resolution, error) {
	var config RoleConfig

	err := s.db.QueryRowContext(ctx, selectInlineRolesSQL, gameID).Scan(&config.InlineRoles)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return roles.Resolution{}, wrapErr(err)
	}

	roleRows, err := s.db.QueryContext(ctx, selectRolesSQL, gameID)
	if err != nil {
		return roles.Resolution{}, wrapErr(err)
	}
	defer roleRows.Close()
	for roleRows.Next() {
		var role models.RoleRequirement
		if err := roleRows.Scan(&role.Name, &role.SlotCount); err != nil {
			return roles.Resolution{}, wrapErr(err)
		}
		config.Roles = append(config.Roles, role)
	}
	if err := roleRows.Err(); err != nil {
		return roles.Resolution{}, wrapErr(err)
	}

	slotRows, err := s.db.QueryContext(ctx, selectSlotsSQL, gameID)
	if err != nil {
		return roles.Resolution{}, wrapErr(err)
	}
	defer slotRows.Close()
	for slotRows.Next() {
		var slot models.SlotAssignment
		if err := slotRows.Scan(&slot.SlotIndex, &slot.Role); err != nil {
			return roles.Resolution{}, wrapErr(err)
		}
		config.Slots = append(config.Slots, slot)
	}
	if err := slotRows.Err(); err != nil {
		return roles.Resolution{}, wrapErr(err)
	}

	return resolveRoleConfig(config)
}

// SaveRoleConfig replaces the stored role configuration of a game.
func (s *SQLiteStore) SaveRoleConfig(ctx context.Context, gameID string, config RoleConfig) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr(err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, upsertGameSQL, gameID, nullableString(config.InlineRoles)); err != nil {
		return wrapErr(err)
	}
	if _, err := tx.ExecContext(ctx, deleteRolesSQL, gameID); err != nil {
		return wrapErr(err)
	}
	if _, err := tx.ExecContext(ctx, deleteSlotsSQL, gameID); err != nil {
		return wrapErr(err)
	}
	for position, role := range config.Roles {
		if _, err := tx.ExecContext(ctx, insertRoleSQL, gameID, role.Name, role.SlotCount, position); err != nil {
			return wrapErr(err)
		}
	}
	for _, slot := range config.Slots {
		if _, err := tx.ExecContext(ctx, insertSlotSQL, gameID, slot.SlotIndex, slot.Role); err != nil {
			return wrapErr(err)
		}
	}
	return wrapErr(tx.Commit())
}

func (s *SQLiteStore) Enqueue(ctx context.Context, entry QueueEntry) error {
	_, err := s.db.ExecContext(ctx, insertQueueSQL, queueArgs(entry)...)
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %q", ErrDuplicateEntry, entry.ID)
	}
	return wrapErr(err)
}

func (s *SQLiteStore) UpsertParticipant(ctx context.Context, participant Participant) error {
	_, err := s.db.ExecContext(ctx, upsertParticipantSQL, participantArgs(participant)...)
	return wrapErr(err)
}

func (s *SQLiteStore) MarkQueueMatched(ctx context.Context, roomID string, ids []string) error {
	ids = pie.Unique(ids)
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr(err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, markMatchedSQL(len(ids)), markMatchedArgs(roomID, ids)...)
	if err != nil {
		return wrapErr(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return wrapErr(err)
	}
	if int(affected) != len(ids) {
		return fmt.Errorf("%w: %d of %d", ErrQueueConflict, affected, len(ids))
	}
	return wrapErr(tx.Commit())
}
