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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/roles"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	pool       *pgxpool.Pool
	connString string
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{pool: pool, connString: connString}, nil
}

// Migrate applies the embedded migrations over a database/sql connection.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	migrationDB, err := sql.Open("pgx", p.connString)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer migrationDB.Close()

	if _, err := runMigrations(ctx, goose.DialectPostgres, migrationDB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}

func (p *PostgresStore) ListQueue(ctx context.Context, gameID, mode string) ([]models.Candidate, error) {
	return p.listCandidates(ctx, models.SourceQueue, selectQueueSQL, gameID, mode)
}

func (p *PostgresStore) ListParticipantPool(ctx context.Context, gameID string, limit int) ([]models.Candidate, error) {
	var limitArg any = limit
	if limit <= 0 {
		limitArg = nil // LIMIT NULL is no limit
	}
	return p.listCandidates(ctx, models.SourcePool, selectParticipantsSQL, gameID, limitArg)
}

func (p *PostgresStore) listCandidates(ctx context.Context, source, query string, args ...any) ([]models.Candidate, error) {
	rows, err := p.pool.Query(ctx, rebind(query), args...)
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

func (p *PostgresStore) CountAliveByRole(ctx context.Context, gameID string) (map[string]int, error) {
	rows, err := p.pool.Query(ctx, rebind(countAliveSQL), gameID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			role  string
			count int64
		)
		if err := rows.Scan(&role, &count); err != nil {
			return nil, wrapErr(err)
		}
		counts[role] = int(count)
	}
	return counts, wrapErr(rows.Err())
}

func (p *PostgresStore) LoadRoleConfig(ctx context.Context, gameID string) (roles.Resolution, error) {
	var config RoleConfig

	err := p.pool.QueryRow(ctx, rebind(selectInlineRolesSQL), gameID).Scan(&config.InlineRoles)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return roles.Resolution{}, wrapErr(err)
	}

	roleRows, err := p.pool.Query(ctx, rebind(selectRolesSQL), gameID)
	if err != nil {
		return roles.Resolution{}, wrapErr(err)
	}
	config.Roles, err = pgx.CollectRows(roleRows, func(row pgx.CollectableRow) (models.RoleRequirement, error) {
		var role models.RoleRequirement
		err := row.Scan(&role.Name, &role.SlotCount)
		return role, err
	})
	if err != nil {
		return roles.Resolution{}, wrapErr(err)
	}

	slotRows, err := p.pool.Query(ctx, rebind(selectSlotsSQL), gameID)
	if err != nil {
		return roles.Resolution{}, wrapErr(err)
	}
	config.Slots, err = pgx.CollectRows(slotRows, func(row pgx.CollectableRow) (models.SlotAssignment, error) {
		var slot models.SlotAssignment
		err := row.Scan(&slot.SlotIndex, &slot.Role)
		return slot, err
	})
	if err != nil {
		return roles.Resolution{}, wrapErr(err)
	}

	return resolveRoleConfig(config)
}

// SaveRoleConfig replaces the stored role configuration of a game.
func (p *PostgresStore) SaveRoleConfig(ctx context.Context, gameID string, config RoleConfig) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return wrapErr(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, rebind(upsertGameSQL), gameID, nullableString(config.InlineRoles)); err != nil {
		return wrapErr(err)
	}
	if _, err := tx.Exec(ctx, rebind(deleteRolesSQL), gameID); err != nil {
		return wrapErr(err)
	}
	if _, err := tx.Exec(ctx, rebind(deleteSlotsSQL), gameID); err != nil {
		return wrapErr(err)
	}

	batch := &pgx.Batch{}
	for position, role := range config.Roles {
		batch.Queue(rebind(insertRoleSQL), gameID, role.Name, role.SlotCount, position)
	}
	for _, slot := range config.Slots {
		batch.Queue(rebind(insertSlotSQL), gameID, slot.SlotIndex, slot.Role)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return wrapErr(err)
	}
	return wrapErr(tx.Commit(ctx))
}

func (p *PostgresStore) Enqueue(ctx context.Context, entry QueueEntry) error {
	_, err := p.pool.Exec(ctx, rebind(insertQueueSQL), queueArgs(entry)...)
	var pgErr *pgconn.PgError
	// 23505 is unique_violation
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %q", ErrDuplicateEntry, entry.ID)
	}
	return wrapErr(err)
}

func (p *PostgresStore) UpsertParticipant(ctx context.Context, participant Participant) error {
	_, err := p.pool.Exec(ctx, rebind(upsertParticipantSQL), participantArgs(participant)...)
	return wrapErr(err)
}

func (p *PostgresStore) MarkQueueMatched(ctx context.Context, roomID string, ids []string) error {
	ids = pie.Unique(ids)
	if len(ids) == 0 {
		return nil
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return wrapErr(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, rebind(markMatchedSQL(len(ids))), markMatchedArgs(roomID, ids)...)
	if err != nil {
		return wrapErr(err)
	}
	if affected := tag.RowsAffected(); int(affected) != len(ids) {
		return fmt.Errorf("%w: %d of %d", ErrQueueConflict, affected, len(ids))
	}
	return wrapErr(tx.Commit(ctx))
}
