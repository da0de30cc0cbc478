package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/repository"
)

const (
	queryInsertDepletion = `
		INSERT INTO depletion_records (x, y, resource_type, depleted_at, depleted_by, respawn_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (x, y) DO NOTHING`

	querySelectDepletion = `
		SELECT x, y, resource_type, depleted_at, depleted_by, respawn_at
		FROM depletion_records WHERE x = $1 AND y = $2`

	queryDeleteDepletion = `
		DELETE FROM depletion_records
		WHERE x = $1 AND y = $2 AND ($3::timestamptz IS NULL OR depleted_at = $3)`

	queryListDepletions = `
		SELECT x, y, resource_type, depleted_at, depleted_by, respawn_at
		FROM depletion_records ORDER BY respawn_at NULLS LAST, x, y`

	queryListDueDepletions = `
		SELECT x, y, resource_type, depleted_at, depleted_by, respawn_at
		FROM depletion_records WHERE respawn_at <= $1 ORDER BY respawn_at, x, y`
)

// DepletionRepository stores depletion records in PostgreSQL
type DepletionRepository struct {
	db *pgxpool.Pool
}

var _ repository.Depletion = (*DepletionRepository)(nil)

// NewDepletionRepository creates a new DepletionRepository
func NewDepletionRepository(db *pgxpool.Pool) *DepletionRepository {
	return &DepletionRepository{db: db}
}

// SaveDepletion inserts rec unless the node already has a record
func (r *DepletionRepository) SaveDepletion(ctx context.Context, rec domain.DepletionRecord) (bool, error) {
	tag, err := r.db.Exec(ctx, queryInsertDepletion,
		rec.Key.X, rec.Key.Y, rec.ResourceType, rec.DepletedAt.UTC(), rec.DepletedBy, toTimestamptz(rec.RespawnAt))
	if err != nil {
		return false, fmt.Errorf("%w: failed to save depletion: %v", domain.ErrDatabaseError, err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetDepletion returns the node's record
func (r *DepletionRepository) GetDepletion(ctx context.Context, key domain.NodeKey) (domain.DepletionRecord, error) {
	rec, err := scanDepletion(r.db.QueryRow(ctx, querySelectDepletion, key.X, key.Y))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DepletionRecord{}, domain.ErrNotDepleted
	}
	if err != nil {
		return domain.DepletionRecord{}, fmt.Errorf("%w: failed to get depletion: %v", domain.ErrDatabaseError, err)
	}
	return rec, nil
}

// DeleteDepletion removes the node's record when depleted_at matches
func (r *DepletionRepository) DeleteDepletion(ctx context.Context, key domain.NodeKey, depletedAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, queryDeleteDepletion, key.X, key.Y, toTimestamptz(depletedAt))
	if err != nil {
		return false, fmt.Errorf("%w: failed to delete depletion: %v", domain.ErrDatabaseError, err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListDepletions returns every record ordered by respawn time
func (r *DepletionRepository) ListDepletions(ctx context.Context) ([]domain.DepletionRecord, error) {
	return r.query(ctx, queryListDepletions)
}

// ListDueDepletions returns records whose respawn time is at or before now
func (r *DepletionRepository) ListDueDepletions(ctx context.Context, now time.Time) ([]domain.DepletionRecord, error) {
	return r.query(ctx, queryListDueDepletions, now.UTC())
}

func (r *DepletionRepository) query(ctx context.Context, sql string, args ...any) ([]domain.DepletionRecord, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list depletions: %v", domain.ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []domain.DepletionRecord
	for rows.Next() {
		rec, err := scanDepletion(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan depletion: %v", domain.ErrDatabaseError, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to list depletions: %v", domain.ErrDatabaseError, err)
	}
	return out, nil
}

func scanDepletion(row pgx.Row) (domain.DepletionRecord, error) {
	var (
		rec       domain.DepletionRecord
		respawnAt pgtype.Timestamptz
	)
	if err := row.Scan(&rec.Key.X, &rec.Key.Y, &rec.ResourceType, &rec.DepletedAt, &rec.DepletedBy, &respawnAt); err != nil {
		return domain.DepletionRecord{}, err
	}
	rec.DepletedAt = rec.DepletedAt.UTC()
	if respawnAt.Valid {
		rec.RespawnAt = respawnAt.Time.UTC()
	}
	return rec, nil
}

func toTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}
