// Package memory holds in-process repository implementations used when no
// database is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/repository"
)

// DepletionRepository keeps depletion records in a map
type DepletionRepository struct {
	mu      sync.RWMutex
	records map[domain.NodeKey]domain.DepletionRecord
}

var _ repository.Depletion = (*DepletionRepository)(nil)

// NewDepletionRepository creates an empty repository
func NewDepletionRepository() *DepletionRepository {
	return &DepletionRepository{records: make(map[domain.NodeKey]domain.DepletionRecord)}
}

// SaveDepletion stores rec if the node has no record
func (r *DepletionRepository) SaveDepletion(_ context.Context, rec domain.DepletionRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[rec.Key]; exists {
		return false, nil
	}
	r.records[rec.Key] = rec
	return true, nil
}

// GetDepletion returns the node's record
func (r *DepletionRepository) GetDepletion(_ context.Context, key domain.NodeKey) (domain.DepletionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[key]
	if !ok {
		return domain.DepletionRecord{}, domain.ErrNotDepleted
	}
	return rec, nil
}

// DeleteDepletion removes the node's record if it matches depletedAt
func (r *DepletionRepository) DeleteDepletion(_ context.Context, key domain.NodeKey, depletedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[key]
	if !ok {
		return false, nil
	}
	if !depletedAt.IsZero() && !rec.DepletedAt.Equal(depletedAt) {
		return false, nil
	}
	delete(r.records, key)
	return true, nil
}

// ListDepletions returns all records ordered by respawn time
func (r *DepletionRepository) ListDepletions(_ context.Context) ([]domain.DepletionRecord, error) {
	return r.list(func(domain.DepletionRecord) bool { return true }), nil
}

// ListDueDepletions returns the records whose respawn time has passed
func (r *DepletionRepository) ListDueDepletions(_ context.Context, now time.Time) ([]domain.DepletionRecord, error) {
	return r.list(func(rec domain.DepletionRecord) bool { return rec.RespawnDue(now) }), nil
}

func (r *DepletionRepository) list(keep func(domain.DepletionRecord) bool) []domain.DepletionRecord {
	r.mu.RLock()
	out := make([]domain.DepletionRecord, 0, len(r.records))
	for _, rec := range r.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	r.mu.RUnlock()

	sortRecords(out)
	return out
}

func sortRecords(recs []domain.DepletionRecord) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.RespawnAt.Equal(b.RespawnAt) {
			return a.RespawnAt.Before(b.RespawnAt)
		}
		if a.Key.X != b.Key.X {
			return a.Key.X < b.Key.X
		}
		return a.Key.Y < b.Key.Y
	})
}
