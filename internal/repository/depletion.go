package repository

import (
	"context"
	"time"

	"github.com/osse101/GatherNode_Go/internal/domain"
)

// Depletion persists the authority's depletion records, one per node
type Depletion interface {
	// SaveDepletion stores rec unless the node already has a record.
	// It reports whether rec was stored.
	SaveDepletion(ctx context.Context, rec domain.DepletionRecord) (bool, error)
	// GetDepletion returns domain.ErrNotDepleted when the node has no record
	GetDepletion(ctx context.Context, key domain.NodeKey) (domain.DepletionRecord, error)
	// DeleteDepletion removes the node's record when it was depleted at depletedAt.
	// A zero depletedAt removes whatever record the node has.
	DeleteDepletion(ctx context.Context, key domain.NodeKey, depletedAt time.Time) (bool, error)
	ListDepletions(ctx context.Context) ([]domain.DepletionRecord, error)
	ListDueDepletions(ctx context.Context, now time.Time) ([]domain.DepletionRecord, error)
}
