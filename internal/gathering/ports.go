package gathering

import (
	"context"

	"github.com/osse101/GatherNode_Go/internal/domain"
)

// Inventory is the item storage the engine rewards into.
// AddItem returns domain.ErrInventoryFull when the items do not fit.
type Inventory interface {
	AddItem(ctx context.Context, owner, itemID string, quantity int) error
	RemoveItem(ctx context.Context, owner, itemID string, quantity int) error
	FindSlot(ctx context.Context, owner, itemID string) int
	Slots(ctx context.Context, owner string) []domain.InventorySlot
}

// Skills grants experience and reports levels
type Skills interface {
	GrantExperience(ctx context.Context, owner, skill string, amount float64) (leveledUp bool, err error)
	Level(ctx context.Context, owner, skill string) int
}

// Movement walks a player next to a node. Arrival is reported through
// Engine.HandleMovementCompleted and failure through Engine.HandleMovementFailed.
type Movement interface {
	MoveToAdjacent(ctx context.Context, owner string, key domain.NodeKey) error
}

// Positions reports where a player stands
type Positions interface {
	Position(ctx context.Context, owner string) (domain.NodeKey, error)
}

// Roller is the random source for drop tables and depletion rolls.
// *rand.Rand from math/rand/v2 satisfies it.
type Roller interface {
	Float64() float64
	IntN(n int) int
}
