package player

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GatherNode_Go/internal/domain"
)

func TestInventory_AddStacks(t *testing.T) {
	ctx := context.Background()
	inv := NewInventory(0)
	assert.Equal(t, DefaultCapacity, inv.Capacity())

	require.NoError(t, inv.AddItem(ctx, "alice", "copper_ore", 1))
	require.NoError(t, inv.AddItem(ctx, "alice", "copper_ore", 2))

	slots := inv.Slots(ctx, "alice")
	require.Len(t, slots, 1)
	assert.Equal(t, 3, slots[0].Quantity)
	assert.Equal(t, 0, inv.FindSlot(ctx, "alice", "copper_ore"))
	assert.Equal(t, -1, inv.FindSlot(ctx, "alice", "tin_ore"))
	assert.Empty(t, inv.Slots(ctx, "bob"))
}

func TestInventory_Full(t *testing.T) {
	ctx := context.Background()
	inv := NewInventory(2)

	require.NoError(t, inv.AddItem(ctx, "alice", "bronze_pickaxe", 1))
	require.NoError(t, inv.AddItem(ctx, "alice", "copper_ore", 1))

	err := inv.AddItem(ctx, "alice", "tin_ore", 1)
	assert.ErrorIs(t, err, domain.ErrInventoryFull)

	// stacking onto an existing slot still works
	require.NoError(t, inv.AddItem(ctx, "alice", "copper_ore", 5))
	assert.Equal(t, 6, inv.Count("alice", "copper_ore"))

	assert.ErrorIs(t, inv.AddNoted(ctx, "alice", "copper_ore", 1), domain.ErrInventoryFull)
}

func TestInventory_Noted(t *testing.T) {
	ctx := context.Background()
	inv := NewInventory(0)

	require.NoError(t, inv.AddNoted(ctx, "alice", "logs", 20))
	assert.Equal(t, -1, inv.FindSlot(ctx, "alice", "logs"))
	assert.Zero(t, inv.Count("alice", "logs"))

	slots := inv.Slots(ctx, "alice")
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Noted)
}

func TestInventory_Remove(t *testing.T) {
	ctx := context.Background()
	inv := NewInventory(0)
	require.NoError(t, inv.AddItem(ctx, "alice", "logs", 3))

	tests := []struct {
		name    string
		item    string
		qty     int
		wantErr error
	}{
		{"invalid quantity", "logs", 0, domain.ErrInvalidInput},
		{"missing item", "oak_logs", 1, domain.ErrItemNotFound},
		{"too many", "logs", 4, domain.ErrInsufficientQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, inv.RemoveItem(ctx, "alice", tt.item, tt.qty), tt.wantErr)
		})
	}

	require.NoError(t, inv.RemoveItem(ctx, "alice", "logs", 2))
	assert.Equal(t, 1, inv.Count("alice", "logs"))
	require.NoError(t, inv.RemoveItem(ctx, "alice", "logs", 1))
	assert.Empty(t, inv.Slots(ctx, "alice"), "emptied slot is freed")
}

func TestInventory_SlotsIsACopy(t *testing.T) {
	ctx := context.Background()
	inv := NewInventory(0)
	require.NoError(t, inv.AddItem(ctx, "alice", "logs", 1))

	slots := inv.Slots(ctx, "alice")
	slots[0].Quantity = 99
	assert.Equal(t, 1, inv.Count("alice", "logs"))
}
