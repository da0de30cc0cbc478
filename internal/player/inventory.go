package player

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/logger"
	"github.com/osse101/GatherNode_Go/internal/utils"
)

// Inventory is an in-memory backpack per player. Items of the same kind stack
// in one slot; noted items keep a separate stack.
type Inventory struct {
	mu       sync.Mutex
	capacity int
	bags     map[string]*domain.Inventory
}

// NewInventory creates backpacks with capacity slots; zero means DefaultCapacity
func NewInventory(capacity int) *Inventory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Inventory{
		capacity: capacity,
		bags:     make(map[string]*domain.Inventory),
	}
}

// Capacity returns the slot count of every backpack
func (inv *Inventory) Capacity() int {
	return inv.capacity
}

func (inv *Inventory) bag(owner string) *domain.Inventory {
	b, ok := inv.bags[owner]
	if !ok {
		b = &domain.Inventory{}
		inv.bags[owner] = b
	}
	return b
}

// AddItem stacks quantity of itemID into the owner's backpack.
// It returns domain.ErrInventoryFull when a new slot is needed and none is free.
func (inv *Inventory) AddItem(ctx context.Context, owner, itemID string, quantity int) error {
	return inv.add(ctx, owner, domain.InventorySlot{ItemID: itemID, Quantity: quantity})
}

// AddNoted stacks bank notes for itemID. Notes cannot be used as tools.
func (inv *Inventory) AddNoted(ctx context.Context, owner, itemID string, quantity int) error {
	return inv.add(ctx, owner, domain.InventorySlot{ItemID: itemID, Quantity: quantity, Noted: true})
}

func (inv *Inventory) add(ctx context.Context, owner string, slot domain.InventorySlot) error {
	log := logger.FromContext(ctx)
	if slot.Quantity <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidQuantity)
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	b := inv.bag(owner)
	items := []domain.InventorySlot{slot}
	if len(b.Slots)+utils.SlotsNeeded(b, items) > inv.capacity {
		log.Debug(LogMsgInventoryFull, "owner", owner, "item", slot.ItemID)
		return fmt.Errorf("%w: %s", domain.ErrInventoryFull, slot.ItemID)
	}

	utils.AddItemsToInventory(b, items, nil)
	log.Debug(LogMsgItemAdded, "owner", owner, "item", slot.ItemID, "quantity", slot.Quantity, "noted", slot.Noted)
	return nil
}

// RemoveItem takes quantity of the unnoted itemID out of the backpack. Emptied slots are freed.
func (inv *Inventory) RemoveItem(ctx context.Context, owner, itemID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidQuantity)
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	b := inv.bag(owner)
	idx, have := utils.FindSlot(b, itemID)
	if idx == -1 {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	if have < quantity {
		return fmt.Errorf("%w: have %d %s, need %d", domain.ErrInsufficientQuantity, have, itemID, quantity)
	}

	b.Slots[idx].Quantity -= quantity
	if b.Slots[idx].Quantity == 0 {
		b.Slots = append(b.Slots[:idx], b.Slots[idx+1:]...)
	}
	logger.FromContext(ctx).Debug(LogMsgItemRemoved, "owner", owner, "item", itemID, "quantity", quantity)
	return nil
}

// FindSlot returns the index of the unnoted itemID stack, or -1
func (inv *Inventory) FindSlot(_ context.Context, owner, itemID string) int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	idx, _ := utils.FindSlot(inv.bag(owner), itemID)
	return idx
}

// Count returns how many unnoted itemID the owner carries
func (inv *Inventory) Count(owner, itemID string) int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	_, qty := utils.FindSlot(inv.bag(owner), itemID)
	return qty
}

// Slots returns a copy of the owner's slots
func (inv *Inventory) Slots(_ context.Context, owner string) []domain.InventorySlot {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	b := inv.bag(owner)
	return append([]domain.InventorySlot(nil), b.Slots...)
}
