package utils

import "github.com/osse101/GatherNode_Go/internal/domain"

// InventoryLookupLinearScanThreshold defines when to switch from linear scan to map-based lookup.
// Linear scan wins for small batches even on large inventories.
const InventoryLookupLinearScanThreshold = 10

// SlotKey identifies a stack. Noted and unnoted copies of an item never share a slot.
type SlotKey struct {
	ItemID string
	Noted  bool
}

func keyOf(slot domain.InventorySlot) SlotKey {
	return SlotKey{ItemID: slot.ItemID, Noted: slot.Noted}
}

// FindSlot finds the unnoted stack of itemID in an inventory.
// Returns the index of the slot and the quantity found, or -1, 0 if not found.
func FindSlot(inventory *domain.Inventory, itemID string) (int, int) {
	return FindStack(inventory, SlotKey{ItemID: itemID})
}

// FindStack finds the slot holding key
func FindStack(inventory *domain.Inventory, key SlotKey) (int, int) {
	for i, slot := range inventory.Slots {
		if keyOf(slot) == key {
			return i, slot.Quantity
		}
	}
	return -1, 0
}

// BuildSlotMap creates a map of stack key to slot index for O(1) lookups.
func BuildSlotMap(inventory *domain.Inventory) map[SlotKey]int {
	slotMap := make(map[SlotKey]int, len(inventory.Slots))
	for i, slot := range inventory.Slots {
		if _, seen := slotMap[keyOf(slot)]; !seen {
			slotMap[keyOf(slot)] = i
		}
	}
	return slotMap
}

// SlotsNeeded returns how many new slots adding items would open
func SlotsNeeded(inventory *domain.Inventory, items []domain.InventorySlot) int {
	existing := BuildSlotMap(inventory)
	opened := make(map[SlotKey]struct{})
	for _, item := range items {
		k := keyOf(item)
		if _, ok := existing[k]; ok {
			continue
		}
		opened[k] = struct{}{}
	}
	return len(opened)
}

// AddItemsToInventory stacks items into inventory using a hybrid lookup strategy.
// For small batches (< InventoryLookupLinearScanThreshold) it scans linearly to avoid the map allocation.
// The slotMap parameter is optional and will be created if nil and needed.
func AddItemsToInventory(inventory *domain.Inventory, items []domain.InventorySlot, slotMap map[SlotKey]int) {
	if len(items) == 0 {
		return
	}

	useMap := len(items) >= InventoryLookupLinearScanThreshold
	if useMap && slotMap == nil {
		slotMap = BuildSlotMap(inventory)
	}

	for _, item := range items {
		k := keyOf(item)
		if useMap {
			if idx, exists := slotMap[k]; exists {
				inventory.Slots[idx].Quantity += item.Quantity
			} else {
				inventory.Slots = append(inventory.Slots, item)
				slotMap[k] = len(inventory.Slots) - 1
			}
			continue
		}

		if idx, _ := FindStack(inventory, k); idx != -1 {
			inventory.Slots[idx].Quantity += item.Quantity
		} else {
			inventory.Slots = append(inventory.Slots, item)
		}
	}
}
