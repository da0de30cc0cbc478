package domain

// InventorySlot represents a single stack in a player's inventory
type InventorySlot struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Noted    bool   `json:"noted,omitempty"` // bank-note denomination; cannot be wielded or used as a tool
}

// Inventory is a player's slot list
type Inventory struct {
	Slots      []InventorySlot `json:"slots"`
	LastUpdate int64           `json:"last_update,omitempty"`
}
