package domain

import (
	"fmt"
	"strings"
)

// NodeKey identifies a placed resource instance by its world tile.
type NodeKey struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewNodeKey creates a key for the tile at (x, y)
func NewNodeKey(x, y int) NodeKey {
	return NodeKey{X: x, Y: y}
}

// String renders the key as "x,y", the form used for lock names and storage
func (k NodeKey) String() string {
	return fmt.Sprintf("%d,%d", k.X, k.Y)
}

// ParseNodeKey parses the "x,y" form produced by String
func ParseNodeKey(s string) (NodeKey, error) {
	var k NodeKey
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d,%d", &k.X, &k.Y); err != nil {
		return NodeKey{}, fmt.Errorf("%w: node key %q", ErrInvalidInput, s)
	}
	return k, nil
}

// ChebyshevDistance returns the 8-directional tile distance between two keys.
func ChebyshevDistance(a, b NodeKey) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// IsAdjacent reports whether a player standing on from can interact with node.
// Standing on the node tile itself counts as adjacent.
func IsAdjacent(from, node NodeKey) bool {
	return ChebyshevDistance(from, node) <= InteractionRange
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
