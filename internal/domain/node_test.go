package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChebyshevDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b NodeKey
		want int
	}{
		{"same tile", NewNodeKey(3, 3), NewNodeKey(3, 3), 0},
		{"orthogonal", NewNodeKey(3, 3), NewNodeKey(4, 3), 1},
		{"diagonal", NewNodeKey(3, 3), NewNodeKey(4, 4), 1},
		{"knight move", NewNodeKey(0, 0), NewNodeKey(1, 2), 2},
		{"negative coords", NewNodeKey(-2, 5), NewNodeKey(1, 4), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChebyshevDistance(tt.a, tt.b))
			assert.Equal(t, tt.want, ChebyshevDistance(tt.b, tt.a))
		})
	}
}

func TestIsAdjacent(t *testing.T) {
	node := NewNodeKey(10, 10)
	assert.True(t, IsAdjacent(NewNodeKey(9, 9), node))
	assert.True(t, IsAdjacent(NewNodeKey(10, 10), node))
	assert.False(t, IsAdjacent(NewNodeKey(8, 10), node))
}

func TestParseNodeKey(t *testing.T) {
	key, err := ParseNodeKey(" 12,-4 ")
	require.NoError(t, err)
	assert.Equal(t, NewNodeKey(12, -4), key)
	assert.Equal(t, "12,-4", key.String())

	_, err = ParseNodeKey("twelve")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDepletionRecord_RespawnDue(t *testing.T) {
	rec := DepletionRecord{}
	assert.False(t, rec.RespawnDue(fixedNow), "records without a respawn time never become due")

	rec.RespawnAt = fixedNow
	assert.True(t, rec.RespawnDue(fixedNow))
	assert.False(t, rec.RespawnDue(fixedNow.Add(-1)))
}
