package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestActionRequest_WireFormat(t *testing.T) {
	msg := NewActionRequest("p1", "ore_copper", NewNodeKey(4, 7), "mine")

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, "resource-action-request", wire["kind"])
	assert.Equal(t, "ore_copper", wire["resourceType"])
	assert.Equal(t, float64(4), wire["x"])
	assert.Equal(t, float64(7), wire["y"])
	assert.Equal(t, "mine", wire["actionKind"])
	assert.NotContains(t, wire, "respawnDelayMs")
}

func TestActionResponse_EchoesRequest(t *testing.T) {
	req := NewActionRequest("p1", "tree_oak", NewNodeKey(1, 2), "chop")
	resp := NewActionResponse(req, false, "That tree has been chopped down.", "p2")

	assert.Equal(t, KindActionResponse, resp.Kind)
	assert.Equal(t, req.Key(), resp.Key())
	assert.Equal(t, "p1", resp.PlayerID)
	assert.Equal(t, "p2", resp.DepletedBy)
	assert.False(t, resp.Approved)
}

func TestDepletionRequest_RespawnDelay(t *testing.T) {
	msg := NewDepletionRequest("p1", "ore_iron", NewNodeKey(0, 0), 5400*time.Millisecond)
	assert.Equal(t, int64(5400), msg.RespawnDelayMs)
	assert.Equal(t, 5400*time.Millisecond, msg.RespawnDelay())
}

func TestDepletedBroadcast_CarriesRespawnDelay(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := DepletionRecord{
		Key:          NewNodeKey(4, 2),
		ResourceType: "ore_iron",
		DepletedAt:   at,
		DepletedBy:   "alice",
		RespawnAt:    at.Add(9 * time.Second),
	}

	msg := NewDepletedBroadcast(rec)
	assert.Equal(t, KindDepleted, msg.Kind)
	assert.Equal(t, "alice", msg.DepletedBy)
	assert.Equal(t, 9*time.Second, msg.RespawnDelay())

	rec.RespawnAt = time.Time{}
	assert.Zero(t, NewDepletedBroadcast(rec).RespawnDelayMs)
}
