package cooldown

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GatherNode_Go/internal/domain"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestLedger(t *testing.T, cfg Config) *Ledger {
	t.Helper()
	l, err := NewLedger(cfg)
	require.NoError(t, err)
	return l
}

func TestNewLedger_Defaults(t *testing.T) {
	l := newTestLedger(t, Config{})
	assert.Equal(t, DefaultClickCooldown, l.Config().ClickCooldown)
	assert.Equal(t, DefaultResourceCooldown, l.Config().ResourceCooldown)
	assert.Equal(t, DefaultTableSize, l.Config().TableSize)
}

func TestCheckAndStampClick(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, DefaultConfig())
	key := Key{Owner: "alice", Node: domain.NewNodeKey(3, 4)}

	assert.True(t, l.CheckAndStampClick(ctx, key, t0))
	assert.False(t, l.CheckAndStampClick(ctx, key, t0.Add(599*time.Millisecond)))
	// throttled clicks do not extend the window
	assert.True(t, l.CheckAndStampClick(ctx, key, t0.Add(600*time.Millisecond)))

	other := Key{Owner: "alice", Node: domain.NewNodeKey(3, 5)}
	assert.True(t, l.CheckAndStampClick(ctx, other, t0.Add(700*time.Millisecond)))

	bob := Key{Owner: "bob", Node: key.Node}
	assert.True(t, l.CheckAndStampClick(ctx, bob, t0.Add(700*time.Millisecond)))
}

func TestResourceCooldown(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, DefaultConfig())
	key := Key{Owner: "alice", Node: domain.NewNodeKey(0, 0)}

	assert.Zero(t, l.ResourceRemaining(ctx, key, t0))

	l.StampResource(key, t0)
	assert.Equal(t, 750*time.Millisecond, l.ResourceRemaining(ctx, key, t0.Add(250*time.Millisecond)))

	err := l.CheckResource(ctx, key, "mine", t0.Add(250*time.Millisecond))
	var cd ErrOnCooldown
	require.ErrorAs(t, err, &cd)
	assert.Equal(t, "mine", cd.Action)

	assert.Zero(t, l.ResourceRemaining(ctx, key, t0.Add(time.Second)))
	assert.NoError(t, l.CheckResource(ctx, key, "mine", t0.Add(time.Second)))
	_, res := l.Len()
	assert.Zero(t, res, "expired entry is dropped on lookup")
}

func TestTablesAreIndependent(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, DefaultConfig())
	key := Key{Owner: "alice", Node: domain.NewNodeKey(1, 1)}

	l.StampResource(key, t0)
	assert.True(t, l.CheckAndStampClick(ctx, key, t0), "resource stamp must not throttle clicks")

	other := Key{Owner: "alice", Node: domain.NewNodeKey(2, 2)}
	require.True(t, l.CheckAndStampClick(ctx, other, t0))
	assert.Zero(t, l.ResourceRemaining(ctx, other, t0), "click stamp must not start a resource cooldown")
}

func TestCooldownMonotonic(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, DefaultConfig())
	key := Key{Owner: "alice", Node: domain.NewNodeKey(9, 9)}
	l.StampResource(key, t0)

	prev := l.ResourceRemaining(ctx, key, t0)
	for step := 1; step <= 12; step++ {
		now := t0.Add(time.Duration(step) * 100 * time.Millisecond)
		cur := l.ResourceRemaining(ctx, key, now)
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
	assert.Zero(t, prev)
}

func TestDevModeBypassesResourceOnly(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.DevMode = true
	l := newTestLedger(t, cfg)
	key := Key{Owner: "dev", Node: domain.NewNodeKey(0, 0)}

	l.StampResource(key, t0)
	assert.Zero(t, l.ResourceRemaining(ctx, key, t0))

	require.True(t, l.CheckAndStampClick(ctx, key, t0))
	assert.False(t, l.CheckAndStampClick(ctx, key, t0))
}

func TestTableIsBounded(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, Config{TableSize: 2})

	for x := 0; x < 5; x++ {
		l.CheckAndStampClick(ctx, Key{Owner: "alice", Node: domain.NewNodeKey(x, 0)}, t0)
	}
	clicks, _ := l.Len()
	assert.Equal(t, 2, clicks)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, DefaultConfig())
	key := Key{Owner: "alice", Node: domain.NewNodeKey(0, 0)}

	require.True(t, l.CheckAndStampClick(ctx, key, t0))
	l.StampResource(key, t0)
	l.Reset(key)

	assert.True(t, l.CheckAndStampClick(ctx, key, t0))
	assert.Zero(t, l.ResourceRemaining(ctx, key, t0))
}
