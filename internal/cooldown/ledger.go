package cooldown

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/logger"
)

// Key scopes a cooldown to one player working one node
type Key struct {
	Owner string
	Node  domain.NodeKey
}

// Ledger tracks the click and resource cooldown tables.
//
// The tables are independent: a click stamp never delays a harvest and a
// harvest stamp never swallows a click. Each table is an LRU bounded by
// Config.TableSize, and expired entries are also dropped on lookup.
type Ledger struct {
	config   Config
	clicks   *lru.Cache[Key, time.Time]
	resource *lru.Cache[Key, time.Time]
}

// NewLedger creates a ledger; zero config fields fall back to the defaults
func NewLedger(config Config) (*Ledger, error) {
	config = config.withDefaults()

	clicks, err := lru.New[Key, time.Time](config.TableSize)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreateTableFailed, ActionClick, err)
	}
	resource, err := lru.New[Key, time.Time](config.TableSize)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreateTableFailed, ActionResource, err)
	}

	return &Ledger{config: config, clicks: clicks, resource: resource}, nil
}

// Config returns the effective configuration
func (l *Ledger) Config() Config {
	return l.config
}

// CheckAndStampClick reports whether a click may proceed and, if so, starts a new click cooldown.
// A throttled click leaves the existing stamp untouched.
func (l *Ledger) CheckAndStampClick(ctx context.Context, key Key, now time.Time) bool {
	if expires, ok := l.clicks.Get(key); ok && now.Before(expires) {
		logger.FromContext(ctx).Debug(LogMsgClickThrottled,
			"owner", key.Owner, "node", key.Node.String(), "remaining", expires.Sub(now))
		return false
	}
	l.clicks.Add(key, now.Add(l.config.ClickCooldown))
	return true
}

// ResourceRemaining returns how long until the node can be harvested again, or zero
func (l *Ledger) ResourceRemaining(ctx context.Context, key Key, now time.Time) time.Duration {
	if l.config.DevMode {
		logger.FromContext(ctx).Debug(LogMsgDevModeBypass, "owner", key.Owner, "node", key.Node.String())
		return 0
	}

	expires, ok := l.resource.Get(key)
	if !ok {
		return 0
	}
	if !now.Before(expires) {
		l.resource.Remove(key)
		return 0
	}
	return expires.Sub(now)
}

// CheckResource wraps ResourceRemaining as an error for callers that surface it to the player
func (l *Ledger) CheckResource(ctx context.Context, key Key, action string, now time.Time) error {
	if remaining := l.ResourceRemaining(ctx, key, now); remaining > 0 {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}
	return nil
}

// StampResource starts the resource cooldown after a successful harvest
func (l *Ledger) StampResource(key Key, now time.Time) {
	l.resource.Add(key, now.Add(l.config.ResourceCooldown))
}

// Reset drops both cooldowns for a key (admin/testing)
func (l *Ledger) Reset(key Key) {
	l.clicks.Remove(key)
	l.resource.Remove(key)
}

// Len returns the number of tracked click and resource entries
func (l *Ledger) Len() (clicks, resource int) {
	return l.clicks.Len(), l.resource.Len()
}
