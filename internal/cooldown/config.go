package cooldown

import "time"

// Config holds cooldown ledger configuration
type Config struct {
	// DevMode bypasses the resource cooldown when true. The click cooldown still applies.
	DevMode bool

	// ClickCooldown is the minimum gap between two clicks by one player on one node
	ClickCooldown time.Duration

	// ResourceCooldown is the minimum gap between a harvest and the next one on the same node
	ResourceCooldown time.Duration

	// TableSize caps the number of tracked entries per table
	TableSize int
}

// DefaultConfig returns the standard click and resource cooldowns
func DefaultConfig() Config {
	return Config{
		ClickCooldown:    DefaultClickCooldown,
		ResourceCooldown: DefaultResourceCooldown,
		TableSize:        DefaultTableSize,
	}
}

func (c Config) withDefaults() Config {
	if c.ClickCooldown <= 0 {
		c.ClickCooldown = DefaultClickCooldown
	}
	if c.ResourceCooldown <= 0 {
		c.ResourceCooldown = DefaultResourceCooldown
	}
	if c.TableSize <= 0 {
		c.TableSize = DefaultTableSize
	}
	return c
}
