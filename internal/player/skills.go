package player

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/logger"
)

// Skills tracks experience per player and skill
type Skills struct {
	mu sync.RWMutex
	xp map[string]map[string]float64
}

// NewSkills creates an empty skill table; every skill starts at StartingLevel
func NewSkills() *Skills {
	return &Skills{xp: make(map[string]map[string]float64)}
}

// XPForLevel returns the total experience needed to reach level
func XPForLevel(level int) float64 {
	if level <= StartingLevel {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}

	cumulative := 0.0
	for l := StartingLevel; l < level; l++ {
		cumulative += math.Floor(BaseXP * math.Pow(float64(l), LevelExponent))
	}
	return cumulative
}

// LevelForXP returns the level reached with totalXP, capped at MaxLevel
func LevelForXP(totalXP float64) int {
	level := StartingLevel
	cumulative := 0.0
	for level < MaxLevel {
		next := math.Floor(BaseXP * math.Pow(float64(level), LevelExponent))
		if cumulative+next > totalXP {
			return level
		}
		cumulative += next
		level++
	}
	return MaxLevel
}

// GrantExperience adds amount to the owner's skill and reports whether the level went up
func (s *Skills) GrantExperience(ctx context.Context, owner, skill string, amount float64) (bool, error) {
	if amount < 0 {
		return false, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNegativeXP)
	}

	s.mu.Lock()
	table, ok := s.xp[owner]
	if !ok {
		table = make(map[string]float64)
		s.xp[owner] = table
	}
	before := LevelForXP(table[skill])
	table[skill] += amount
	after := LevelForXP(table[skill])
	total := table[skill]
	s.mu.Unlock()

	log := logger.FromContext(ctx)
	log.Debug(LogMsgExperienceAdded, "owner", owner, "skill", skill, "amount", amount, "total", total)
	if after > before {
		log.Info(LogMsgLevelUp, "owner", owner, "skill", skill, "level", after)
		return true, nil
	}
	return false, nil
}

// Level returns the owner's level in skill
func (s *Skills) Level(_ context.Context, owner, skill string) int {
	return LevelForXP(s.Experience(owner, skill))
}

// Experience returns the owner's total experience in skill
func (s *Skills) Experience(owner, skill string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.xp[owner][skill]
}

// SetLevel sets the owner's experience to the minimum for level
func (s *Skills) SetLevel(owner, skill string, level int) error {
	if level < StartingLevel || level > MaxLevel {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidLevel)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	table, ok := s.xp[owner]
	if !ok {
		table = make(map[string]float64)
		s.xp[owner] = table
	}
	table[skill] = XPForLevel(level)
	return nil
}
