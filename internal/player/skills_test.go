package player

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GatherNode_Go/internal/domain"
)

func TestXPForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  float64
	}{
		{0, 0},
		{1, 0},
		{2, 80},
		{3, 80 + math.Floor(BaseXP*math.Pow(2, LevelExponent))},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, XPForLevel(tt.level), 0.0001, "level %d", tt.level)
	}

	assert.Equal(t, XPForLevel(MaxLevel), XPForLevel(MaxLevel+5), "capped at MaxLevel")
}

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, StartingLevel, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(79.9))
	assert.Equal(t, 2, LevelForXP(80))

	for level := StartingLevel; level <= MaxLevel; level += 7 {
		assert.Equal(t, level, LevelForXP(XPForLevel(level)), "round trip at %d", level)
	}
	assert.Equal(t, MaxLevel, LevelForXP(math.MaxFloat64))
}

func TestSkills_GrantExperience(t *testing.T) {
	ctx := context.Background()
	s := NewSkills()
	assert.Equal(t, 1, s.Level(ctx, "alice", "mining"))

	leveled, err := s.GrantExperience(ctx, "alice", "mining", 17.5)
	require.NoError(t, err)
	assert.False(t, leveled)

	for i := 0; i < 3; i++ {
		_, err = s.GrantExperience(ctx, "alice", "mining", 17.5)
		require.NoError(t, err)
	}
	leveled, err = s.GrantExperience(ctx, "alice", "mining", 17.5)
	require.NoError(t, err)
	assert.True(t, leveled, "87.5 xp crosses level 2")
	assert.Equal(t, 2, s.Level(ctx, "alice", "mining"))
	assert.Equal(t, 1, s.Level(ctx, "alice", "fishing"), "skills are independent")

	_, err = s.GrantExperience(ctx, "alice", "mining", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSkills_SetLevel(t *testing.T) {
	ctx := context.Background()
	s := NewSkills()

	require.NoError(t, s.SetLevel("alice", "woodcutting", 41))
	assert.Equal(t, 41, s.Level(ctx, "alice", "woodcutting"))

	assert.ErrorIs(t, s.SetLevel("alice", "woodcutting", 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, s.SetLevel("alice", "woodcutting", MaxLevel+1), domain.ErrInvalidInput)
}
