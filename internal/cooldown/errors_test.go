package cooldown_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/GatherNode_Go/internal/cooldown"
)

// TestErrOnCooldown_Error tests the error message formatting
func TestErrOnCooldown_Error(t *testing.T) {
	tests := []struct {
		name string
		err  cooldown.ErrOnCooldown
		want string
	}{
		{
			name: "minutes and seconds",
			err:  cooldown.ErrOnCooldown{Action: "mine", Remaining: 2*time.Minute + 30*time.Second},
			want: fmt.Sprintf(cooldown.ErrFmtCooldownWithMinutes, "mine", 2, 30),
		},
		{
			name: "seconds only",
			err:  cooldown.ErrOnCooldown{Action: "chop", Remaining: 45 * time.Second},
			want: fmt.Sprintf(cooldown.ErrFmtCooldownSecondsOnly, 45, "chop"),
		},
		{
			name: "sub-second rounds up",
			err:  cooldown.ErrOnCooldown{Action: "mine", Remaining: 300 * time.Millisecond},
			want: fmt.Sprintf(cooldown.ErrFmtCooldownSecondsOnly, 1, "mine"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

// TestErrOnCooldown_Is tests the errors.Is() compatibility
func TestErrOnCooldown_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", cooldown.ErrOnCooldown{Action: "test", Remaining: time.Minute})

	assert.True(t, errors.Is(err, cooldown.ErrOnCooldown{}))
	assert.False(t, errors.Is(errors.New("other error"), cooldown.ErrOnCooldown{}))

	var target cooldown.ErrOnCooldown
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, time.Minute, target.Remaining)
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, 0, cooldown.Seconds(0))
	assert.Equal(t, 0, cooldown.Seconds(-time.Second))
	assert.Equal(t, 1, cooldown.Seconds(time.Nanosecond))
	assert.Equal(t, 1, cooldown.Seconds(time.Second))
	assert.Equal(t, 2, cooldown.Seconds(1001*time.Millisecond))
}
