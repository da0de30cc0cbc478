package gathering_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GatherNode_Go/internal/catalog"
	"github.com/osse101/GatherNode_Go/internal/clock"
	"github.com/osse101/GatherNode_Go/internal/cooldown"
	"github.com/osse101/GatherNode_Go/internal/depletion"
	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/event"
	"github.com/osse101/GatherNode_Go/internal/gateway"
	"github.com/osse101/GatherNode_Go/internal/gathering"
	"github.com/osse101/GatherNode_Go/internal/player"
)

var (
	rock    = domain.NewNodeKey(1, 0)
	tinRock = domain.NewNodeKey(0, 1)
	origin  = domain.NewNodeKey(0, 0)
)

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := gathering.New(gathering.Dependencies{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog")
}

func TestCopperScenario(t *testing.T) {
	h := newHarness(t)
	h.miner("alice", origin)

	outcome, err := h.click("alice", "ore_copper", rock)
	require.NoError(t, err)
	assert.Equal(t, gathering.OutcomeStarted, outcome)

	s, ok := h.engine.Session("alice")
	require.True(t, ok)
	assert.Equal(t, domain.SessionActive, s.State)
	assert.Equal(t, 4000*time.Millisecond, s.Duration)
	assert.Equal(t, "bronze_pickaxe", s.ToolID)
	assert.Equal(t, 1, s.Cycle)

	bubbles := h.rec.ofType(event.SkillBubble)
	require.Len(t, bubbles, 1)
	assert.True(t, bubbles[0].Payload.(domain.SkillBubblePayload).Visible)

	h.clk.Advance(3999 * time.Millisecond)
	assert.Zero(t, h.inventory.Count("alice", "copper_ore"))

	h.clk.Advance(time.Millisecond)
	assert.Equal(t, 1, h.inventory.Count("alice", "copper_ore"))
	assert.InDelta(t, 17.5, h.skills.Experience("alice", "mining"), 0.0001)
	assert.Contains(t, h.rec.messages("alice"), "You get some Copper Ore.")

	completed := h.rec.ofType(event.SessionCompleted)
	require.Len(t, completed, 1)
	payload := completed[0].Payload.(domain.SessionPayload)
	assert.Equal(t, "copper_ore", payload.ItemID)
	assert.Equal(t, 1, payload.Amount)
	assert.InDelta(t, 17.5, payload.XP, 0.0001)

	// the next cycle starts without another click or approval
	s, ok = h.engine.Session("alice")
	require.True(t, ok)
	assert.Equal(t, domain.SessionActive, s.State)
	assert.Equal(t, 2, s.Cycle)
	assert.Len(t, h.rec.ofType(event.SkillBubble), 1, "bubble stays up between cycles")
	assert.Len(t, h.rec.ofType(event.SessionStarted), 2)

	h.clk.Advance(4000 * time.Millisecond)
	assert.Equal(t, 2, h.inventory.Count("alice", "copper_ore"))
	assert.Equal(t, 2, h.registry.Successes(rock))
}

func TestMoveScenario(t *testing.T) {
	t.Run("walks over and starts on arrival", func(t *testing.T) {
		h := newHarness(t)
		h.miner("alice", origin)
		far := domain.NewNodeKey(3, 0)

		outcome, err := h.click("alice", "ore_copper", far)
		require.NoError(t, err)
		assert.Equal(t, gathering.OutcomeMoving, outcome)

		target, ok := h.engine.PendingTarget("alice")
		require.True(t, ok)
		assert.Equal(t, far, target.Key)
		_, active := h.engine.Session("alice")
		assert.False(t, active)

		h.clk.Advance(2 * player.DefaultStepDelay)

		pos, err := h.avatars.Position(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, domain.NewNodeKey(2, 0), pos)

		s, ok := h.engine.Session("alice")
		require.True(t, ok)
		assert.Equal(t, domain.SessionActive, s.State)
		assert.Equal(t, far, s.Key)
		_, ok = h.engine.PendingTarget("alice")
		assert.False(t, ok)
	})

	t.Run("node depleted while walking is rejected", func(t *testing.T) {
		h := newHarness(t)
		h.miner("alice", origin)
		far := domain.NewNodeKey(3, 0)

		_, err := h.click("alice", "ore_copper", far)
		require.NoError(t, err)

		err = h.engine.HandleServerMessage(context.Background(), domain.NewDepletedBroadcast(domain.DepletionRecord{
			Key: far, ResourceType: "ore_copper", DepletedBy: "bob",
		}))
		require.NoError(t, err)

		outcome, err := h.engine.HandleMovementCompleted(context.Background(), "alice")
		assert.Equal(t, gathering.OutcomeRejected, outcome)
		assert.ErrorIs(t, err, domain.ErrNodeDepleted)
		assert.Contains(t, h.rec.messages("alice"), "bob got here first. There is nothing left to gather right now.")

		// the avatar still arrives, but nothing is waiting for it
		h.clk.Advance(2 * player.DefaultStepDelay)
		_, ok := h.engine.Session("alice")
		assert.False(t, ok)
	})

	t.Run("arrival out of reach is rejected", func(t *testing.T) {
		h := newHarness(t)
		h.miner("alice", origin)
		far := domain.NewNodeKey(3, 0)

		_, err := h.click("alice", "ore_copper", far)
		require.NoError(t, err)

		outcome, err := h.engine.HandleMovementCompleted(context.Background(), "alice")
		assert.Equal(t, gathering.OutcomeRejected, outcome)
		assert.ErrorIs(t, err, domain.ErrOutOfRange)
		assert.Contains(t, h.rec.messages("alice"), gathering.MsgCannotReach)
	})

	t.Run("walking elsewhere abandons the target", func(t *testing.T) {
		h := newHarness(t)
		h.miner("alice", origin)

		_, err := h.click("alice", "ore_copper", domain.NewNodeKey(3, 0))
		require.NoError(t, err)
		require.NoError(t, h.avatars.WalkTo(context.Background(), "alice", domain.NewNodeKey(-3, 0)))

		_, ok := h.engine.PendingTarget("alice")
		assert.False(t, ok)

		h.clk.Advance(10 * player.DefaultStepDelay)
		_, ok = h.engine.Session("alice")
		assert.False(t, ok)
		assert.Zero(t, h.clk.Pending())
	})
}

func TestClick_Preconditions(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(h *harness)
		resource string
		wantErr  error
		wantMsg  string
	}{
		{
			name:     "no tool",
			setup:    func(h *harness) { h.avatars.Place("alice", origin) },
			resource: "ore_copper",
			wantErr:  domain.ErrToolRequired,
			wantMsg:  "You need a pickaxe to mine this rock.",
		},
		{
			name: "noted tool does not count",
			setup: func(h *harness) {
				h.avatars.Place("alice", origin)
				require.NoError(h.t, h.inventory.AddNoted(context.Background(), "alice", "bronze_pickaxe", 1))
			},
			resource: "ore_copper",
			wantErr:  domain.ErrToolRequired,
			wantMsg:  "You need a pickaxe to mine this rock.",
		},
		{
			name:     "level too low",
			setup:    func(h *harness) { h.miner("alice", origin) },
			resource: "ore_iron",
			wantErr:  domain.ErrLevelTooLow,
			wantMsg:  "You need a mining level of 15 to mine this rock.",
		},
		{
			name: "fishing spot needs its exact tool",
			setup: func(h *harness) {
				h.avatars.Place("alice", origin)
				require.NoError(h.t, h.skills.SetLevel("alice", "fishing", 10))
				require.NoError(h.t, h.inventory.AddItem(context.Background(), "alice", "fishing_rod", 1))
			},
			resource: "spot_net",
			wantErr:  domain.ErrToolRequired,
			wantMsg:  "You need a small fishing net to fish here.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			tt.setup(h)

			outcome, err := h.click("alice", tt.resource, rock)
			assert.Equal(t, gathering.OutcomeRejected, outcome)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, domain.IsPreconditionFailure(err))
			assert.Contains(t, h.rec.messages("alice"), tt.wantMsg)

			_, ok := h.engine.Session("alice")
			assert.False(t, ok)
			assert.Zero(t, h.clk.Pending())
		})
	}
}

func TestClick_UnknownResource(t *testing.T) {
	h := newHarness(t)
	h.miner("alice", origin)

	_, err := h.click("alice", "ore_coper", rock)
	assert.ErrorIs(t, err, domain.ErrUnknownResource)
}

func TestClick_Cooldowns(t *testing.T) {
	t.Run("rapid clicks on one node are ignored", func(t *testing.T) {
		h := newHarness(t)
		h.miner("alice", origin)

		outcome, err := h.click("alice", "ore_copper", rock)
		require.NoError(t, err)
		require.Equal(t, gathering.OutcomeStarted, outcome)
		first, _ := h.engine.Session("alice")

		outcome, err = h.click("alice", "ore_copper", rock)
		require.NoError(t, err)
		assert.Equal(t, gathering.OutcomeIgnored, outcome)

		h.clk.Advance(cooldown.DefaultClickCooldown)
		outcome, err = h.click("alice", "ore_copper", rock)
		require.NoError(t, err)
		assert.Equal(t, gathering.OutcomeAlreadyActive, outcome)

		again, _ := h.engine.Session("alice")
		assert.Equal(t, first.ID, again.ID)
	})

	t.Run("resource cooldown after a harvest", func(t *testing.T) {
		h := newHarness(t)
		h.miner("alice", origin)

		_, err := h.click("alice", "ore_copper", rock)
		require.NoError(t, err)
		h.clk.Advance(4000 * time.Millisecond)
		require.True(t, h.engine.Cancel(context.Background(), "alice"))

		h.clk.Advance(500 * time.Millisecond)
		outcome, err := h.click("alice", "ore_copper", rock)
		assert.Equal(t, gathering.OutcomeRejected, outcome)
		assert.ErrorIs(t, err, domain.ErrOnCooldown)
		var cd cooldown.ErrOnCooldown
		require.True(t, errors.As(err, &cd))
		assert.Equal(t, 500*time.Millisecond, cd.Remaining)
		assert.Contains(t, h.rec.messages("alice"), "You must wait 1 seconds before you can mine again")

		h.clk.Advance(cooldown.DefaultClickCooldown)
		outcome, err = h.click("alice", "ore_copper", rock)
		require.NoError(t, err)
		assert.Equal(t, gathering.OutcomeStarted, outcome)
	})
}

func TestClick_NewActionReplacesSession(t *testing.T) {
	h := newHarness(t)
	h.miner("alice", origin)

	_, err := h.click("alice", "ore_copper", rock)
	require.NoError(t, err)
	first, _ := h.engine.Session("alice")

	outcome, err := h.click("alice", "ore_tin", tinRock)
	require.NoError(t, err)
	assert.Equal(t, gathering.OutcomeStarted, outcome)

	s, ok := h.engine.Session("alice")
	require.True(t, ok)
	assert.Equal(t, tinRock, s.Key)
	assert.NotEqual(t, first.ID, s.ID)

	cancelled := h.rec.ofType(event.SessionCancelled)
	require.Len(t, cancelled, 1)
	assert.Equal(t, domain.CancelNewAction, cancelled[0].Payload.(domain.SessionPayload).Reason)
	assert.Equal(t, 1, h.clk.Pending(), "the replaced session's timer is gone")

	// the old timer never pays out
	h.clk.Advance(4000 * time.Millisecond)
	assert.Zero(t, h.inventory.Count("alice", "copper_ore"))
	assert.Equal(t, 1, h.inventory.Count("alice", "tin_ore"))
}

func TestCancel_LeavesNoTimers(t *testing.T) {
	h := newHarness(t)
	h.miner("alice", origin)

	_, err := h.click("alice", "ore_copper", rock)
	require.NoError(t, err)
	require.Equal(t, 1, h.clk.Pending())

	assert.True(t, h.engine.Cancel(context.Background(), "alice"))
	assert.Zero(t, h.clk.Pending())
	assert.False(t, h.engine.Cancel(context.Background(), "alice"))

	h.clk.Advance(time.Hour)
	assert.Zero(t, h.inventory.Count("alice", "copper_ore"))

	bubbles := h.rec.ofType(event.SkillBubble)
	require.Len(t, bubbles, 2)
	assert.False(t, bubbles[1].Payload.(domain.SkillBubblePayload).Visible)
}

func TestPlayerMovedAway(t *testing.T) {
	h := newHarness(t)
	h.miner("alice", origin)

	_, err := h.click("alice", "ore_copper", rock)
	require.NoError(t, err)
	require.NoError(t, h.avatars.WalkTo(context.Background(), "alice", domain.NewNodeKey(5, 5)))

	// (1,1) is still next to the rock
	h.clk.Advance(player.DefaultStepDelay)
	_, ok := h.engine.Session("alice")
	assert.True(t, ok)

	h.clk.Advance(player.DefaultStepDelay)
	_, ok = h.engine.Session("alice")
	assert.False(t, ok)

	cancelled := h.rec.ofType(event.SessionCancelled)
	require.Len(t, cancelled, 1)
	assert.Equal(t, domain.CancelMovedAway, cancelled[0].Payload.(domain.SessionPayload).Reason)

	h.clk.Advance(time.Minute)
	assert.Zero(t, h.inventory.Count("alice", "copper_ore"))
	assert.Zero(t, h.clk.Pending())
}

func TestInventoryFull_EndsStreak(t *testing.T) {
	h := newHarness(t, withCapacity(1), withRoll(0))
	h.miner("alice", origin)

	_, err := h.click("alice", "ore_copper", rock)
	require.NoError(t, err)
	h.clk.Advance(4000 * time.Millisecond)

	assert.Zero(t, h.inventory.Count("alice", "copper_ore"))
	assert.Zero(t, h.skills.Experience("alice", "mining"))
	assert.Zero(t, h.registry.Successes(rock))
	assert.Contains(t, h.rec.messages("alice"), "Your inventory is too full to hold any more Copper Ore.")
	assert.Empty(t, h.rec.ofType(event.SessionCompleted))

	_, ok := h.engine.Session("alice")
	assert.False(t, ok)
	assert.Zero(t, h.clk.Pending())
}

func TestLevelUp(t *testing.T) {
	h := newHarness(t)
	h.miner("alice", origin)
	_, err := h.skills.GrantExperience(context.Background(), "alice", "mining", 70)
	require.NoError(t, err)

	_, err = h.click("alice", "ore_copper", rock)
	require.NoError(t, err)
	h.clk.Advance(4000 * time.Millisecond)

	levelUps := h.rec.ofType(event.LevelUp)
	require.Len(t, levelUps, 1)
	assert.Equal(t, 2, levelUps[0].Payload.(domain.LevelUpPayload).NewLevel)
	assert.Contains(t, h.rec.messages("alice"),
		"Congratulations, you just advanced a mining level. Your mining level is now 2.")
}

func TestDepletion_GatingAndRespawn(t *testing.T) {
	h := newHarness(t, withRoll(0))
	h.miner("alice", origin)

	_, err := h.click("alice", "ore_copper", rock)
	require.NoError(t, err)

	// ore_copper needs three successes before the roll can deplete it
	h.clk.Advance(4000 * time.Millisecond)
	h.clk.Advance(4000 * time.Millisecond)
	assert.False(t, h.registry.IsDepleted(rock))
	assert.Equal(t, 2, h.registry.Successes(rock))

	h.clk.Advance(4000 * time.Millisecond)
	require.True(t, h.registry.IsDepleted(rock))
	assert.Equal(t, 3, h.inventory.Count("alice", "copper_ore"))
	assert.Zero(t, h.registry.Successes(rock))

	rec, _ := h.registry.Record(rock)
	assert.Equal(t, "alice", rec.DepletedBy)
	assert.Equal(t, epoch.Add(12*time.Second+5*time.Second), rec.RespawnAt)

	_, ok := h.engine.Session("alice")
	assert.False(t, ok)
	assert.Empty(t, h.rec.ofType(event.SessionCancelled), "the depleting harvest ends its streak quietly")
	require.Len(t, h.rec.ofType(event.NodeDepleted), 1)
	assert.Equal(t, 1, h.clk.Pending(), "only the respawn timer remains")

	outcome, err := h.click("alice", "ore_copper", rock)
	assert.Equal(t, gathering.OutcomeRejected, outcome)
	assert.ErrorIs(t, err, domain.ErrNodeDepleted)
	assert.Contains(t, h.rec.messages("alice"), gathering.MsgNodeDepleted)

	h.clk.Advance(5 * time.Second)
	assert.False(t, h.registry.IsDepleted(rock))
	require.Len(t, h.rec.ofType(event.NodeRespawned), 1)

	visuals := h.rec.ofType(event.NodeVisual)
	require.Len(t, visuals, 2)
	assert.True(t, visuals[0].Payload.(domain.NodeVisualPayload).Depleted)
	assert.False(t, visuals[1].Payload.(domain.NodeVisualPayload).Depleted)

	outcome, err = h.click("alice", "ore_copper", rock)
	require.NoError(t, err)
	assert.Equal(t, gathering.OutcomeStarted, outcome)
}

func TestDepletion_CancelsOtherPlayers(t *testing.T) {
	h := newHarness(t, withRoll(0))
	h.miner("alice", origin)
	h.miner("bob", domain.NewNodeKey(2, 0))

	_, err := h.click("alice", "ore_copper", rock)
	require.NoError(t, err)
	h.clk.Advance(100 * time.Millisecond)
	_, err = h.click("bob", "ore_copper", rock)
	require.NoError(t, err)

	// alice 4000, bob 4100, alice 8000 depletes
	h.clk.Advance(7900 * time.Millisecond)

	require.True(t, h.registry.IsDepleted(rock))
	_, ok := h.engine.Session("bob")
	assert.False(t, ok)
	assert.Contains(t, h.rec.messages("bob"), "alice got here first. There is nothing left to gather right now.")

	cancelled := h.rec.ofType(event.SessionCancelled)
	require.Len(t, cancelled, 1)
	p := cancelled[0].Payload.(domain.SessionPayload)
	assert.Equal(t, "bob", p.Session.OwnerID)
	assert.Equal(t, domain.CancelNodeDepleted, p.Reason)

	assert.Equal(t, 2, h.inventory.Count("alice", "copper_ore"))
	assert.Equal(t, 1, h.inventory.Count("bob", "copper_ore"))
}

func TestRespawn_Idempotent(t *testing.T) {
	h := newHarness(t)
	key := domain.NewNodeKey(50, 50)
	ctx := context.Background()

	require.NoError(t, h.engine.HandleServerMessage(ctx, domain.NewDepletedBroadcast(domain.DepletionRecord{
		Key: key, ResourceType: "tree_oak", DepletedBy: "carol",
	})))
	assert.True(t, h.registry.IsDepleted(key), "broadcasts apply to nodes nobody here touches")

	rec, _ := h.registry.Record(key)
	assert.Equal(t, epoch.Add(14*time.Second), rec.RespawnAt, "respawn time comes from the catalog")

	for i := 0; i < 2; i++ {
		require.NoError(t, h.engine.HandleServerMessage(ctx, domain.NewRespawnedBroadcast("tree_oak", key)))
	}
	h.engine.Respawn(ctx, key)

	assert.False(t, h.registry.IsDepleted(key))
	assert.Len(t, h.rec.ofType(event.NodeRespawned), 1)
	assert.Len(t, h.rec.ofType(event.NodeVisual), 2)
}

func TestOnline_ApprovalFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("approved", func(t *testing.T) {
		h := newHarness(t, online())
		h.miner("alice", origin)
		assert.Equal(t, domain.ModeOnline, h.engine.Mode())

		outcome, err := h.click("alice", "ore_copper", rock)
		require.NoError(t, err)
		assert.Equal(t, gathering.OutcomePending, outcome)

		reqs := h.transport.ofKind(domain.KindActionRequest)
		require.Len(t, reqs, 1)
		assert.Equal(t, "alice", reqs[0].PlayerID)
		assert.Equal(t, "mine", reqs[0].ActionKind)
		assert.Equal(t, rock, reqs[0].Key())

		s, ok := h.engine.Session("alice")
		require.True(t, ok)
		assert.Equal(t, domain.SessionPendingApproval, s.State)
		assert.Empty(t, h.rec.ofType(event.SkillBubble))

		require.NoError(t, h.engine.HandleServerMessage(ctx, domain.NewActionResponse(reqs[0], true, "", "")))
		s, ok = h.engine.Session("alice")
		require.True(t, ok)
		assert.Equal(t, domain.SessionActive, s.State)
		assert.Len(t, h.rec.ofType(event.SkillBubble), 1)

		h.clk.Advance(4000 * time.Millisecond)
		assert.Equal(t, 1, h.inventory.Count("alice", "copper_ore"))
		assert.Len(t, h.transport.ofKind(domain.KindActionRequest), 1, "continuation needs no approval")
	})

	t.Run("denied", func(t *testing.T) {
		h := newHarness(t, online())
		h.miner("alice", origin)

		_, err := h.click("alice", "ore_copper", rock)
		require.NoError(t, err)
		req := h.transport.ofKind(domain.KindActionRequest)[0]

		require.NoError(t, h.engine.HandleServerMessage(ctx, domain.NewActionResponse(req, false, "", "bob")))

		_, ok := h.engine.Session("alice")
		assert.False(t, ok)
		assert.Contains(t, h.rec.messages("alice"), "bob got here first. There is nothing left to gather right now.")

		denied := h.rec.ofType(event.ActionDenied)
		require.Len(t, denied, 1)
		assert.Equal(t, "bob", denied[0].Payload.(domain.DeniedPayload).DepletedBy)
		assert.Zero(t, h.clk.Pending())
	})

	t.Run("mismatched response is ignored", func(t *testing.T) {
		h := newHarness(t, online())
		h.miner("alice", origin)

		_, err := h.click("alice", "ore_copper", rock)
		require.NoError(t, err)
		req := h.transport.ofKind(domain.KindActionRequest)[0]
		req.X = 9

		require.NoError(t, h.engine.HandleServerMessage(ctx, domain.NewActionResponse(req, true, "", "")))
		s, ok := h.engine.Session("alice")
		require.True(t, ok)
		assert.Equal(t, domain.SessionPendingApproval, s.State)
	})

	t.Run("timeout converts to denial", func(t *testing.T) {
		h := newHarness(t, online())
		h.miner("alice", origin)

		_, err := h.click("alice", "ore_copper", rock)
		require.NoError(t, err)
		req := h.transport.ofKind(domain.KindActionRequest)[0]

		h.clk.Advance(gateway.DefaultApprovalTimeout)

		_, ok := h.engine.Session("alice")
		assert.False(t, ok)
		assert.Contains(t, h.rec.messages("alice"), gateway.ReasonNoResponse)
		cancelled := h.rec.ofType(event.SessionCancelled)
		require.Len(t, cancelled, 1)
		assert.Equal(t, domain.CancelApprovalStale, cancelled[0].Payload.(domain.SessionPayload).Reason)

		// a late approval finds nothing to approve
		require.NoError(t, h.engine.HandleServerMessage(ctx, domain.NewActionResponse(req, true, "", "")))
		_, ok = h.engine.Session("alice")
		assert.False(t, ok)
	})

	t.Run("cancel while pending drops the slot", func(t *testing.T) {
		h := newHarness(t, online())
		h.miner("alice", origin)

		_, err := h.click("alice", "ore_copper", rock)
		require.NoError(t, err)
		req := h.transport.ofKind(domain.KindActionRequest)[0]

		assert.True(t, h.engine.Cancel(ctx, "alice"))
		assert.Zero(t, h.clk.Pending(), "the approval timeout is stopped too")

		require.NoError(t, h.engine.HandleServerMessage(ctx, domain.NewActionResponse(req, true, "", "")))
		_, ok := h.engine.Session("alice")
		assert.False(t, ok)
	})

	t.Run("send failure", func(t *testing.T) {
		h := newHarness(t, online())
		h.miner("alice", origin)
		h.transport.err = domain.ErrNotConnected

		outcome, err := h.click("alice", "ore_copper", rock)
		assert.Equal(t, gathering.OutcomeRejected, outcome)
		assert.ErrorIs(t, err, domain.ErrApprovalFailed)
		assert.Contains(t, h.rec.messages("alice"), gathering.MsgServerUnavailable)

		_, ok := h.engine.Session("alice")
		assert.False(t, ok)
		assert.Zero(t, h.clk.Pending())
	})
}

func TestOnline_DepletionGoesThroughServer(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, online(), withRoll(0))
	h.miner("alice", origin)

	_, err := h.click("alice", "ore_copper", rock)
	require.NoError(t, err)
	req := h.transport.ofKind(domain.KindActionRequest)[0]
	require.NoError(t, h.engine.HandleServerMessage(ctx, domain.NewActionResponse(req, true, "", "")))

	h.clk.Advance(12 * time.Second)

	depl := h.transport.ofKind(domain.KindDepletionRequest)
	require.Len(t, depl, 1)
	assert.Equal(t, "ore_copper", depl[0].ResourceType)
	assert.Equal(t, int64(5000), depl[0].RespawnDelayMs)
	assert.False(t, h.registry.IsDepleted(rock), "the server applies depletion")
	_, ok := h.engine.Session("alice")
	assert.False(t, ok)

	require.NoError(t, h.engine.HandleServerMessage(ctx, domain.NewDepletedBroadcast(domain.DepletionRecord{
		Key: rock, ResourceType: "ore_copper", DepletedBy: "alice",
	})))
	assert.True(t, h.registry.IsDepleted(rock))
	assert.Zero(t, h.clk.Pending(), "online respawns are the server's job")

	require.NoError(t, h.engine.HandleServerMessage(ctx, domain.NewRespawnedBroadcast("ore_copper", rock)))
	assert.False(t, h.registry.IsDepleted(rock))
}

func TestClose(t *testing.T) {
	h := newHarness(t, withRoll(0))
	h.miner("alice", origin)

	_, err := h.click("alice", "tree_normal", rock)
	require.ErrorIs(t, err, domain.ErrToolRequired)
	require.NoError(t, h.inventory.AddItem(context.Background(), "alice", "bronze_axe", 1))
	h.clk.Advance(cooldown.DefaultClickCooldown)
	_, err = h.click("alice", "tree_normal", rock)
	require.NoError(t, err)

	// tree_normal falls after one log, leaving a respawn timer behind
	h.clk.Advance(3600 * time.Millisecond)
	require.True(t, h.registry.IsDepleted(rock))
	_, err = h.click("alice", "ore_copper", tinRock)
	require.NoError(t, err)
	require.Equal(t, 2, h.clk.Pending())

	h.engine.Close(context.Background())
	assert.Zero(t, h.clk.Pending())
	assert.Empty(t, h.engine.Sessions())

	cancelled := h.rec.ofType(event.SessionCancelled)
	require.NotEmpty(t, cancelled)
	assert.Equal(t, domain.CancelShutdown, cancelled[len(cancelled)-1].Payload.(domain.SessionPayload).Reason)

	_, err = h.click("alice", "ore_copper", tinRock)
	assert.ErrorIs(t, err, gathering.ErrEngineClosed)
}

func TestRollDrop_Weighted(t *testing.T) {
	cat := catalog.MustLoad()

	tests := []struct {
		intn int
		want string
	}{
		{0, "raw_shrimps"},
		{2, "raw_shrimps"},
		{3, "raw_anchovies"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			clk := clock.NewFake(epoch)
			ledger, err := cooldown.NewLedger(cooldown.DefaultConfig())
			require.NoError(t, err)
			inv := player.NewInventory(0)
			skills := player.NewSkills()
			avatars := player.NewAvatars(clk, 0)
			avatars.Place("alice", origin)
			require.NoError(t, inv.AddItem(context.Background(), "alice", "small_fishing_net", 1))

			e, err := gathering.New(gathering.Dependencies{
				Catalog: cat, Cooldowns: ledger, Registry: depletion.NewRegistry(), Gateway: gateway.NewStandalone(),
				Inventory: inv, Skills: skills, Movement: avatars, Positions: avatars,
				Bus: event.NewMemoryBus(), Clock: clk, Rand: &fixedRoller{float: 0.99, intn: tt.intn},
			})
			require.NoError(t, err)
			avatars.SetListener(e)

			_, err = e.HandleClick(context.Background(), "alice", "spot_net", rock)
			require.NoError(t, err)
			clk.Advance(4800 * time.Millisecond)
			e.Close(context.Background())

			assert.Equal(t, 1, inv.Count("alice", tt.want))
		})
	}
}
