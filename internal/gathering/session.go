package gathering

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/GatherNode_Go/internal/clock"
	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/event"
	"github.com/osse101/GatherNode_Go/internal/gateway"
	"github.com/osse101/GatherNode_Go/internal/logger"
	"github.com/osse101/GatherNode_Go/internal/tools"
)

// session is one player's live gathering action. All fields are guarded by Engine.mu.
type session struct {
	id       string
	owner    string
	key      domain.NodeKey
	res      domain.ResourceDefinition
	family   domain.FamilyDescriptor
	tool     domain.ToolDefinition
	state    domain.SessionState
	started  time.Time
	duration time.Duration
	cycle    int

	// timer is the only handle to the pending completion; timerSeq tags the fire it expects
	timer    clock.Timer
	timerSeq uint64

	approvalSeq uint64
}

func (s *session) snapshot() domain.SessionSnapshot {
	return domain.SessionSnapshot{
		ID:           s.id,
		OwnerID:      s.owner,
		Key:          s.key,
		ResourceType: s.res.ID,
		Family:       s.res.Family,
		ToolID:       s.tool.ID,
		State:        s.state,
		StartedAt:    s.started,
		Duration:     s.duration,
		Cycle:        s.cycle,
	}
}

func (s *session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerSeq = 0
}

// begin opens a PendingApproval session and submits it. Caller holds e.mu.
func (e *Engine) begin(ctx context.Context, owner string, res domain.ResourceDefinition, fam domain.FamilyDescriptor,
	tool domain.ToolDefinition, key domain.NodeKey, fx *effects) (Outcome, error) {
	s := &session{
		id:     uuid.NewString(),
		owner:  owner,
		key:    key,
		res:    res,
		family: fam,
		tool:   tool,
		state:  domain.SessionPendingApproval,
	}
	e.sessions[owner] = s

	seq, dec, decided, err := e.gw.Submit(ctx, gateway.Request{
		OwnerID:      owner,
		ResourceType: res.ID,
		Key:          key,
		ActionKind:   fam.ActionKind,
	})
	if err != nil {
		delete(e.sessions, owner)
		fx.notify(owner, domain.SeverityError, MsgServerUnavailable)
		return OutcomeRejected, fmt.Errorf("%w: %v", domain.ErrApprovalFailed, err)
	}
	s.approvalSeq = seq

	if !decided {
		return OutcomePending, nil
	}

	e.applyDecision(ctx, dec, fx)
	if cur, ok := e.sessions[owner]; ok && cur == s && s.state == domain.SessionActive {
		return OutcomeStarted, nil
	}
	if !dec.Approved {
		return OutcomeRejected, fmt.Errorf("%w: %s", domain.ErrActionDenied, dec.Reason)
	}
	return OutcomeRejected, fmt.Errorf("%w: %s", domain.ErrNodeDepleted, key)
}

// applyDecision moves a PendingApproval session to Active or rolls it back. Caller holds e.mu.
func (e *Engine) applyDecision(ctx context.Context, dec gateway.Decision, fx *effects) {
	s, ok := e.sessions[dec.OwnerID]
	if !ok || s.state != domain.SessionPendingApproval || s.approvalSeq != dec.Seq {
		logger.FromContext(ctx).Debug(LogMsgStaleDecision, "owner", dec.OwnerID, "seq", dec.Seq)
		return
	}

	if !dec.Approved {
		reason := domain.CancelDenied
		if dec.TimedOut {
			reason = domain.CancelApprovalStale
		}
		e.finish(ctx, s, domain.SessionCancelled, reason, fx)

		message := dec.Reason
		switch {
		case message != "":
		case dec.DepletedBy != "":
			message = fmt.Sprintf(MsgNodeDepletedBy, dec.DepletedBy)
		default:
			message = fmt.Sprintf(MsgDeniedDefault, s.family.Verb)
		}
		fx.notify(s.owner, domain.SeverityWarning, message)
		fx.publish(event.NewDeniedEvent(domain.DeniedPayload{
			OwnerID:      s.owner,
			Key:          s.key,
			ResourceType: s.res.ID,
			Reason:       message,
			DepletedBy:   dec.DepletedBy,
		}))
		return
	}

	// a broadcast may have exhausted the node while the request was in flight
	if rec, depleted := e.registry.Record(s.key); depleted {
		e.finish(ctx, s, domain.SessionCancelled, domain.CancelNodeDepleted, fx)
		fx.notify(s.owner, domain.SeverityWarning, e.depletedMessage(s.owner, rec))
		return
	}

	e.activate(ctx, s, fx)
}

// activate starts (or restarts) the harvest timer. Caller holds e.mu.
func (e *Engine) activate(ctx context.Context, s *session, fx *effects) {
	level := e.skills.Level(ctx, s.owner, s.family.Skill)
	first := s.state == domain.SessionPendingApproval

	s.state = domain.SessionActive
	s.started = e.clock.Now()
	s.duration = tools.ActionDuration(s.res, s.tool, level, s.family)
	s.cycle++

	e.timerSeq++
	owner, id, seq := s.owner, s.id, e.timerSeq
	s.timerSeq = seq
	s.timer = e.clock.AfterFunc(s.duration, func() { e.onTimer(owner, id, seq) })

	if first {
		fx.publish(event.NewSkillBubbleEvent(s.owner, s.family.Bubble, true))
		logger.FromContext(ctx).Info(LogMsgSessionStarted,
			"owner", s.owner, "resource", s.res.ID, "node", s.key.String(), "tool", s.tool.ID, "duration", s.duration)
	}
	fx.publish(event.NewSessionEvent(event.SessionStarted, domain.SessionPayload{Session: s.snapshot()}))
}

// onTimer is the harvest timer callback. Fires for sessions that were
// cancelled, replaced or restarted since scheduling are ignored.
func (e *Engine) onTimer(owner, id string, seq uint64) {
	ctx := logger.WithOwner(context.Background(), owner)

	e.mu.Lock()
	s, ok := e.sessions[owner]
	if !ok || s.id != id || s.timerSeq != seq || s.state != domain.SessionActive {
		e.mu.Unlock()
		logger.FromContext(ctx).Debug(LogMsgStaleTimer, "session", id, "seq", seq)
		return
	}
	fx := &effects{}
	s.timer = nil
	s.timerSeq = 0
	e.complete(ctx, s, fx)
	e.mu.Unlock()

	e.flush(ctx, fx)
}

// cancel interrupts a session. Caller holds e.mu.
func (e *Engine) cancel(ctx context.Context, s *session, reason domain.CancelReason, fx *effects) {
	e.finish(ctx, s, domain.SessionCancelled, reason, fx)
}

// finish removes s and releases everything it holds. Caller holds e.mu.
//
// Interrupted sessions publish session.cancelled; a streak that ends after a
// completed harvest does not, since its completion was already published.
func (e *Engine) finish(ctx context.Context, s *session, final domain.SessionState, reason domain.CancelReason, fx *effects) {
	prev := s.state
	s.stopTimer()
	if prev == domain.SessionPendingApproval {
		e.gw.Cancel(s.owner)
	}
	if cur, ok := e.sessions[s.owner]; ok && cur == s {
		delete(e.sessions, s.owner)
	}
	s.state = final

	if prev == domain.SessionActive || prev == domain.SessionCompleted {
		fx.publish(event.NewSkillBubbleEvent(s.owner, s.family.Bubble, false))
	}

	log := logger.FromContext(ctx)
	if prev == domain.SessionCompleted {
		log.Info(LogMsgStreakEnded, "owner", s.owner, "resource", s.res.ID, "node", s.key.String(), "cycles", s.cycle, "reason", reason)
		return
	}
	log.Info(LogMsgSessionCancelled, "owner", s.owner, "resource", s.res.ID, "node", s.key.String(), "reason", reason)
	fx.publish(event.NewSessionEvent(event.SessionCancelled, domain.SessionPayload{Session: s.snapshot(), Reason: reason}))
}
