// Package authority is the server side of the gathering protocol. It owns the
// shared depletion state: it approves or denies actions, applies depletion
// requests, schedules respawns and broadcasts both to every observer.
package authority

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/GatherNode_Go/internal/catalog"
	"github.com/osse101/GatherNode_Go/internal/clock"
	"github.com/osse101/GatherNode_Go/internal/concurrency"
	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/event"
	"github.com/osse101/GatherNode_Go/internal/logger"
	"github.com/osse101/GatherNode_Go/internal/metrics"
	"github.com/osse101/GatherNode_Go/internal/repository"
	"github.com/osse101/GatherNode_Go/internal/worker"
)

// Service defines the authoritative depletion logic
type Service interface {
	// HandleMessage processes one inbound envelope and returns the direct reply, if any.
	// Depletion outcomes reach clients through the bus broadcasts instead.
	HandleMessage(ctx context.Context, msg domain.Message) (*domain.Message, error)
	// CheckAction answers a resource-action-request
	CheckAction(ctx context.Context, req domain.Message) (domain.Message, error)
	// Deplete applies a resource-depletion-request. The first depletor wins;
	// applied is false when the node was already depleted.
	Deplete(ctx context.Context, req domain.Message) (rec domain.DepletionRecord, applied bool, err error)
	// ForceRespawn restores a node immediately
	ForceRespawn(ctx context.Context, key domain.NodeKey) (domain.DepletionRecord, error)
	// ExpireDepletion restores a node when its record still matches depletedAt
	ExpireDepletion(ctx context.Context, key domain.NodeKey, depletedAt time.Time) error
	// DepletedNodes lists every active depletion
	DepletedNodes(ctx context.Context) ([]domain.DepletionRecord, error)
	// Restore reloads persisted records and re-arms their respawn timers
	Restore(ctx context.Context) (int, error)
	// Sweep respawns every record whose respawn time has passed
	Sweep(ctx context.Context) (int, error)
	// SweepJob wraps Sweep for the worker pool scheduler
	SweepJob() worker.Job
	PendingRespawns() int
	Shutdown(ctx context.Context) error
}

type service struct {
	repo     repository.Depletion
	catalog  *catalog.Catalog
	bus      event.Bus
	clock    clock.Clock
	locks    *concurrency.LockManager[domain.NodeKey]
	respawns *worker.RespawnWorker
}

// NewService creates a new authority service. cat may be nil, in which case
// client-requested respawn delays are used as sent.
func NewService(repo repository.Depletion, cat *catalog.Catalog, bus event.Bus, clk clock.Clock) Service {
	s := &service{
		repo:    repo,
		catalog: cat,
		bus:     bus,
		clock:   clk,
		locks:   concurrency.NewLockManager[domain.NodeKey](),
	}
	s.respawns = worker.NewRespawnWorker(clk, s)
	return s
}

func validateRequest(msg domain.Message) error {
	if msg.PlayerID == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingPlayer)
	}
	if msg.ResourceType == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingResource)
	}
	return nil
}

// HandleMessage routes an inbound envelope
func (s *service) HandleMessage(ctx context.Context, msg domain.Message) (*domain.Message, error) {
	switch msg.Kind {
	case domain.KindActionRequest:
		resp, err := s.CheckAction(ctx, msg)
		if err != nil && !errors.Is(err, domain.ErrDatabaseError) {
			return nil, err
		}
		return &resp, nil
	case domain.KindDepletionRequest:
		_, _, err := s.Deplete(ctx, msg)
		return nil, err
	default:
		logger.FromContext(ctx).Debug(LogMsgUnexpectedMessage, "kind", msg.Kind)
		return nil, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ErrMsgUnsupportedKind, msg.Kind)
	}
}

// CheckAction approves the request unless the node is depleted. A record whose
// respawn time already passed is expired on the spot. Storage failures are
// answered with a denial so the client never waits on a timeout.
func (s *service) CheckAction(ctx context.Context, req domain.Message) (domain.Message, error) {
	if err := validateRequest(req); err != nil {
		return domain.Message{}, err
	}
	log := logger.FromContext(ctx)
	key := req.Key()

	var (
		rec     domain.DepletionRecord
		err     error
		expired bool
	)
	s.locks.WithLock(key, func() {
		rec, err = s.repo.GetDepletion(ctx, key)
		if err != nil || !rec.RespawnDue(s.clock.Now()) {
			return
		}
		expired, err = s.repo.DeleteDepletion(ctx, key, rec.DepletedAt)
		if err == nil && expired {
			s.respawned(ctx, rec)
		}
	})

	var resp domain.Message
	switch {
	case errors.Is(err, domain.ErrNotDepleted), err == nil && expired:
		resp = domain.NewActionResponse(req, true, "", "")
	case err != nil:
		metrics.ApprovalDecisions.WithLabelValues(metrics.ResultFailed).Inc()
		return domain.NewActionResponse(req, false, ReasonUnavailable, ""), err
	default:
		reason := ""
		if rec.DepletedBy == "" {
			reason = ReasonDepleted
		}
		resp = domain.NewActionResponse(req, false, reason, rec.DepletedBy)
	}

	result := metrics.ResultApproved
	if !resp.Approved {
		result = metrics.ResultDenied
	}
	metrics.ApprovalDecisions.WithLabelValues(result).Inc()
	log.Debug(LogMsgActionChecked,
		"player", req.PlayerID,
		"node", key.String(),
		"resource", req.ResourceType,
		"approved", resp.Approved)
	return resp, nil
}

// respawnDelay resolves the delay for a depletion request
func (s *service) respawnDelay(ctx context.Context, req domain.Message) time.Duration {
	requested := req.RespawnDelay()
	if s.catalog != nil {
		if res, err := s.catalog.Resource(req.ResourceType); err == nil {
			if requested != res.RespawnDelay {
				logger.FromContext(ctx).Debug(LogMsgRespawnDelayClamped,
					"resource", req.ResourceType,
					"requested", requested,
					"catalog", res.RespawnDelay)
			}
			return res.RespawnDelay
		}
	}
	return min(max(requested, 0), MaxRespawnDelay)
}

// Deplete records the node as exhausted unless another player got there first
func (s *service) Deplete(ctx context.Context, req domain.Message) (domain.DepletionRecord, bool, error) {
	if err := validateRequest(req); err != nil {
		return domain.DepletionRecord{}, false, err
	}
	log := logger.FromContext(ctx)
	key := req.Key()

	now := s.clock.Now()
	rec := domain.DepletionRecord{
		Key:          key,
		ResourceType: req.ResourceType,
		DepletedAt:   now,
		DepletedBy:   req.PlayerID,
	}
	if delay := s.respawnDelay(ctx, req); delay > 0 {
		rec.RespawnAt = now.Add(delay)
	}

	var (
		applied bool
		err     error
	)
	s.locks.WithLock(key, func() {
		applied, err = s.repo.SaveDepletion(ctx, rec)
		if err != nil || !applied {
			return
		}
		s.respawns.Schedule(rec)
		metrics.DepletedNodes.Inc()
		s.publish(ctx, event.NewNodeEvent(event.NodeDepleted, rec, now))
	})
	if err != nil {
		metrics.DepletionRequests.WithLabelValues(metrics.ResultFailed).Inc()
		return domain.DepletionRecord{}, false, err
	}

	if !applied {
		metrics.DepletionRequests.WithLabelValues(metrics.ResultConflict).Inc()
		log.Debug(LogMsgDepletionConflict, "player", req.PlayerID, "node", key.String())
		existing, getErr := s.repo.GetDepletion(ctx, key)
		if getErr != nil {
			return domain.DepletionRecord{}, false, nil
		}
		return existing, false, nil
	}

	metrics.DepletionRequests.WithLabelValues(metrics.ResultApplied).Inc()
	log.Info(LogMsgNodeDepleted,
		"player", req.PlayerID,
		"node", key.String(),
		"resource", req.ResourceType,
		"respawn_at", rec.RespawnAt)
	return rec, true, nil
}

// ForceRespawn removes the node's record regardless of its respawn time
func (s *service) ForceRespawn(ctx context.Context, key domain.NodeKey) (domain.DepletionRecord, error) {
	var (
		rec     domain.DepletionRecord
		deleted bool
		err     error
	)
	s.locks.WithLock(key, func() {
		rec, err = s.repo.GetDepletion(ctx, key)
		if err != nil {
			return
		}
		deleted, err = s.repo.DeleteDepletion(ctx, key, rec.DepletedAt)
		if err == nil && deleted {
			s.respawned(ctx, rec)
		}
	})
	if err != nil {
		return domain.DepletionRecord{}, err
	}
	if !deleted {
		return domain.DepletionRecord{}, domain.ErrNotDepleted
	}
	return rec, nil
}

// ExpireDepletion is called by the respawn worker when a timer fires
func (s *service) ExpireDepletion(ctx context.Context, key domain.NodeKey, depletedAt time.Time) error {
	var (
		rec     domain.DepletionRecord
		deleted bool
		err     error
	)
	s.locks.WithLock(key, func() {
		rec, err = s.repo.GetDepletion(ctx, key)
		if err != nil {
			return
		}
		deleted, err = s.repo.DeleteDepletion(ctx, key, depletedAt)
		if err == nil && deleted {
			s.respawned(ctx, rec)
		}
	})
	if errors.Is(err, domain.ErrNotDepleted) {
		// respawned already, e.g. by a sweep or an admin
		return nil
	}
	if err != nil {
		return err
	}
	if !deleted {
		logger.FromContext(ctx).Debug(LogMsgRespawnStale, "node", key.String())
	}
	return nil
}

// respawned drops the node's timer and announces the respawn. Callers hold the
// node's lock so broadcasts for one node leave in the order they happened.
func (s *service) respawned(ctx context.Context, rec domain.DepletionRecord) {
	s.respawns.Cancel(rec.Key)
	metrics.DepletedNodes.Dec()
	logger.FromContext(ctx).Info(LogMsgNodeRespawned,
		"node", rec.Key.String(),
		"resource", rec.ResourceType)
	s.publish(ctx, event.NewNodeEvent(event.NodeRespawned, rec, s.clock.Now()))
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

// DepletedNodes lists every active depletion
func (s *service) DepletedNodes(ctx context.Context) ([]domain.DepletionRecord, error) {
	return s.repo.ListDepletions(ctx)
}

// Restore re-arms respawn timers for every persisted record. Overdue records
// fire on the next clock tick.
func (s *service) Restore(ctx context.Context) (int, error) {
	recs, err := s.repo.ListDepletions(ctx)
	if err != nil {
		return 0, err
	}
	for _, rec := range recs {
		s.respawns.Schedule(rec)
	}
	metrics.DepletedNodes.Set(float64(len(recs)))
	logger.FromContext(ctx).Info(LogMsgRecordsRestored, "count", len(recs), "pending", s.respawns.Pending())
	return len(recs), nil
}

// Sweep respawns every overdue record
func (s *service) Sweep(ctx context.Context) (int, error) {
	due, err := s.repo.ListDueDepletions(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}

	count := 0
	var errs []error
	for _, rec := range due {
		s.locks.WithLock(rec.Key, func() {
			deleted, err := s.repo.DeleteDepletion(ctx, rec.Key, rec.DepletedAt)
			if err != nil {
				errs = append(errs, err)
				return
			}
			if deleted {
				s.respawned(ctx, rec)
				count++
			}
		})
	}

	logger.FromContext(ctx).Debug(LogMsgSweepCompleted, "due", len(due), "respawned", count)
	return count, errors.Join(errs...)
}

// SweepJob adapts Sweep to the worker pool
func (s *service) SweepJob() worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		_, err := s.Sweep(ctx)
		return err
	})
}

// PendingRespawns returns the number of armed respawn timers
func (s *service) PendingRespawns() int {
	return s.respawns.Pending()
}

// Shutdown stops the respawn worker. Records stay persisted for the next Restore.
func (s *service) Shutdown(ctx context.Context) error {
	return s.respawns.Shutdown(ctx)
}
