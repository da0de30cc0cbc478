package gateway

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/osse101/GatherNode_Go/internal/domain"
)

// Standalone approves every request on the spot. Depletion is applied locally
// by the engine, so RequestDepletion has nothing to send.
type Standalone struct {
	seq atomic.Uint64
}

// NewStandalone creates a standalone gateway
func NewStandalone() *Standalone {
	return &Standalone{}
}

// Mode returns domain.ModeStandalone
func (s *Standalone) Mode() string {
	return domain.ModeStandalone
}

// Submit approves req immediately
func (s *Standalone) Submit(_ context.Context, req Request) (uint64, Decision, bool, error) {
	seq := s.seq.Add(1)
	return seq, Decision{
		Seq:          seq,
		OwnerID:      req.OwnerID,
		ResourceType: req.ResourceType,
		Key:          req.Key,
		Approved:     true,
	}, true, nil
}

// Resolve never matches; nothing is ever pending
func (s *Standalone) Resolve(domain.Message) (Decision, bool) {
	return Decision{}, false
}

// Cancel is a no-op
func (s *Standalone) Cancel(string) bool {
	return false
}

// Pending always reports nothing pending
func (s *Standalone) Pending(string) (Request, bool) {
	return Request{}, false
}

// RequestDepletion is a no-op
func (s *Standalone) RequestDepletion(context.Context, string, string, domain.NodeKey, time.Duration) error {
	return nil
}

// Close is a no-op
func (s *Standalone) Close() {}
