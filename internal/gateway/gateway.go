package gateway

import (
	"context"
	"time"

	"github.com/osse101/GatherNode_Go/internal/domain"
)

// Request asks for permission to start gathering a node
type Request struct {
	OwnerID      string
	ResourceType string
	Key          domain.NodeKey
	ActionKind   string
}

// Decision is the outcome of a Request.
// Seq identifies the submission it answers so late or stale decisions can be discarded.
type Decision struct {
	Seq          uint64
	OwnerID      string
	ResourceType string
	Key          domain.NodeKey
	Approved     bool
	Reason       string
	DepletedBy   string
	TimedOut     bool
}

// Gateway approves gathering actions.
//
// Submit returns the sequence number assigned to the request. When decided is
// true the decision is already final (standalone mode); otherwise the answer
// arrives later through Resolve, or through the timeout callback.
type Gateway interface {
	Mode() string
	Submit(ctx context.Context, req Request) (seq uint64, decision Decision, decided bool, err error)
	Resolve(msg domain.Message) (Decision, bool)
	Cancel(owner string) bool
	Pending(owner string) (Request, bool)
	RequestDepletion(ctx context.Context, owner, resourceType string, key domain.NodeKey, respawnDelay time.Duration) error
	Close()
}

// Transport delivers protocol messages to the authority.
// Send must not block waiting for a reply and must never deliver a reply on the calling goroutine.
type Transport interface {
	Send(ctx context.Context, msg domain.Message) error
}

// TimeoutFunc receives a denial produced because the authority never answered
type TimeoutFunc func(Decision)

var (
	_ Gateway = (*Standalone)(nil)
	_ Gateway = (*Remote)(nil)
)
