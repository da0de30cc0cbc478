// Package wsclient carries gathering protocol envelopes between a client
// engine and the authority server over a websocket.
package wsclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/sync/errgroup"

	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/gateway"
	"github.com/osse101/GatherNode_Go/internal/logger"
)

// ErrSendQueueFull is returned by Send when the writer has fallen behind
var ErrSendQueueFull = errors.New(ErrMsgSendQueueFull)

var _ gateway.Transport = (*Client)(nil)

// Handler consumes messages pushed by the server
type Handler interface {
	HandleServerMessage(ctx context.Context, msg domain.Message) error
}

// Config describes how to reach the authority server
type Config struct {
	URL          string
	PlayerID     string
	APIKey       string
	SendBuffer   int
	DialTimeout  time.Duration
	WriteTimeout time.Duration
}

func (c *Config) applyDefaults() {
	if c.SendBuffer <= 0 {
		c.SendBuffer = DefaultSendBuffer
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
}

// Client is a gateway.Transport backed by one websocket connection.
//
// Send never blocks: envelopes are queued and written by the goroutine
// started in Run.
type Client struct {
	cfg  Config
	conn *websocket.Conn
	send chan domain.Message

	mu      sync.Mutex
	closed  bool
	running bool
	done    chan struct{}
}

// Dial connects to the server's websocket endpoint as cfg.PlayerID
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.PlayerID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingPlayer)
	}
	cfg.applyDefaults()

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgInvalidURL, cfg.URL, err)
	}
	q := u.Query()
	q.Set(QueryParamPlayer, cfg.PlayerID)
	u.RawQuery = q.Encode()

	opts := &websocket.DialOptions{}
	if cfg.APIKey != "" {
		opts.HTTPHeader = http.Header{HeaderAPIKey: []string{cfg.APIKey}}
	}

	dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	conn, _, err := websocket.Dial(dialCtx, u.String(), opts)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDialFailed, cfg.URL, err)
	}
	conn.SetReadLimit(ReadLimit)

	logger.FromContext(ctx).Info(LogMsgConnected, "url", cfg.URL, "player", cfg.PlayerID)

	return &Client{
		cfg:  cfg,
		conn: conn,
		send: make(chan domain.Message, cfg.SendBuffer),
		done: make(chan struct{}),
	}, nil
}

// Send queues msg for the writer
func (c *Client) Send(ctx context.Context, msg domain.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrNotConnected
	}

	select {
	case c.send <- msg:
		return nil
	default:
		logger.FromContext(ctx).Warn(LogMsgSendQueueFull, "kind", msg.Kind, "queued", len(c.send))
		return ErrSendQueueFull
	}
}

// Run pumps messages until the connection drops, ctx ends or Close is
// called. Inbound envelopes are handed to h one at a time.
func (c *Client) Run(ctx context.Context, h Handler) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return errors.New(ErrMsgAlreadyRunning)
	}
	c.running = true
	c.mu.Unlock()
	defer c.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return c.readLoop(gctx, h)
	})
	g.Go(func() error {
		defer cancel()
		return c.writeLoop(gctx)
	})

	err := g.Wait()
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgUnexpectedClose, "error", err)
	} else {
		logger.FromContext(ctx).Info(LogMsgDisconnected)
	}
	return err
}

func (c *Client) readLoop(ctx context.Context, h Handler) error {
	log := logger.FromContext(ctx)
	for {
		var msg domain.Message
		if err := wsjson.Read(ctx, c.conn, &msg); err != nil {
			if c.expectedClose(ctx, err) {
				return nil
			}
			return err
		}
		if err := h.HandleServerMessage(ctx, msg); err != nil {
			log.Warn(LogMsgHandleFailed, "kind", msg.Kind, "error", err)
		}
	}
}

func (c *Client) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.done:
			return nil
		case msg := <-c.send:
			wctx, cancel := context.WithTimeout(ctx, c.cfg.WriteTimeout)
			err := wsjson.Write(wctx, c.conn, msg)
			cancel()
			if err != nil {
				if c.expectedClose(ctx, err) {
					return nil
				}
				return err
			}
		}
	}
}

func (c *Client) expectedClose(ctx context.Context, err error) bool {
	if ctx.Err() != nil || c.isClosed() {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return false
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close ends the connection. Later Sends fail with domain.ErrNotConnected.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	err := c.conn.Close(websocket.StatusNormalClosure, "")
	if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
		return nil
	}
	return err
}
