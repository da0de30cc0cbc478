package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/sync/errgroup"

	"github.com/osse101/GatherNode_Go/internal/authority"
	"github.com/osse101/GatherNode_Go/internal/domain"
	"github.com/osse101/GatherNode_Go/internal/hub"
	"github.com/osse101/GatherNode_Go/internal/logger"
)

// HandleWebSocket upgrades a player connection. Inbound envelopes go to the
// authority service; direct replies and broadcasts share one writer.
// @Summary Gathering protocol websocket
// @Tags protocol
// @Param player query string true "Player ID"
// @Success 101
// @Failure 400 {object} ErrorResponse
// @Router /ws [get]
func HandleWebSocket(svc authority.Service, h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, ok := GetQueryParam(r, w, QueryParamPlayer)
		if !ok {
			return
		}

		ctx := logger.WithOwner(r.Context(), player)
		log := logger.FromContext(ctx)

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			log.Warn(LogMsgWebSocketAcceptFailed, "error", err)
			return
		}
		defer conn.CloseNow()

		client := h.Register(hub.KindWebSocket, player, nil)
		defer h.Unregister(client.ID)
		log.Info(LogMsgWebSocketConnected, "client_id", client.ID, "total_clients", h.ClientCount())

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			defer cancel()
			return readLoop(gctx, conn, svc, h, client)
		})
		g.Go(func() error {
			defer cancel()
			return writeLoop(gctx, conn, client)
		})

		if err := g.Wait(); err != nil {
			log.Info(LogMsgWebSocketClosed, "client_id", client.ID, "error", err)
			return
		}
		log.Info(LogMsgWebSocketClosed, "client_id", client.ID)
		conn.Close(websocket.StatusNormalClosure, "")
	}
}

func readLoop(ctx context.Context, conn *websocket.Conn, svc authority.Service, h *hub.Hub, client *hub.Client) error {
	log := logger.FromContext(ctx)
	for {
		var msg domain.Message
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if isExpectedClose(ctx, err) {
				return nil
			}
			return err
		}

		// a connection only speaks for its own player
		msg.PlayerID = client.PlayerID

		reply, err := svc.HandleMessage(ctx, msg)
		if err != nil {
			log.Warn(LogMsgWebSocketBadMessage, "kind", msg.Kind, "error", err)
			continue
		}
		if reply != nil && !h.SendTo(client.ID, *reply) {
			log.Warn(LogMsgWebSocketReplyDropped, "kind", reply.Kind, "node", reply.Key().String())
		}
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn, client *hub.Client) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-client.Messages:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				if isExpectedClose(ctx, err) {
					return nil
				}
				return err
			}
		}
	}
}

func isExpectedClose(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return false
}
