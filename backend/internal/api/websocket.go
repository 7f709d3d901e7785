package api

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"maxim-atlas/backend/internal/dispatch"
	"maxim-atlas/backend/internal/graph"
	"maxim-atlas/backend/internal/session"
)

// handleWebsocket streams view updates for one session. The client sends
// dispatch.Event JSON; every handled event answers with a full update.
// ?session=<id> attaches to a session created over REST.
func (s *Server) handleWebsocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events := make(chan dispatch.Event)
	go s.readEvents(ctx, conn, events, cancel)

	if !s.awaitGraph(ctx, conn) {
		return
	}
	store, err := s.holder.Store()
	if err != nil {
		return
	}

	sess, owned, err := s.attach(c.Query("session"), store)
	if err != nil {
		conn.WriteJSON(dispatch.ErrorUpdate(err))
		return
	}
	if owned {
		defer s.sessions.Delete(sess.ID)
	}

	initial, err := sess.Snapshot()
	if err != nil {
		conn.WriteJSON(dispatch.ErrorUpdate(err))
		return
	}
	if err := conn.WriteJSON(initial); err != nil {
		return
	}

	loop := dispatch.NewLoop(sess, s.opts.SearchDebounce, s.logger.With(zap.String("session_id", sess.ID)))
	err = loop.Run(ctx, events, func(u dispatch.Update) error {
		return conn.WriteJSON(u)
	})
	if err != nil && ctx.Err() == nil {
		s.logger.Debug("Websocket session ended", zap.String("session_id", sess.ID), zap.Error(err))
	}
}

// awaitGraph tells the client the graph is loading and blocks until the load
// finishes. It reports false when the load failed or the client went away.
func (s *Server) awaitGraph(ctx context.Context, conn *websocket.Conn) bool {
	if _, err := s.holder.Store(); err == nil {
		return true
	}

	select {
	case <-s.holder.Done():
	default:
		if err := conn.WriteJSON(dispatch.Update{Type: dispatch.UpdateTypeLoading}); err != nil {
			return false
		}
		select {
		case <-s.holder.Done():
		case <-ctx.Done():
			return false
		}
	}

	if _, err := s.holder.Store(); err != nil {
		conn.WriteJSON(dispatch.Update{Type: dispatch.UpdateTypeLoadFailed, Error: err.Error()})
		return false
	}
	return true
}

func (s *Server) attach(id string, store *graph.Store) (*session.Session, bool, error) {
	if id == "" {
		return s.sessions.Create(store), true, nil
	}
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, false, err
	}
	sess.Touch()
	return sess, false, nil
}

// readEvents decodes client messages until the connection closes. Malformed
// messages are skipped.
func (s *Server) readEvents(ctx context.Context, conn *websocket.Conn, events chan<- dispatch.Event, cancel context.CancelFunc) {
	defer close(events)
	defer cancel()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var ev dispatch.Event
		if err := json.Unmarshal(message, &ev); err != nil {
			s.logger.Debug("Dropping malformed websocket message", zap.Error(err))
			continue
		}

		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}
