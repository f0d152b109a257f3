package live

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/conorfabian/streamlinks/internal/autocomplete"
	"github.com/conorfabian/streamlinks/internal/search"
	"github.com/conorfabian/streamlinks/pkg/models"
	"github.com/conorfabian/streamlinks/pkg/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SuggestFetcher adapts the aggregator to the controller. A total failure
// becomes an error; partial results are passed through.
func SuggestFetcher(svc *search.Service) autocomplete.Fetcher {
	return func(ctx context.Context, req search.Request) ([]models.Suggestion, error) {
		resp := svc.Suggest(ctx, req)
		if resp.Failed() {
			return nil, errors.New(resp.Error)
		}
		return resp.Suggestions, nil
	}
}

// WSHandler upgrades the request and runs one autocomplete session until the
// client disconnects.
func WSHandler(hub *Hub, fetch autocomplete.Fetcher, cfg utils.LiveConfig, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "err", err)
			return
		}

		sess := &Session{
			ID:      uuid.NewString(),
			Started: time.Now().UTC(),
			conn:    conn,
		}
		sess.ctl = autocomplete.New(fetch,
			autocomplete.WithDebounce(cfg.Debounce()),
			autocomplete.WithLimit(cfg.MaxSuggestions),
		)
		sess.ctl.OnChange(func(s autocomplete.Snapshot) {
			_ = sess.Send(ServerMessage{Type: MsgState, Session: sess.ID, State: &s, At: time.Now().UTC()})
		})

		hub.Add(sess)
		logger.Info("live session opened", "session", sess.ID, "remote", c.Request.RemoteAddr)
		defer func() {
			hub.Remove(sess.ID)
			logger.Info("live session closed", "session", sess.ID, "duration", time.Since(sess.Started))
		}()

		_ = sess.Send(ServerMessage{Type: MsgWelcome, Session: sess.ID, At: time.Now().UTC()})

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Debug("live session read ended", "session", sess.ID, "err", err)
				}
				return
			}
			var msg ClientMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				_ = sess.Send(ServerMessage{Type: MsgError, Session: sess.ID, Error: "invalid message", At: time.Now().UTC()})
				continue
			}
			dispatch(sess, msg)
		}
	}
}

func dispatch(sess *Session, msg ClientMessage) {
	switch msg.Type {
	case MsgInput:
		sess.ctl.Input(msg.Q)
	case MsgScope:
		scope, err := search.ParseScope(msg.Scope)
		if err != nil {
			_ = sess.Send(ServerMessage{Type: MsgError, Session: sess.ID, Error: err.Error(), At: time.Now().UTC()})
			return
		}
		sess.ctl.SetScope(scope)
	case MsgSelect:
		sess.ctl.Select()
	case MsgSubmit:
		q := sess.ctl.Submit()
		_ = sess.Send(ServerMessage{Type: MsgSubmitted, Session: sess.ID, Query: q, At: time.Now().UTC()})
	default:
		_ = sess.Send(ServerMessage{Type: MsgError, Session: sess.ID, Error: "unknown message type " + msg.Type, At: time.Now().UTC()})
	}
}
