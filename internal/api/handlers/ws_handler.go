package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/interviewace/interviewace/internal/interview"
	"github.com/interviewace/interviewace/internal/services"
	"github.com/interviewace/interviewace/internal/utils"
)

// WSHandler is the live channel for a running interview: the client streams
// transcript chunks (its own speech recognition output) and control messages,
// the server pushes flow snapshots on every transition.
type WSHandler struct {
	svc      services.InterviewService
	upgrader websocket.Upgrader
}

func NewWSHandler(svc services.InterviewService) *WSHandler {
	return &WSHandler{
		svc: svc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Type string `json:"type"` // transcript|advance|skip_preparation|start_recording|stop_recording
	Text string `json:"text,omitempty"`
}

type wsServerMsg struct {
	Type    string              `json:"type"` // state|error
	Code    utils.Code          `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	State   *interview.Snapshot `json:"state,omitempty"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (h *WSHandler) InterviewWS(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sessionID := c.Param("session_id")
	session, err := h.svc.Get(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	if session.UserID != userID {
		writeError(c, utils.E(utils.CodeForbidden, "WSHandler.InterviewWS", "forbidden", nil))
		return
	}

	snaps, cancel, err := h.svc.SubscribeSnapshots(sessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote a response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx := c.Request.Context()

	// initial state so the client can render immediately
	if snap, err := h.svc.Snapshot(ctx, sessionID); err == nil {
		_ = wc.writeJSON(wsServerMsg{Type: "state", State: &snap})
	}

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			_, data, rerr := conn.ReadMessage()
			if rerr != nil {
				return
			}

			var msg wsClientMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				_ = wc.writeJSON(wsServerMsg{Type: "error", Code: utils.CodeInvalidArgument, Message: "invalid json"})
				continue
			}

			switch msg.Type {
			case "transcript":
				if _, err := h.svc.FeedTranscript(ctx, sessionID, msg.Text); err != nil {
					wc.writeErr(err)
				}
			case "advance":
				if _, err := h.svc.SubmitResponse(ctx, sessionID, msg.Text); err != nil {
					wc.writeErr(err)
				}
			case "skip_preparation":
				if _, err := h.svc.SkipPreparation(ctx, sessionID); err != nil {
					wc.writeErr(err)
				}
			case "start_recording":
				if err := h.svc.SetRecording(ctx, sessionID, true); err != nil {
					wc.writeErr(err)
				}
			case "stop_recording":
				if err := h.svc.SetRecording(ctx, sessionID, false); err != nil {
					wc.writeErr(err)
				}
			default:
				_ = wc.writeJSON(wsServerMsg{Type: "error", Code: utils.CodeInvalidArgument, Message: "unknown message type"})
			}
		}
	}()

	for {
		select {
		case <-readDone:
			return
		case <-ctx.Done():
			return
		case snap := <-snaps:
			if err := wc.writeJSON(wsServerMsg{Type: "state", State: &snap}); err != nil {
				return
			}
			if snap.Phase == interview.PhaseFinished {
				return
			}
		}
	}
}

func (w *wsConn) writeErr(err error) {
	msg := wsServerMsg{Type: "error", Code: utils.CodeInternal, Message: "internal error"}
	var ae *utils.AppError
	if errors.As(err, &ae) {
		msg.Code = ae.Code
		msg.Message = ae.Message
	}
	_ = w.writeJSON(msg)
}
