package viewer

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/symburst/internal/tree"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type  string   `json:"type"` // filter, click, hover, hover_end, reset or get
	Node  *int     `json:"node,omitempty"`
	Types []string `json:"types,omitempty"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type  string    `json:"type"` // state or error
	State *Snapshot `json:"state,omitempty"`
	Error string    `json:"error,omitempty"`
}

// handleWebSocket sends the current state on connect, then every state the
// session publishes. Successful events are answered by the published state;
// failures are answered with an error message to the sender only.
func handleWebSocket(s *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.logger.Warn("websocket upgrade", zap.Error(err))
			return
		}
		defer conn.Close()

		updates, cancel := s.Subscribe()
		defer cancel()

		replies := make(chan wsResponse, 8)
		done := make(chan struct{})
		go func() {
			defer close(done)
			writeLoop(s, conn, updates, replies)
		}()

		initial := s.Snapshot()
		replies <- wsResponse{Type: "state", State: &initial}

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Warn("websocket read", zap.Error(err))
				}
				break
			}
			if resp, ok := dispatch(s, msg); ok {
				replies <- resp
			}
		}
		close(replies)
		<-done
	}
}

// dispatch applies one message and returns a direct reply when the sender
// needs one.
func dispatch(s *Session, msg []byte) (wsResponse, bool) {
	var req wsRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return wsResponse{Type: "error", Error: "invalid message format"}, true
	}

	var err error
	switch req.Type {
	case "get":
		snap := s.Snapshot()
		return wsResponse{Type: "state", State: &snap}, true
	case "filter":
		_, err = s.Filter(req.Types)
	case "click", "hover":
		if req.Node == nil {
			return wsResponse{Type: "error", Error: "node is required"}, true
		}
		if req.Type == "click" {
			_, err = s.Click(tree.NodeID(*req.Node))
		} else {
			_, err = s.Hover(tree.NodeID(*req.Node))
		}
	case "hover_end":
		_, err = s.HoverEnd()
	case "reset":
		_, err = s.Reset()
	default:
		return wsResponse{Type: "error", Error: "unknown message type: " + req.Type}, true
	}
	if err != nil {
		return wsResponse{Type: "error", Error: err.Error()}, true
	}
	return wsResponse{}, false
}

func writeLoop(s *Session, conn *websocket.Conn, updates <-chan Snapshot, replies <-chan wsResponse) {
	for {
		var resp wsResponse
		select {
		case r, ok := <-replies:
			if !ok {
				return
			}
			resp = r
		case snap := <-updates:
			resp = wsResponse{Type: "state", State: &snap}
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Warn("websocket write", zap.Error(err))
			conn.Close()
			// Keep draining so the reader never blocks on replies.
			for range replies {
			}
			return
		}
	}
}
