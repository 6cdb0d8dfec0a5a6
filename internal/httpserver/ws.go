package httpserver

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/minigames/apps/go-server/internal/core"
	"github.com/robalobadob/minigames/apps/go-server/internal/play"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// clientMessage is what the browser sends.
type clientMessage struct {
	Type   string `json:"type"` // "select"
	Target int    `json:"target"`
}

// serverMessage is what the server pushes.
type serverMessage struct {
	Type     string         `json:"type"` // "snapshot" | "selected" | "error"
	Outcome  core.Outcome   `json:"outcome,omitempty"`
	Snapshot *core.Snapshot `json:"snapshot,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// handleWS streams the play's snapshots every frame and applies picks sent
// by the client.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	p := playFrom(r)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("play", p.ID).Msg("upgrade")
		return
	}
	snaps, unsubscribe := p.Subscribe()
	defer unsubscribe()

	send := make(chan serverMessage, 8)
	done := make(chan struct{})
	go writePump(conn, snaps, send, done)

	first := p.Snapshot()
	send <- serverMessage{Type: "snapshot", Snapshot: &first}
	readPump(conn, p, send)
	close(done)
}

// readPump applies client messages until the connection closes.
func readPump(conn *websocket.Conn, p *play.Play, send chan<- serverMessage) {
	defer conn.Close()
	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case "select":
			out, snap, err := p.Select(msg.Target)
			reply := serverMessage{Type: "selected", Outcome: out, Snapshot: &snap}
			if err != nil {
				reply = serverMessage{Type: "error", Error: err.Error()}
				if errors.Is(err, play.ErrStopped) {
					reply.Error = "finished"
				}
			}
			select {
			case send <- reply:
			default:
			}
		default:
			// ignore unknown types
		}
	}
}

// writePump is the connection's only writer.
func writePump(conn *websocket.Conn, snaps <-chan core.Snapshot, send <-chan serverMessage, done <-chan struct{}) {
	defer conn.Close()
	for {
		var msg serverMessage
		select {
		case <-done:
			return
		case m := <-send:
			msg = m
		case snap := <-snaps:
			msg = serverMessage{Type: "snapshot", Snapshot: &snap}
		}
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
