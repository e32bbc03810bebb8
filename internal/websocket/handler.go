package websocket

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/dart01/server/internal/game"
	"github.com/dart01/server/internal/lobby"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServerDeps contains references to other subsystems used by websocket clients.
type ServerDeps struct {
	Lobby *lobby.Manager
	Games *game.Manager
}

// ServeWs handles websocket requests from the peer: either a spectator
// or a sensor attaching to a single match's room.
func ServeWs(hub *Hub, deps ServerDeps, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
		id:   r.RemoteAddr,
		deps: deps,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
