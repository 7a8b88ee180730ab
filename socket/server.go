package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes the Socket.IO server. Clients join a room per
// conversation id and receive "newMessage" events when a message is posted
// to that conversation over the REST API.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(s socketio.Conn) error {
		log.Println("Socket connected:", s.ID())
		return nil
	})

	server.OnEvent("/", "join", func(s socketio.Conn, conversationID string) {
		if conversationID == "" {
			log.Println("Invalid conversation id in join request")
			return
		}
		log.Printf("Socket %s joined conversation %s\n", s.ID(), conversationID)
		s.Join(conversationID)
	})

	server.OnEvent("/", "leave", func(s socketio.Conn, conversationID string) {
		s.Leave(conversationID)
	})

	server.OnError("/", func(s socketio.Conn, err error) {
		log.Println("Socket error:", err)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.Println("Socket disconnected:", reason)
	})

	return server
}
