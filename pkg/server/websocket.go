package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// message is the JSON frame sent to live clients.
type message struct {
	Type string `json:"type"`
	HTML string `json:"html"`
}

// client is one websocket connection. send holds at most the latest body;
// an older undelivered body is dropped in favour of a newer one.
type client struct {
	id   string
	conn *websocket.Conn
	send chan string
	done chan struct{}
}

func (c *client) push(html string) {
	for {
		select {
		case c.send <- html:
			return
		case <-c.done:
			return
		default:
		}
		select {
		case <-c.send:
		default:
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan string, 1),
		done: make(chan struct{}),
	}

	s.mu.Lock()
	s.clients[c.id] = c
	body := s.body
	s.mu.Unlock()
	s.logger.Debug("client connected", "client", c.id)

	c.push(body)
	go s.writeLoop(c)

	// Keep the connection until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Warn("read error", "client", c.id, "error", err)
			}
			break
		}
	}
	s.drop(c)
}

func (s *Server) writeLoop(c *client) {
	for {
		select {
		case html := <-c.send:
			data, err := json.Marshal(message{Type: "body", HTML: html})
			if err != nil {
				continue
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.drop(c)
				return
			}
		case <-c.done:
			return
		}
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	_, ok := s.clients[c.id]
	delete(s.clients, c.id)
	s.mu.Unlock()
	if !ok {
		return
	}
	close(c.done)
	c.conn.Close()
	s.logger.Debug("client disconnected", "client", c.id)
}

func (s *Server) closeClients() {
	s.mu.RLock()
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()
	for _, c := range clients {
		s.drop(c)
	}
}
