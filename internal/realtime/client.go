package realtime

import (
	"context"
	"net/http"
	"time"

	pkgAuth "github.com/alunakitchen/pickup-backend/pkg/auth"
	"github.com/alunakitchen/pickup-backend/pkg/auth/session"
	"github.com/alunakitchen/pickup-backend/pkg/config"
	"github.com/alunakitchen/pickup-backend/pkg/logger"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Ping period, must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browsers cannot set custom headers on websocket dials, so
		// the token query param carries the credential instead.
		return true
	},
}

// Client is a single operator websocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	logg *logger.Logger
}

// readPump waits for disconnects; operator consoles never send
// messages upstream.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) && c.logg != nil {
				c.logg.Error(context.Background(), "websocket read failed", err)
			}
			return
		}
	}
}

// writePump pushes hub messages and keepalive pings to the peer.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWS upgrades an operator connection after validating the token
// query param against the JWT config and the live session registry.
func ServeWS(hub *Hub, jwtCfg config.JWTConfig, sessions session.AccessSessionChecker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := r.URL.Query().Get("token")
		if tokenStr == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		claims, err := pkgAuth.ParseAccessToken(jwtCfg, tokenStr)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		if !claims.IsAdmin {
			http.Error(w, "operator access required", http.StatusForbidden)
			return
		}
		if sessions != nil {
			live, err := sessions.HasSession(r.Context(), claims.ID)
			if err != nil || !live {
				http.Error(w, "session expired", http.StatusUnauthorized)
				return
			}
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			if logg != nil {
				logg.Error(r.Context(), "websocket upgrade failed", err)
			}
			return
		}

		client := &Client{
			hub:  hub,
			conn: conn,
			send: make(chan []byte, 64),
			logg: logg,
		}
		client.hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}
