package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"mining-ops-api-server/internal/auth"
	"mining-ops-api-server/internal/socket"
)

// pongWait is how long a client may stay silent before the connection is
// considered dead. Client pings reset the deadline.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub *socket.Hub
	Log *zap.Logger
}

// ServeWs upgrades the connection and attaches it to the live operations
// feed. Browsers cannot set an Authorization header on a websocket handshake,
// so the token travels as a query parameter.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}

	claims, err := auth.ParseJWT(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Warn("failed to upgrade connection", zap.Error(err))
		return
	}

	h.Hub.Register(userID, conn)
	defer func() {
		h.Hub.Unregister(userID)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	// gorilla answers PINGs with PONGs on its own; we only extend the deadline.
	conn.SetPingHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Log.Warn("unexpected websocket close", zap.String("userID", userID), zap.Error(err))
			}
			break
		}
	}
}
