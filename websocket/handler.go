package websocket

import (
	"log"
	"net/http"

	"bingo/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsHandler upgrades an authenticated connection and keeps it
// subscribed to gamification events until the client goes away.
// Browsers cannot set headers on websocket requests, so the token may
// also arrive as a query parameter.
func EventsHandler(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
		return
	}

	claims, err := utils.ParseJWTToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return
	}

	client := &EventClient{Conn: conn, UserID: claims.UserID}
	RegisterEventClient(client)

	// Drain reads so pings are answered; any read error ends the
	// subscription
	go func() {
		defer UnregisterEventClient(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
