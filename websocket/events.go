package websocket

import (
	"log"
	"sync"

	"bingo/models"

	"github.com/gorilla/websocket"
)

// EventClient represents a client connected for gamification updates
type EventClient struct {
	Conn    *websocket.Conn
	UserID  string
	writeMu sync.Mutex
}

// SafeWriteJSON safely writes JSON data to the client's WebSocket connection
func (ec *EventClient) SafeWriteJSON(v interface{}) error {
	ec.writeMu.Lock()
	defer ec.writeMu.Unlock()
	return ec.Conn.WriteJSON(v)
}

// Global registry of subscribed clients; a user may hold several
// connections at once
var (
	eventClients = make(map[*EventClient]bool)
	eventMutex   sync.RWMutex
)

// RegisterEventClient registers a client for gamification updates
func RegisterEventClient(client *EventClient) {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	eventClients[client] = true
	log.Printf("Event client registered. Total clients: %d", len(eventClients))
}

// UnregisterEventClient removes a client and closes its connection
func UnregisterEventClient(client *EventClient) {
	eventMutex.Lock()
	defer eventMutex.Unlock()
	delete(eventClients, client)
	client.Conn.Close()
	log.Printf("Event client unregistered. Total clients: %d", len(eventClients))
}

// BroadcastGamificationEvent sends an event to every open connection
// of the user it concerns
func BroadcastGamificationEvent(event models.GamificationEvent) {
	eventMutex.RLock()
	defer eventMutex.RUnlock()

	var failed []*EventClient
	for client := range eventClients {
		if client.UserID != event.UserID {
			continue
		}
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Failed to send event to client %s: %v", client.UserID, err)
			failed = append(failed, client)
		}
	}

	// Drop broken connections outside the read lock
	if len(failed) > 0 {
		go func() {
			for _, client := range failed {
				UnregisterEventClient(client)
			}
		}()
	}
}
