package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bingo/models"

	"github.com/gorilla/websocket"
)

// connPair opens a real websocket and returns both ends
func connPair(t *testing.T) (server *websocket.Conn, client *websocket.Conn) {
	t.Helper()

	serverConns := make(chan *websocket.Conn, 1)
	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Failed to upgrade: %v", err)
			return
		}
		serverConns <- conn
	}))
	t.Cleanup(ts.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return <-serverConns, client
}

func TestBroadcastReachesActingUserOnly(t *testing.T) {
	actorServer, actorConn := connPair(t)
	otherServer, otherConn := connPair(t)

	actor := &EventClient{Conn: actorServer, UserID: "user-a"}
	other := &EventClient{Conn: otherServer, UserID: "user-b"}
	RegisterEventClient(actor)
	RegisterEventClient(other)
	t.Cleanup(func() {
		UnregisterEventClient(actor)
		UnregisterEventClient(other)
	})

	BroadcastGamificationEvent(models.GamificationEvent{
		Type:     "points_updated",
		UserID:   "user-a",
		Points:   25,
		NewTotal: 25,
	})

	actorConn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got models.GamificationEvent
	if err := actorConn.ReadJSON(&got); err != nil {
		t.Fatalf("Expected the acting user to receive the event: %v", err)
	}
	if got.Type != "points_updated" || got.Points != 25 {
		t.Errorf("Unexpected event payload: %+v", got)
	}

	otherConn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var leaked models.GamificationEvent
	if err := otherConn.ReadJSON(&leaked); err == nil {
		t.Errorf("Expected no event for another user, got %+v", leaked)
	}
}

func TestBroadcastReachesAllOfUsersConnections(t *testing.T) {
	firstServer, firstConn := connPair(t)
	secondServer, secondConn := connPair(t)

	first := &EventClient{Conn: firstServer, UserID: "user-a"}
	second := &EventClient{Conn: secondServer, UserID: "user-a"}
	RegisterEventClient(first)
	RegisterEventClient(second)
	t.Cleanup(func() {
		UnregisterEventClient(first)
		UnregisterEventClient(second)
	})

	BroadcastGamificationEvent(models.GamificationEvent{
		Type:            "achievement_unlocked",
		UserID:          "user-a",
		AchievementID:   "first_mission",
		AchievementName: "First Steps",
	})

	for _, conn := range []*websocket.Conn{firstConn, secondConn} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got models.GamificationEvent
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("Expected every connection of the user to receive the event: %v", err)
		}
		if got.AchievementID != "first_mission" {
			t.Errorf("Unexpected event payload: %+v", got)
		}
	}
}
