package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Message types pushed to scheduling clients.
const (
	MessageScheduleUpdated = "SCHEDULE_UPDATED"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

// Hub keeps one room per tournament and fans schedule updates out to every
// client watching that tournament's board.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	rooms  map[string]map[*Client]bool
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.logger.Debug("websocket client registered",
				slog.String("room", client.room),
				slog.Int("clients_in_room", len(h.rooms[client.room])))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, registered := clients[client]; registered {
					client.closeSend()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
					h.logger.Debug("websocket client unregistered", slog.String("room", client.room))
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToRoom delivers a message to every client in the room. Clients
// whose send buffer is full are skipped rather than blocking the caller.
func (h *Hub) BroadcastToRoom(roomID string, message Message) {
	message.RoomID = roomID

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal websocket message",
			slog.String("room", roomID), slog.Any("error", err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roomID] {
		client.enqueue(data)
	}
}
