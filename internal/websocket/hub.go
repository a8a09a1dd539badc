package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Event adalah notifikasi mutasi yang dikirim ke semua klien yang terhubung.
type Event struct {
	Type   string `json:"type"`
	Entity string `json:"entity"`
	ID     int    `json:"id"`
}

// Conn adalah bagian dari *websocket.Conn yang dipakai hub.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client merepresentasikan klien WebSocket.
type Client struct {
	Conn Conn
	Mu   sync.Mutex
}

// Hub mengelola koneksi WebSocket.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

// NewHub membuat instance Hub baru.
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Publish mengirim event mutasi secara non-blocking. Aman dipanggil dengan
// hub nil (saat testing handler tanpa hub).
func (h *Hub) Publish(eventType, entity string, id int) {
	if h == nil {
		return
	}
	payload, err := json.Marshal(Event{Type: eventType, Entity: entity, ID: id})
	if err != nil {
		return
	}
	select {
	case h.Broadcast <- payload:
	default:
	}
}

// Run menjalankan loop Hub untuk mengelola register, unregister, dan Broadcast.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.Conn.Close()
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				client.Mu.Lock()
				err := client.Conn.WriteMessage(websocket.TextMessage, message)
				client.Mu.Unlock()
				if err != nil {
					// Mengirim ke h.Unregister dari sini memblokir goroutine
					// ini sendiri; klien yang gagal ditulis dibuang langsung.
					delete(h.Clients, client)
					client.Conn.Close()
				}
			}
		}
	}
}
