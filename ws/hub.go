package ws

// Hub menyiarkan event progres pipeline monitoring ke seluruh client dashboard
// yang terhubung lewat websocket. Pipeline tidak pernah menunggu hub: pesan
// dijatuhkan bila buffer penuh (fire-and-continue).

import (
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Client mewakili satu koneksi websocket dashboard.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub mengelola semua koneksi client.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
	log        zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		log:        log,
	}
}

// Siarkan mengirim satu event ke hub tanpa memblokir pemanggil.
func (h *Hub) Siarkan(pesan []byte) {
	select {
	case h.Broadcast <- pesan:
	default:
		h.log.Debug().Msg("buffer broadcast penuh, event progres dijatuhkan")
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
			h.log.Debug().Int("clients", len(h.Clients)).Msg("client websocket terdaftar")
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				h.log.Debug().Int("clients", len(h.Clients)).Msg("client websocket terlepas")
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}
