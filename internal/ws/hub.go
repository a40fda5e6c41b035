// Package ws pushes order-status changes to clients subscribed to per-order
// rooms over a websocket.
package ws

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"bakehouse-backend/models"
	"bakehouse-backend/pkg/logger"

	"golang.org/x/net/websocket"
)

const (
	eventJoinOrderRoom      = "joinOrderRoom"
	eventLeaveOrderRoom     = "leaveOrderRoom"
	eventOrderStatusUpdated = "orderStatusUpdated"
)

type clientFrame struct {
	Event   string `json:"event"`
	OrderID string `json:"orderId"`
}

// StatusFrame is pushed to every member of an order room after a status
// change. Clients treat it as a refetch hint; last write wins.
type StatusFrame struct {
	Event     string    `json:"event"`
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	Label     string    `json:"label"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type subscriber interface {
	notify(frame StatusFrame)
}

type Hub struct {
	mu     sync.Mutex
	rooms  map[string]map[subscriber]struct{}
	logger *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[subscriber]struct{}),
		logger: log.WithComponent("ws_hub"),
	}
}

// OrderStatusUpdated implements the order service's Notifier.
func (h *Hub) OrderStatusUpdated(orderID string, status models.OrderStatus, updatedAt time.Time) {
	frame := StatusFrame{
		Event:     eventOrderStatusUpdated,
		OrderID:   orderID,
		Status:    string(status),
		Label:     status.Info().Label,
		UpdatedAt: updatedAt,
	}
	h.mu.Lock()
	members := make([]subscriber, 0, len(h.rooms[orderID]))
	for s := range h.rooms[orderID] {
		members = append(members, s)
	}
	h.mu.Unlock()

	for _, s := range members {
		s.notify(frame)
	}
}

func (h *Hub) join(orderID string, s subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[orderID] == nil {
		h.rooms[orderID] = make(map[subscriber]struct{})
	}
	h.rooms[orderID][s] = struct{}{}
}

func (h *Hub) leave(orderID string, s subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[orderID], s)
	if len(h.rooms[orderID]) == 0 {
		delete(h.rooms, orderID)
	}
}

func (h *Hub) leaveAll(s subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for orderID, members := range h.rooms {
		delete(members, s)
		if len(members) == 0 {
			delete(h.rooms, orderID)
		}
	}
}

// peer serializes writes to one connection.
type peer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func (p *peer) notify(frame StatusFrame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.enc.Encode(frame)
}

// Handler returns the websocket endpoint. Clients drive membership with
// joinOrderRoom/leaveOrderRoom frames; unknown events are ignored.
func (h *Hub) Handler() websocket.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		defer conn.Close()

		p := &peer{enc: json.NewEncoder(conn)}
		defer h.leaveAll(p)

		decoder := json.NewDecoder(conn)
		for {
			var frame clientFrame
			if err := decoder.Decode(&frame); err != nil {
				if err != io.EOF {
					h.logger.WithError(err).Debug("dropping websocket connection")
				}
				return
			}
			if frame.OrderID == "" {
				continue
			}
			switch frame.Event {
			case eventJoinOrderRoom:
				h.join(frame.OrderID, p)
			case eventLeaveOrderRoom:
				h.leave(frame.OrderID, p)
			}
		}
	})
}
