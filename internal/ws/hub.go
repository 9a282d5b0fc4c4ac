package ws

import (
	"encoding/json"
	"sync"

	"taskboard/internal/logger"
)

// Hub is the per-process registry of connected sessions, keyed by user id.
// Created at server start, injected into whatever needs to publish. One user
// may hold several sessions (multiple tabs); all of them receive every event
// for that user. No queuing: with no session subscribed the event is dropped.
type Hub struct {
	mu       sync.RWMutex
	sessions map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[int64]map[*Client]struct{}),
	}
}

func (h *Hub) Subscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.sessions[c.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.sessions[c.UserID] = set
	}
	set[c] = struct{}{}
	wsConnections.Inc()

	logger.Debug("ws session subscribed", "user_id", c.UserID, "sessions", len(set))
}

// Unsubscribe removes exactly this session; other sessions of the same user
// stay subscribed.
func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.sessions[c.UserID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.sessions, c.UserID)
	}
	wsConnections.Dec()
}

// Publish delivers ev to every session subscribed for userID. Best-effort:
// a session with a full send buffer is skipped, not waited on.
func (h *Hub) Publish(userID int64, ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		logger.Error("ws event marshal failed", "type", ev.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	set, ok := h.sessions[userID]
	if !ok {
		wsEventsDropped.WithLabelValues(ev.Type).Inc()
		return
	}

	for c := range set {
		select {
		case c.Send <- msg:
			wsEventsPublished.WithLabelValues(ev.Type).Inc()
		default:
			// slow consumer, drop rather than block the caller
			wsEventsDropped.WithLabelValues(ev.Type).Inc()
			logger.Warn("ws send buffer full, event dropped", "user_id", userID, "type", ev.Type)
		}
	}
}

// SessionCount reports how many sessions are subscribed for userID.
func (h *Hub) SessionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userID])
}
