package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/abel-getahun/minefield-api/message"
)

// Hub tracks every live connection by socket ID and fans envelopes out to
// them. It is the service's Notifier.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

// Notify marshals the envelope once and writes it to every addressed client.
// Failures are reported as a single batch outcome; a disconnected or failing
// recipient does not stop delivery to the rest.
func (h *Hub) Notify(_ context.Context, to []string, env message.Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding %s envelope: %w", env.Kind, err)
	}

	failed := 0
	for _, id := range to {
		h.mu.RLock()
		client, ok := h.clients[id]
		h.mu.RUnlock()

		if !ok {
			h.logger.Debug().Str("socket", id).Msg("recipient not connected")
			failed++
			continue
		}
		if err := client.send(payload); err != nil {
			h.logger.Debug().Err(err).Str("socket", id).Msg("write failed")
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("delivery failed for %d of %d recipients", failed, len(to))
	}
	return nil
}
