package stream

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub fans summary-run progress events out to websocket watchers. When a
// redis client is supplied, events also cross instances via pub/sub.
// Published messages carry the originating hub's id so the instance's own
// subscription loop can drop the loopback copy instead of delivering the
// event twice.
type Hub struct {
	id      string
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	RunID string
	Send  chan []byte
}

// originSep separates the origin hub id from the payload on the wire. Hub
// ids are UUIDs, which never contain it.
const originSep = "|"

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		id:      uuid.NewString(),
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(runID string) *Client {
	client := &Client{
		RunID: runID,
		Send:  make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[runID] == nil {
		h.clients[runID] = map[*Client]struct{}{}
	}
	h.clients[runID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if runClients, ok := h.clients[client.RunID]; ok {
		delete(runClients, client)
		if len(runClients) == 0 {
			delete(h.clients, client.RunID)
		}
	}
	close(client.Send)
}

func (h *Hub) Broadcast(runID string, payload []byte) {
	h.deliver(runID, payload)

	if h.redis != nil {
		msg := h.id + originSep + string(payload)
		err := h.redis.Publish(context.Background(), redisChannel(runID), msg).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

// deliver hands a payload to this instance's watchers of a run. Sends stay
// under the read lock so a concurrent Unregister cannot close a channel
// mid-send; they are non-blocking, so the lock is never held on a slow
// watcher.
func (h *Hub) deliver(runID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[runID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "summary:*:events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		origin, payload, tagged := strings.Cut(msg.Payload, originSep)
		if !tagged {
			payload = msg.Payload
		} else if origin == h.id {
			// Local watchers already got this one in Broadcast.
			continue
		}
		h.deliver(runIDFromChannel(msg.Channel), []byte(payload))
	}
}

func redisChannel(runID string) string {
	return "summary:" + runID + ":events"
}

func runIDFromChannel(ch string) string {
	// summary:{run}:events
	const prefix = "summary:"
	const suffix = ":events"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
