package dashboard

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"MerchantReports/api/constants"
	"MerchantReports/internal/notification"
)

// Per-client queue length; events beyond it are dropped for that client.
const clientBuffer = 16

type SSEClient struct {
	id   string
	send chan []byte
}

type SSEServer struct {
	mu           sync.RWMutex
	clients      map[string]*SSEClient
	pingInterval time.Duration
	stopCh       chan struct{}
	stopOnce     sync.Once
}

// NewSSEServer returns a broadcaster that pings idle clients every pingInterval.
func NewSSEServer(pingInterval time.Duration) *SSEServer {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &SSEServer{
		clients:      make(map[string]*SSEClient),
		pingInterval: pingInterval,
		stopCh:       make(chan struct{}),
	}
}

// Attach forwards every event published on feed to connected clients.
func (s *SSEServer) Attach(feed *notification.NotificationService) func() {
	return feed.Subscribe(func(e notification.Event) {
		s.Broadcast(e)
	})
}

// HandleSSE handles SSE connections
func (s *SSEServer) HandleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set(constants.ContentTypeText, constants.ContentTypeSSE)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	client := &SSEClient{
		id:   uuid.NewString(),
		send: make(chan []byte, clientBuffer),
	}
	s.mu.Lock()
	s.clients[client.id] = client
	s.mu.Unlock()
	slog.Info("sse client connected", "client_id", client.id, "remote", r.RemoteAddr)

	defer func() {
		s.remove(client)
		slog.Info("sse client disconnected", "client_id", client.id)
	}()

	if err := writeEvent(w, flusher, map[string]interface{}{
		"type":    "connected",
		"message": "SSE connection established",
		"time":    time.Now().Format(time.RFC3339),
	}); err != nil {
		return
	}

	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case msg := <-client.send:
			if _, err := fmt.Fprintf(w, "data: %s\n\n", msg); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if err := writeEvent(w, flusher, map[string]interface{}{
				"type": "ping",
				"time": time.Now().Format(time.RFC3339),
			}); err != nil {
				return
			}
		case <-r.Context().Done():
			return
		case <-s.stopCh:
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// Broadcast queues data for every connected client without blocking.
func (s *SSEServer) Broadcast(data interface{}) {
	msg, err := json.Marshal(data)
	if err != nil {
		slog.Error("sse marshal", "error", err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, c := range s.clients {
		select {
		case c.send <- msg:
		default:
			slog.Warn("sse client queue full, dropping event", "client_id", id)
		}
	}
}

func (s *SSEServer) remove(c *SSEClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clients[c.id] == c {
		delete(s.clients, c.id)
	}
}

// ClientCount returns the number of connected clients
func (s *SSEServer) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Stop disconnects every client. It is safe to call more than once.
func (s *SSEServer) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}
