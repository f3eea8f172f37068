package resource

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"MerchantReports/internal/logger"
	"MerchantReports/internal/serviceiface"
	"MerchantReports/internal/store"
)

// ClientCounter is satisfied by the SSE broadcaster.
type ClientCounter interface {
	ClientCount() int
}

// ResourceManager owns the workspace directories and reports store
// usage on a heartbeat.
type ResourceManager struct {
	dirs              map[string]string
	mu                sync.RWMutex
	store             *store.Store
	clients           ClientCounter
	stopChan          chan struct{}
	stopOnce          sync.Once
	heartbeatInterval time.Duration
}

func NewResourceManagerService(cfg map[string]interface{}, st *store.Store, clients ClientCounter) *ResourceManager {
	return &ResourceManager{
		dirs:              make(map[string]string),
		store:             st,
		clients:           clients,
		stopChan:          make(chan struct{}),
		heartbeatInterval: serviceiface.Duration(cfg, "heartbeat_interval", 5*time.Minute),
	}
}

func (rm *ResourceManager) Name() string { return "resourcemanager" }

// AddDir registers a directory that must exist before the gateway serves.
func (rm *ResourceManager) AddDir(key, path string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.dirs[key] = path
}

func (rm *ResourceManager) Dir(key string) (string, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	p, ok := rm.dirs[key]
	return p, ok
}

func (rm *ResourceManager) Start() error {
	rm.mu.RLock()
	for key, path := range rm.dirs {
		if err := os.MkdirAll(path, 0o755); err != nil {
			rm.mu.RUnlock()
			return fmt.Errorf("create %s directory %s: %w", key, path, err)
		}
	}
	rm.mu.RUnlock()

	logger.Audit("ResourceManager started")
	if rm.heartbeatInterval > 0 {
		go rm.heartbeatLoop()
	}
	return nil
}

func (rm *ResourceManager) Stop() error {
	rm.stopOnce.Do(func() { close(rm.stopChan) })
	return nil
}

func (rm *ResourceManager) heartbeatLoop() {
	ticker := time.NewTicker(rm.heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rm.stopChan:
			return
		case <-ticker.C:
			rm.Heartbeat()
		}
	}
}

// Heartbeat logs one snapshot of store and stream usage.
func (rm *ResourceManager) Heartbeat() {
	attrs := []any{"component", "resourcemanager"}
	if rm.store != nil {
		st := rm.store.Stats()
		attrs = append(attrs, "datasets", st.Datasets, "reports", st.Reports)
	}
	if rm.clients != nil {
		attrs = append(attrs, "sse_clients", rm.clients.ClientCount())
	}
	slog.Info("heartbeat", attrs...)
}
