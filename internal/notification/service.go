package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"MerchantReports/internal/model"
)

// Event kinds.
const (
	KindUpload   = "upload"
	KindGenerate = "generate"
)

// Default number of events kept in the feed.
const DefaultCapacity = 100

// Event is one entry of the activity feed.
type Event struct {
	ID        string          `json:"id"`
	Kind      string          `json:"type"`
	PanelType model.PanelType `json:"panelType,omitempty"`
	Message   string          `json:"message"`
	Data      interface{}     `json:"data,omitempty"`
	Time      time.Time       `json:"time"`
}

type NotificationService struct {
	mu            sync.Mutex
	capacity      int
	notifications []Event
	subscribers   map[int]func(Event)
	nextSub       int
}

// NewNotificationService returns a feed keeping the newest capacity events.
func NewNotificationService(capacity int) *NotificationService {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &NotificationService{
		capacity:      capacity,
		notifications: make([]Event, 0, capacity),
		subscribers:   make(map[int]func(Event)),
	}
}

// Publish stamps e with an id and time when missing, records it and passes it
// to every subscriber. Subscribers run synchronously and must not block.
func (ns *NotificationService) Publish(e Event) Event {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	ns.mu.Lock()
	if len(ns.notifications) == ns.capacity {
		copy(ns.notifications, ns.notifications[1:])
		ns.notifications = ns.notifications[:ns.capacity-1]
	}
	ns.notifications = append(ns.notifications, e)
	subs := make([]func(Event), 0, len(ns.subscribers))
	for _, fn := range ns.subscribers {
		subs = append(subs, fn)
	}
	ns.mu.Unlock()

	for _, fn := range subs {
		fn(e)
	}
	return e
}

// Subscribe registers fn for future events. The returned func removes it.
func (ns *NotificationService) Subscribe(fn func(Event)) func() {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	id := ns.nextSub
	ns.nextSub++
	ns.subscribers[id] = fn
	return func() {
		ns.mu.Lock()
		defer ns.mu.Unlock()
		delete(ns.subscribers, id)
	}
}

// GetNotifications returns recorded events, newest first.
func (ns *NotificationService) GetNotifications() []Event {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	out := make([]Event, len(ns.notifications))
	for i, e := range ns.notifications {
		out[len(out)-1-i] = e
	}
	return out
}

func (ns *NotificationService) ClearNotifications() {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	ns.notifications = ns.notifications[:0]
}
