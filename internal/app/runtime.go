package app

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"nearbite/go-backend/pkg/models"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

func DefaultLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

// Notification method names published to the rendering layer. The UI
// re-reads the relevant snapshot when it sees one of these.
const (
	NotifySessionChanged = "session.changed"
	NotifyPageChanged    = "page.changed"
	NotifyCartChanged    = "cart.changed"
	NotifyOrderConfirmed = "order.confirmed"
)

type NotificationEvent struct {
	Seq       int64
	Method    string
	Payload   any
	Timestamp time.Time
}

// NotificationHub fans events out to stream subscribers and keeps a bounded
// replay history so reconnecting clients can resume from a cursor. A slow
// subscriber is dropped rather than allowed to block publishers.
type NotificationHub struct {
	mu      sync.Mutex
	nextSeq int64
	limit   int
	history []NotificationEvent
	subs    map[int]chan NotificationEvent
	nextSub int
}

func NewNotificationHub(limit int) *NotificationHub {
	if limit < 1 {
		limit = 1
	}
	return &NotificationHub{
		limit: limit,
		subs:  make(map[int]chan NotificationEvent),
	}
}

func (h *NotificationHub) Publish(method string, payload any) NotificationEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextSeq++
	event := NotificationEvent{
		Seq:       h.nextSeq,
		Method:    method,
		Payload:   payload,
		Timestamp: nowUTC(),
	}
	h.history = append(h.history, event)
	if len(h.history) > h.limit {
		h.history = append([]NotificationEvent(nil), h.history[len(h.history)-h.limit:]...)
	}

	for id, ch := range h.subs {
		select {
		case ch <- event:
		default:
			close(ch)
			delete(h.subs, id)
		}
	}
	return event
}

func (h *NotificationHub) Subscribe(fromSeq int64) ([]NotificationEvent, <-chan NotificationEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	replay := make([]NotificationEvent, 0)
	for _, event := range h.history {
		if event.Seq > fromSeq {
			replay = append(replay, event)
		}
	}

	id := h.nextSub
	h.nextSub++
	ch := make(chan NotificationEvent, 128)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			close(sub)
			delete(h.subs, id)
		}
	}
	return replay, ch, cancel
}

func (h *NotificationHub) BacklogSize() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.history)
}

var (
	promLogins = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nearbite_logins_total",
		Help: "Successful login submissions.",
	})
	promCartAdds = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nearbite_cart_adds_total",
		Help: "Cart add operations, merges included.",
	})
	promOrders = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nearbite_orders_confirmed_total",
		Help: "Orders materialized from a cart.",
	})
	promRevenueSen = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nearbite_order_revenue_sen_total",
		Help: "Confirmed order revenue in sen.",
	})
	promErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nearbite_errors_total",
		Help: "Operation errors by category.",
	}, []string{"category"})

	registerMetricsOnce sync.Once
)

// RegisterMetrics attaches the process counters to reg. Safe to call more
// than once; only the first registration takes effect.
func RegisterMetrics(reg prometheus.Registerer) {
	registerMetricsOnce.Do(func() {
		reg.MustRegister(promLogins, promCartAdds, promOrders, promRevenueSen, promErrors)
	})
}

// Error categories tracked by MetricsState.
const (
	ErrorCategoryValidation = "validation"
	ErrorCategoryIndex      = "index"
	ErrorCategoryThrottle   = "throttle"
)

// MetricsState mirrors the Prometheus counters into an in-process snapshot
// the UI can fetch over RPC.
type MetricsState struct {
	mu              sync.RWMutex
	logins          int
	logouts         int
	cartAdds        int
	cartRemovals    int
	ordersConfirmed int
	revenueSen      int64
	errorCounters   map[string]int
	startedAt       time.Time
}

func NewMetricsState() *MetricsState {
	return &MetricsState{
		errorCounters: map[string]int{
			ErrorCategoryValidation: 0,
			ErrorCategoryIndex:      0,
			ErrorCategoryThrottle:   0,
		},
		startedAt: nowUTC(),
	}
}

func (m *MetricsState) RecordLogin() {
	m.mu.Lock()
	m.logins++
	m.mu.Unlock()
	promLogins.Inc()
}

func (m *MetricsState) RecordLogout() {
	m.mu.Lock()
	m.logouts++
	m.mu.Unlock()
}

func (m *MetricsState) RecordCartAdd() {
	m.mu.Lock()
	m.cartAdds++
	m.mu.Unlock()
	promCartAdds.Inc()
}

func (m *MetricsState) RecordCartRemoval() {
	m.mu.Lock()
	m.cartRemovals++
	m.mu.Unlock()
}

func (m *MetricsState) RecordOrderConfirmed(totalSen int64) {
	m.mu.Lock()
	m.ordersConfirmed++
	m.revenueSen += totalSen
	m.mu.Unlock()
	promOrders.Inc()
	promRevenueSen.Add(float64(totalSen))
}

func (m *MetricsState) RecordError(category string) {
	m.mu.Lock()
	m.errorCounters[category] = m.errorCounters[category] + 1
	m.mu.Unlock()
	promErrors.WithLabelValues(category).Inc()
}

func (m *MetricsState) Snapshot() models.MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counters := make(map[string]int, len(m.errorCounters))
	for k, v := range m.errorCounters {
		counters[k] = v
	}
	return models.MetricsSnapshot{
		Logins:          m.logins,
		Logouts:         m.logouts,
		CartAdds:        m.cartAdds,
		CartRemovals:    m.cartRemovals,
		OrdersConfirmed: m.ordersConfirmed,
		RevenueSen:      m.revenueSen,
		ErrorCounters:   counters,
		StartedAt:       m.startedAt,
	}
}
