package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "relay"

const (
	DropReasonQueueFull = "queue_full"
	DropReasonClosed    = "closed"

	DropReasonInvalid     = "invalid"
	DropReasonRateLimited = "rate_limited"
	DropReasonIgnored     = "ignored"
)

type Metrics struct {
	rooms       prometheus.Gauge
	connections prometheus.Gauge
	received    *prometheus.CounterVec
	dropped     *prometheus.CounterVec
	gatherer    prometheus.Gatherer
}

// New registers relay collectors on reg. A nil reg gets a private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms",
			Help:      "Number of live rooms.",
		}),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Number of registered websocket connections.",
		}),
		received: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Inbound messages by type.",
		}, []string{"type"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_dropped_total",
			Help:      "Messages the relay did not deliver or handle, by reason.",
		}, []string{"reason"}),
		gatherer: reg,
	}

	reg.MustRegister(m.rooms, m.connections, m.received, m.dropped)

	return m
}

func (m *Metrics) RoomOpened() {
	m.rooms.Inc()
}

func (m *Metrics) RoomClosed() {
	m.rooms.Dec()
}

func (m *Metrics) Connected() {
	m.connections.Inc()
}

func (m *Metrics) Disconnected() {
	m.connections.Dec()
}

func (m *Metrics) MessageReceived(msgType string) {
	m.received.WithLabelValues(msgType).Inc()
}

func (m *Metrics) MessageDropped(reason string) {
	m.dropped.WithLabelValues(reason).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
