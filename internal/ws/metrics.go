package ws

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	wsConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_sessions_connected",
			Help: "Currently subscribed websocket sessions",
		},
	)
	wsEventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ws_events_published_total",
			Help: "Events delivered to a session send buffer",
		},
		[]string{"type"},
	)
	wsEventsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ws_events_dropped_total",
			Help: "Events dropped (no subscriber or slow consumer)",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(wsConnections)
	prometheus.MustRegister(wsEventsPublished)
	prometheus.MustRegister(wsEventsDropped)
}
