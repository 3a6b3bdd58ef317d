package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WSConnections tracks currently open websocket connections.
var WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "codecollab_ws_connections",
	Help: "Open websocket connections.",
})

// WSEvents counts inbound relay events by event name.
var WSEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "codecollab_ws_events_total",
	Help: "Inbound websocket events by name.",
}, []string{"event"})

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
