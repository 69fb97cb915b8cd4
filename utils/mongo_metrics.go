package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.mongodb.org/mongo-driver/event"
)

var (
	MongoConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mongo_pool_connections_open",
			Help: "Connections currently open in the MongoDB pool",
		},
	)

	MongoConnectionsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mongo_pool_connections_in_use",
			Help: "Connections currently checked out of the MongoDB pool",
		},
	)

	MongoPoolEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongo_pool_events_total",
			Help: "MongoDB connection pool events by type",
		},
		[]string{"type"},
	)
)

// NewPoolMonitor feeds driver pool events into the pool metrics.
func NewPoolMonitor() *event.PoolMonitor {
	return &event.PoolMonitor{
		Event: func(evt *event.PoolEvent) {
			MongoPoolEvents.WithLabelValues(evt.Type).Inc()

			switch evt.Type {
			case event.ConnectionCreated:
				MongoConnectionsOpen.Inc()
			case event.ConnectionClosed:
				MongoConnectionsOpen.Dec()
			case event.GetSucceeded:
				MongoConnectionsInUse.Inc()
			case event.ConnectionReturned:
				MongoConnectionsInUse.Dec()
			}
		},
	}
}
