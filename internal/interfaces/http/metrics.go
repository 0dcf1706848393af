package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas Prometheus de la superficie HTTP. La instrumentación es ambiental:
// cuenta operaciones del motor y peticiones, sin tocar la semántica.
var (
	opRegistered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bodega",
		Name:      "operations_total",
		Help:      "Operaciones del motor completadas con éxito, por tipo.",
	}, []string{"operation"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bodega",
		Name:      "http_requests_total",
		Help:      "Peticiones HTTP atendidas, por método y código de estado.",
	}, []string{"method", "status"})
)
