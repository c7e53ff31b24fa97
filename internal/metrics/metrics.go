package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cultivo_http_requests_total",
			Help: "Total de requests HTTP por método, ruta y status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cultivo_http_request_duration_seconds",
			Help:    "Duración de requests HTTP en segundos.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RegistrosAppended = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cultivo_registros_appended_total",
			Help: "Entradas agregadas al historial, por tipo.",
		},
		[]string{"kind"},
	)

	PotConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cultivo_pot_conflicts_total",
			Help: "Intentos de asignar una maceta ya ocupada por un cultivo activo.",
		},
	)
)
