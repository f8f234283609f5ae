package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "edp_api_"

var (
	registerOnce sync.Once

	edpCreatedTotal prometheus.Counter
	edpDeletedTotal prometheus.Counter

	transitionsTotal  *prometheus.CounterVec
	transitionLatency prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
)

// Init registra las métricas de la aplicación. Idempotente.
func Init() {
	registerOnce.Do(func() {
		edpCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "edp_created_total",
			Help: "Total de EDPs creados",
		})
		edpDeletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "edp_deleted_total",
			Help: "Total de EDPs en Borrador eliminados",
		})
		transitionsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "transitions_total",
				Help: "Transiciones de estado por origen, destino y resultado",
			},
			[]string{"desde", "hacia", "result"},
		)
		transitionLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "transition_latency_seconds",
			Help:    "Latencia de las transiciones de estado en segundos",
			Buckets: prometheus.DefBuckets,
		})
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Peticiones HTTP por método, ruta y código de estado",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "Duración de las peticiones HTTP en segundos",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)

		prometheus.MustRegister(
			edpCreatedTotal,
			edpDeletedTotal,
			transitionsTotal,
			transitionLatency,
			httpRequests,
			httpLatency,
		)
	})
}

// EDPCreated incrementa el contador de EDPs creados.
func EDPCreated() {
	if edpCreatedTotal != nil {
		edpCreatedTotal.Inc()
	}
}

// EDPDeleted incrementa el contador de EDPs eliminados.
func EDPDeleted() {
	if edpDeletedTotal != nil {
		edpDeletedTotal.Inc()
	}
}

// Transition registra una transición de estado con su resultado y duración.
func Transition(desde, hacia string, ok bool, elapsed time.Duration) {
	if transitionsTotal == nil {
		return
	}
	result := "success"
	if !ok {
		result = "error"
	}
	transitionsTotal.WithLabelValues(desde, hacia, result).Inc()
	transitionLatency.Observe(elapsed.Seconds())
}

// HTTPRequest registra una petición HTTP atendida.
func HTTPRequest(method, route, status string, elapsed time.Duration) {
	if httpRequests == nil {
		return
	}
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
