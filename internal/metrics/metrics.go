// Package metrics exposes Prometheus collectors for allocations, warehouse
// load and HTTP traffic on a dedicated registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"agrilogistics/internal/core/application/usecases/queries"
	"agrilogistics/internal/core/domain/model/warehouse"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "agri"

// Outcome label of a successful allocation. Failures use the handler's
// failure reason.
const OutcomeAllocated = "allocated"

type Metrics struct {
	registry *prometheus.Registry

	allocations   *prometheus.CounterVec
	etaMinutes    *prometheus.HistogramVec
	distanceKm    prometheus.Histogram
	warehouseLoad *prometheus.GaugeVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New registers every collector, plus the Go and process collectors, on a
// fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		allocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "allocations_total", Help: "Allocation attempts by outcome."},
			[]string{"outcome"},
		),
		etaMinutes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "allocation_eta_minutes", Help: "ETA of allocated orders in minutes.",
				Buckets: []float64{20, 30, 45, 60, 90, 120, 240, 480, 960, 1920},
			},
			[]string{"region"},
		),
		distanceKm: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "allocation_distance_km", Help: "Farmer to warehouse distance of allocated orders.",
				Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2000},
			},
		),
		warehouseLoad: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Namespace: namespace, Name: "warehouse_load_percent", Help: "Warehouse utilisation in percent."},
			[]string{"warehouse", "region"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
			[]string{"method", "path", "status"},
		),
	}

	m.registry.MustRegister(
		m.allocations,
		m.etaMinutes,
		m.distanceKm,
		m.warehouseLoad,
		m.httpRequests,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// AllocationSucceeded implements commands.AllocationObserver.
func (m *Metrics) AllocationSucceeded(region warehouse.Region, distanceKm float64, etaMinutes int) {
	m.allocations.WithLabelValues(OutcomeAllocated).Inc()
	m.etaMinutes.WithLabelValues(region.String()).Observe(float64(etaMinutes))
	m.distanceKm.Observe(distanceKm)
}

// AllocationFailed implements commands.AllocationObserver.
func (m *Metrics) AllocationFailed(reason string) {
	m.allocations.WithLabelValues(reason).Inc()
}

// RecordWarehouseLoad replaces the load gauges with the given snapshot so
// removed warehouses disappear.
func (m *Metrics) RecordWarehouseLoad(views []queries.WarehouseView) {
	m.warehouseLoad.Reset()
	for _, v := range views {
		m.warehouseLoad.WithLabelValues(v.Name, v.Region.String()).Set(v.LoadPercent)
	}
}

// ObserveHTTP records one served request. path is the route template.
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, path, code).Inc()
	m.httpDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}
