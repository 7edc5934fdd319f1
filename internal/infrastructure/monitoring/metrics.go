package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type StoreMetrics struct {
	OperationDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	CustomersCreatedTotal  prometheus.Counter
	CustomerRejectionTotal *prometheus.CounterVec
	CustomersStored        prometheus.Gauge
	StoreAuditIssues       *prometheus.GaugeVec
}

var (
	Store = StoreMetrics{
		OperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "customer_directory_store_operation_duration_seconds",
				Help:    "Histogram of customer store load/save latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation", "status"},
		),
	}

	Business = BusinessMetrics{
		CustomersCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customer_directory_customers_created_total",
				Help: "Total number of customers successfully created.",
			},
		),
		CustomerRejectionTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_directory_customer_rejections_total",
				Help: "Total number of create requests rejected, by reason.",
			},
			[]string{"reason"},
		),
		CustomersStored: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "customer_directory_customers_stored",
				Help: "Number of customers in the store at the last audit.",
			},
		),
		StoreAuditIssues: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "customer_directory_store_audit_issues",
				Help: "Records flagged by the last store audit, by kind.",
			},
			[]string{"kind"},
		),
	}
)

func RecordStoreOperation(operation, status string, duration time.Duration) {
	Store.OperationDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

func RecordCustomerCreated() {
	Business.CustomersCreatedTotal.Inc()
}

func RecordCustomerRejected(reason string) {
	Business.CustomerRejectionTotal.WithLabelValues(reason).Inc()
}

func SetCustomersStored(count int) {
	Business.CustomersStored.Set(float64(count))
}

func SetStoreAuditIssues(kind string, count int) {
	Business.StoreAuditIssues.WithLabelValues(kind).Set(float64(count))
}
