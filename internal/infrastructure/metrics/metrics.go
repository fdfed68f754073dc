package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsProcessed *prometheus.CounterVec
	TransactionAmount     *prometheus.HistogramVec
	TransactionFailures   *prometheus.CounterVec

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsDeleted prometheus.Counter

	// Outbox metrics
	EventsPublished prometheus.Counter
	EventsFailed    prometheus.Counter
	OutboxPending   prometheus.Gauge
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Transaction metrics
		TransactionsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restbank_transactions_processed_total",
				Help: "Total number of processed transactions by type and outcome",
			},
			[]string{"type", "outcome"},
		),
		TransactionAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "restbank_transaction_amount",
				Help:    "Transaction amounts in minor units",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"type"},
		),
		TransactionFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restbank_transaction_failures_total",
				Help: "Total number of failed transactions by type",
			},
			[]string{"type"},
		),

		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "restbank_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "restbank_accounts_deleted_total",
			Help: "Total number of accounts deleted",
		}),

		// Outbox metrics
		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "restbank_events_published_total",
			Help: "Total number of outbox events published",
		}),
		EventsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "restbank_events_failed_total",
			Help: "Total number of outbox events that failed to publish",
		}),
		OutboxPending: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "restbank_outbox_pending",
			Help: "Current number of unpublished outbox events",
		}),
	}
}

// ObserveTransaction records the outcome of a processed transaction.
func (m *Metrics) ObserveTransaction(transactionType string, ok bool, amount int64) {
	outcome := "success"
	if !ok {
		outcome = "failure"
		m.TransactionFailures.WithLabelValues(transactionType).Inc()
	}
	m.TransactionsProcessed.WithLabelValues(transactionType, outcome).Inc()
	if ok && amount > 0 {
		m.TransactionAmount.WithLabelValues(transactionType).Observe(float64(amount))
	}
}
