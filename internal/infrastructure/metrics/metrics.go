package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Operation metrics
	OperationsExecuted *prometheus.CounterVec
	OperationsRejected *prometheus.CounterVec
	OperationDuration  *prometheus.HistogramVec
	OperationAmount    *prometheus.HistogramVec

	// Account metrics
	AccountsOpened prometheus.Counter

	// Loan metrics
	LoansRequested prometheus.Counter
	LoansApproved  prometheus.Counter
	LoansRepaid    prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Notification metrics
	EventsPublished *prometheus.CounterVec
	PublishFailures *prometheus.CounterVec

	// Reconciliation metrics
	ReconciliationRuns      prometheus.Counter
	ReconciliationDrift     prometheus.Gauge
	UnreconciledAccounts    prometheus.Gauge
	LedgerConsistencyChecks *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Operation metrics
		OperationsExecuted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_operations_total",
				Help: "Total number of executed operations by kind",
			},
			[]string{"kind"},
		),
		OperationsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_operations_rejected_total",
				Help: "Total number of rejected operations by kind and constraint",
			},
			[]string{"kind", "constraint"},
		),
		OperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankcore_operation_duration_seconds",
				Help:    "Duration of ledger operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		OperationAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankcore_operation_amount",
				Help:    "Operation amounts",
				Buckets: []float64{100, 500, 1000, 5000, 10000, 20000, 100000},
			},
			[]string{"kind"},
		),

		// Account metrics
		AccountsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),

		// Loan metrics
		LoansRequested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_loans_requested_total",
			Help: "Total number of loan requests",
		}),
		LoansApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_loans_approved_total",
			Help: "Total number of loan approvals",
		}),
		LoansRepaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_loans_repaid_total",
			Help: "Total number of loan repayments",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankcore_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Notification metrics
		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_events_published_total",
				Help: "Total notification events published by type",
			},
			[]string{"event_type"},
		),
		PublishFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_event_publish_failures_total",
				Help: "Total notification publish failures by type",
			},
			[]string{"event_type"},
		),

		// Reconciliation metrics
		ReconciliationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_reconciliation_runs_total",
			Help: "Total reconciliation runs",
		}),
		ReconciliationDrift: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "bankcore_reconciliation_drift",
			Help: "Absolute difference between balances and replayed entry deltas",
		}),
		UnreconciledAccounts: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "bankcore_unreconciled_accounts",
			Help: "Number of accounts whose balance does not match their history",
		}),
		LedgerConsistencyChecks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_ledger_consistency_checks_total",
				Help: "Total ledger consistency checks by result",
			},
			[]string{"result"},
		),
	}
}
