package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/atmledger/internal/domain"
)

// Metrics holds the ledger's Prometheus metrics and implements
// usecase.MetricsRecorder.
type Metrics struct {
	// Transaction metrics
	Transactions      *prometheus.CounterVec
	TransactionAmount *prometheus.HistogramVec
	Rejections        *prometheus.CounterVec

	// Account metrics
	Cash        prometheus.Gauge
	Balance     prometheus.Gauge
	TotalAssets prometheus.Gauge
	Resets      prometheus.Counter

	// Persistence metrics
	PersistenceErrors prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates and registers all metrics on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Transactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atm_transactions_total",
				Help: "Total number of successful transactions by kind",
			},
			[]string{"kind"},
		),
		TransactionAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "atm_transaction_amount",
				Help:    "Transaction amounts",
				Buckets: []float64{1000, 10000, 30000, 50000, 100000, 1000000, 10000000},
			},
			[]string{"kind"},
		),
		Rejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atm_transaction_rejections_total",
				Help: "Total number of rejected transactions by kind and reason",
			},
			[]string{"kind", "reason"},
		),

		Cash: factory.NewGauge(prometheus.GaugeOpts{
			Name: "atm_account_cash",
			Help: "Current cash on hand",
		}),
		Balance: factory.NewGauge(prometheus.GaugeOpts{
			Name: "atm_account_balance",
			Help: "Current bank balance",
		}),
		TotalAssets: factory.NewGauge(prometheus.GaugeOpts{
			Name: "atm_account_total_assets",
			Help: "Current cash plus balance",
		}),
		Resets: factory.NewCounter(prometheus.CounterOpts{
			Name: "atm_resets_total",
			Help: "Total number of resets to defaults",
		}),

		PersistenceErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "atm_persistence_errors_total",
			Help: "Total number of failed state writes",
		}),
	}
}

func (m *Metrics) RecordTransaction(record domain.TransactionRecord, account domain.Account) {
	kind := string(record.Kind)
	m.Transactions.WithLabelValues(kind).Inc()
	m.TransactionAmount.WithLabelValues(kind).Observe(float64(record.Amount))
	m.SetAccount(account)
}

func (m *Metrics) RecordRejection(kind domain.TransactionKind, err error) {
	m.Rejections.WithLabelValues(string(kind), domain.RejectionCode(err)).Inc()
}

func (m *Metrics) RecordReset(account domain.Account) {
	m.Resets.Inc()
	m.SetAccount(account)
}

func (m *Metrics) RecordPersistenceError() {
	m.PersistenceErrors.Inc()
}

// SetAccount updates the account gauges.
func (m *Metrics) SetAccount(account domain.Account) {
	m.Cash.Set(float64(account.Cash))
	m.Balance.Set(float64(account.Balance))
	m.TotalAssets.Set(float64(account.TotalAssets()))
}
