package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	MembersCreated   prometheus.Counter
	DepositVolume    prometheus.Counter
	WithdrawalVolume prometheus.Counter
	Transactions     *prometheus.CounterVec
	WorkflowReviews  *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		MembersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tontine_members_created_total",
			Help: "Total number of members registered in the cooperative",
		}),
		DepositVolume: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tontine_deposit_volume_total",
			Help: "Total successful deposit volume in minor currency units",
		}),
		WithdrawalVolume: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tontine_withdrawal_volume_total",
			Help: "Total successful withdrawal volume in minor currency units",
		}),
		Transactions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tontine_transactions_total",
			Help: "Journal entries appended, by type",
		}, []string{"type"}),
		WorkflowReviews: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tontine_workflow_reviews_total",
			Help: "Review decisions applied, by workflow and decision",
		}, []string{"workflow", "decision"}),
	}
}

// IncrementMembersCreated increments the member registration counter by 1.
func (m *Metrics) IncrementMembersCreated() {
	if m == nil {
		return
	}
	m.MembersCreated.Inc()
}

// ObserveTransaction records one journal append of the given type.
func (m *Metrics) ObserveTransaction(txType string, amount int64, deposit bool) {
	if m == nil {
		return
	}
	m.Transactions.WithLabelValues(txType).Inc()
	if amount > 0 {
		if deposit {
			m.DepositVolume.Add(float64(amount))
		} else {
			m.WithdrawalVolume.Add(float64(amount))
		}
	}
}

// ObserveReview records one workflow review decision.
func (m *Metrics) ObserveReview(workflow, decision string) {
	if m == nil {
		return
	}
	m.WorkflowReviews.WithLabelValues(workflow, decision).Inc()
}
