package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CampaignsProvisioned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trendads_campaigns_provisioned_total",
			Help: "Total number of campaigns provisioned successfully",
		},
	)

	ProvisioningFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendads_provisioning_failures_total",
			Help: "Total number of failed provisioning attempts by saga step",
		},
		[]string{"step"},
	)

	RollbacksRun = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trendads_rollbacks_total",
			Help: "Total number of compensating rollbacks executed",
		},
	)

	OrphanedBudgets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trendads_orphaned_budgets_total",
			Help: "Total number of budgets left behind by partial rollbacks",
		},
	)

	CampaignsSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trendads_campaigns_swept_total",
			Help: "Total number of expired campaigns removed by the cleanup sweep",
		},
	)
)
