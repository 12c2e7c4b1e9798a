package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business counters for the back-office workflows. HTTP-level metrics
// live in the metrics middleware.
var (
	DepositsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinicdesk_deposits_created_total",
		Help: "Total number of bank deposit records created",
	})

	DaysClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinicdesk_days_closed_total",
		Help: "Total number of day closing runs",
	})

	StockMovements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinicdesk_stock_movements_total",
		Help: "Total number of inventory movements recorded",
	}, []string{"type"})

	SalesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinicdesk_sales_created_total",
		Help: "Total number of sales recorded",
	})

	ActivitiesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinicdesk_activities_deleted_total",
		Help: "Total number of sales or movements reversed and deleted",
	})

	TreatmentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinicdesk_treatments_created_total",
		Help: "Total number of treatments recorded",
	})

	ConsistencyDiscrepancies = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "clinicdesk_consistency_discrepancies",
		Help: "Products whose stock counter disagrees with the movement log at the last check",
	})
)
