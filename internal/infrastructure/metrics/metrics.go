package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FulfillmentMetrics bundles every Prometheus series the service exports.
type FulfillmentMetrics struct {
	OrdersCreatedTotal       prometheus.CounterVec
	OrdersCreatedAmountTotal prometheus.CounterVec

	FraudDecisionsTotal prometheus.CounterVec
	FraudScoreHistogram prometheus.HistogramVec

	TransitionsTotal prometheus.CounterVec

	AssignmentsTotal prometheus.CounterVec

	PackagedTotal prometheus.Counter

	DeliveryAttemptsTotal prometheus.CounterVec

	CODCollectedTotal       prometheus.Counter
	CODCollectedAmountTotal prometheus.Counter

	SettlementBatchesTotal     prometheus.Counter
	SettlementBatchAmountTotal prometheus.Counter
	SettlementBatchOrdersTotal prometheus.Counter
}

func NewFulfillmentMetrics() *FulfillmentMetrics {
	return &FulfillmentMetrics{
		OrdersCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fulfillment_orders_created_total",
				Help: "Orders accepted past the fraud gate",
			},
			[]string{"payment_method", "city"},
		),
		OrdersCreatedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fulfillment_orders_created_amount_total",
				Help: "Total amount of accepted orders",
			},
			[]string{"payment_method"},
		),
		FraudDecisionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fulfillment_fraud_decisions_total",
				Help: "Fraud gate decisions",
			},
			[]string{"decision"},
		),
		FraudScoreHistogram: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fulfillment_fraud_score",
				Help:    "Distribution of fraud risk scores",
				Buckets: []float64{0, 15, 25, 50, 75, 100},
			},
			[]string{"decision"},
		),
		TransitionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fulfillment_transitions_total",
				Help: "Order status transitions",
			},
			[]string{"from", "to", "role"},
		),
		AssignmentsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fulfillment_assignments_total",
				Help: "Worker assignments",
			},
			[]string{"role", "auto"},
		),
		PackagedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fulfillment_packaged_total",
				Help: "Packaged parcels recorded",
			},
		),
		DeliveryAttemptsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fulfillment_delivery_attempts_total",
				Help: "Delivery attempts by outcome",
			},
			[]string{"outcome"},
		),
		CODCollectedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fulfillment_cod_collected_total",
				Help: "COD collections recorded",
			},
		),
		CODCollectedAmountTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fulfillment_cod_collected_amount_total",
				Help: "Total cash collected by couriers",
			},
		),
		SettlementBatchesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fulfillment_settlement_batches_total",
				Help: "Settlement batches cleared",
			},
		),
		SettlementBatchAmountTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fulfillment_settlement_batch_amount_total",
				Help: "Total cash cleared through batches",
			},
		),
		SettlementBatchOrdersTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fulfillment_settlement_batch_orders_total",
				Help: "Orders cleared through batches",
			},
		),
	}
}

func (m *FulfillmentMetrics) RecordOrderCreated(paymentMethod, city string, amount float64) {
	m.OrdersCreatedTotal.WithLabelValues(paymentMethod, city).Inc()
	m.OrdersCreatedAmountTotal.WithLabelValues(paymentMethod).Add(amount)
}

func (m *FulfillmentMetrics) RecordFraudDecision(decision string, score int) {
	m.FraudDecisionsTotal.WithLabelValues(decision).Inc()
	m.FraudScoreHistogram.WithLabelValues(decision).Observe(float64(score))
}

func (m *FulfillmentMetrics) RecordTransition(from, to, role string) {
	m.TransitionsTotal.WithLabelValues(from, to, role).Inc()
}

func (m *FulfillmentMetrics) RecordAssignment(role string, auto bool) {
	m.AssignmentsTotal.WithLabelValues(role, strconv.FormatBool(auto)).Inc()
}

func (m *FulfillmentMetrics) RecordPackaged() {
	m.PackagedTotal.Inc()
}

func (m *FulfillmentMetrics) RecordDeliveryAttempt(outcome string) {
	m.DeliveryAttemptsTotal.WithLabelValues(outcome).Inc()
}

func (m *FulfillmentMetrics) RecordCODCollected(amount float64) {
	m.CODCollectedTotal.Inc()
	m.CODCollectedAmountTotal.Add(amount)
}

func (m *FulfillmentMetrics) RecordBatchSettled(total float64, orders int) {
	m.SettlementBatchesTotal.Inc()
	m.SettlementBatchAmountTotal.Add(total)
	m.SettlementBatchOrdersTotal.Add(float64(orders))
}
