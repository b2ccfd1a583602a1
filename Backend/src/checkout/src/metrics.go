package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ahinestrog/possale/Backend/src/store"
)

type Metrics struct {
	registry  *prometheus.Registry
	Checkouts *prometheus.CounterVec
	Amount    prometheus.Counter
	Items     prometheus.Histogram
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "possale",
		Name:      "checkout_total",
		Help:      "Checkout attempts by outcome (ok or the failure kind).",
	}, []string{"outcome"})
	amount := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "possale",
		Name:      "checkout_amount_total",
		Help:      "Sum of settled totals, shipping included.",
	})
	items := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "possale",
		Name:      "checkout_items",
		Help:      "Units per settled checkout.",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
	})
	reg.MustRegister(checkouts, amount, items)
	return &Metrics{registry: reg, Checkouts: checkouts, Amount: amount, Items: items}
}

func (m *Metrics) observeSuccess(r *store.Receipt) {
	m.Checkouts.WithLabelValues("ok").Inc()
	total, _ := r.Total.Float64()
	m.Amount.Add(total)
	m.Items.Observe(float64(r.ItemCount()))
}

func (m *Metrics) observeFailure(err error) {
	m.Checkouts.WithLabelValues(store.KindOf(err).String()).Inc()
}

// WriteTextfile dumps the registry for the node-exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
