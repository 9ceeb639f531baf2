package payments

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initiationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_payment_initiations_total",
		Help: "Collection initiation attempts by result",
	}, []string{"result"})

	callbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_payment_callbacks_total",
		Help: "Provider callbacks by reconciliation outcome",
	}, []string{"outcome"})
)
