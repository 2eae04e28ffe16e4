package settings

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOk    = "ok"
	outcomeError = "error"
)

var (
	rescansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moonshine",
		Name:      "rescans_total",
		Help:      "Number of wallet rescans by currency and outcome.",
	}, []string{"currency", "outcome"})

	reconnectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moonshine",
		Name:      "peer_reconnects_total",
		Help:      "Number of peer reconnections by currency and outcome.",
	}, []string{"currency", "outcome"})

	rateFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moonshine",
		Name:      "rate_fetches_total",
		Help:      "Number of exchange rate fetches by source and outcome.",
	}, []string{"source", "outcome"})
)

func outcome(err error) string {
	if err != nil {
		return outcomeError
	}
	return outcomeOk
}
