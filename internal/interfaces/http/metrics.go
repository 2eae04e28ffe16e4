package httpinterface

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var panelStreams = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "moonshine",
	Name:      "panel_streams",
	Help:      "Open panel state streams.",
})
