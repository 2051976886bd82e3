package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ServicesLoaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modlaunch_services_loaded_total",
		Help: "Services driven through the load phase, by outcome.",
	}, []string{"result"})

	TransformersRegistered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modlaunch_transformers_registered_total",
		Help: "Transformer registrations accepted into the store, by target type.",
	}, []string{"target_type"})

	ScanResources = promauto.NewCounter(prometheus.CounterOpts{
		Name: "modlaunch_scan_resources_total",
		Help: "Resources surfaced by service scan phases.",
	})
)

func Expose(port int) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		_ = http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
	}()
}
