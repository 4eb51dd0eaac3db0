package telemetry

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the given gatherer at /metrics.
func Handler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}

// Serve blocks exposing g's metrics on addr. Processes without their own
// HTTP surface (the queue worker) run this in a goroutine so the pipeline
// counters are scrapeable.
func Serve(logger *log.Logger, addr string, g prometheus.Gatherer) {
	logger.Printf("metrics listening on %s", addr)
	if err := http.ListenAndServe(addr, Handler(g)); err != nil {
		logger.Printf("metrics server stopped: %v", err)
	}
}
