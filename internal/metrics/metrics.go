package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters recorded while planning and applying routing
// settings.
type Metrics struct {
	Projections *prometheus.CounterVec
	Commands    *prometheus.CounterVec
	Skipped     *prometheus.CounterVec
}

// New registers the mailroute counters on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Projections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mailroute_projections_total",
			Help: "Settings objects projected into command parameters",
		}, []string{"kind", "operation"}),
		Commands: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mailroute_commands_total",
			Help: "Remote commands invoked, by result",
		}, []string{"kind", "operation", "result"}),
		Skipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mailroute_skipped_total",
			Help: "Settings objects left out of a plan",
		}, []string{"kind"}),
	}
}

// WriteTextfile writes everything gathered by g to path in the
// node-exporter textfile collector format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
