// Package metrics exports use-case outcomes and the live dashboard as
// prometheus metrics.
package metrics

import (
	"context"

	"github.com/alexanderramin/agencyops/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "agencyops"

// UseCaseObserver counts use-case results and records their durations.
type UseCaseObserver struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ service.UseCaseObserver = (*UseCaseObserver)(nil)

// NewUseCaseObserver creates the observer and registers its metrics with reg.
func NewUseCaseObserver(reg prometheus.Registerer) (*UseCaseObserver, error) {
	o := &UseCaseObserver{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "use_case_total",
			Help:      "Service use cases executed, by outcome.",
		}, []string{"use_case", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "use_case_duration_seconds",
			Help:      "Service use case latency.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"use_case"}),
	}
	for _, c := range []prometheus.Collector{o.total, o.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *UseCaseObserver) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	result := "success"
	switch {
	case !event.Success:
		result = "error"
	case event.Fields["noop"] == true:
		result = "noop"
	}
	o.total.WithLabelValues(event.Name, result).Inc()
	o.duration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
}
