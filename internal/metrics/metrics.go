package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by gateways
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}

// Variance holds the counters of weight variance previews.
type Variance struct {
	Previews   *prometheus.CounterVec
	Mismatches prometheus.Counter
}

// NewVariance creates variance preview counters.
func NewVariance() *Variance {
	return &Variance{
		Previews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "variance_previews_total",
			Help: "Weight variance previews by predicted outcome",
		}, []string{"outcome"}),
		Mismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "variance_prediction_mismatch_total",
			Help: "Weight submissions where the backend decision differed from the local preview",
		}),
	}
}

// ObservePreview counts a preview with the given predicted outcome.
func (v *Variance) ObservePreview(outcome string) {
	if v == nil {
		return
	}
	v.Previews.WithLabelValues(outcome).Inc()
}

// ObserveMismatch counts a backend decision that disagreed with the preview.
func (v *Variance) ObserveMismatch() {
	if v == nil {
		return
	}
	v.Mismatches.Inc()
}

// Register registers all collectors in reg.
func Register(reg prometheus.Registerer, rateLimited, retries prometheus.Counter, v *Variance) error {
	for _, c := range []prometheus.Collector{rateLimited, retries, v.Previews, v.Mismatches} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
