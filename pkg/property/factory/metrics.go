package factory

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports resolver activity. A nil *Metrics records nothing.
type Metrics struct {
	resolutions *prometheus.CounterVec
	registered  prometheus.Gauge
}

// NewMetrics creates the registry metrics and registers them with reg.
// Collectors already present in reg are reused, so several registries may
// share one prometheus registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "property",
		Subsystem: "factory",
		Name:      "resolutions_total",
		Help:      "Factory resolutions by the key that produced them",
	}, []string{"outcome"})
	registered := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "property",
		Subsystem: "factory",
		Name:      "registered",
		Help:      "Number of registered property factories",
	})

	m := &Metrics{}
	var err error
	if m.resolutions, err = register(reg, resolutions); err != nil {
		return nil, err
	}
	if m.registered, err = register(reg, registered); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var alreadyRegErr prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegErr) {
			if existing, ok := alreadyRegErr.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) observe(outcome Outcome) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(string(outcome)).Inc()
}

func (m *Metrics) setRegistered(n int) {
	if m == nil {
		return
	}
	m.registered.Set(float64(n))
}
