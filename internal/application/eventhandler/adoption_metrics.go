package eventhandler

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fourpaws/shelter-hub/internal/domain/shelter"
)

// AdoptionMetrics считает усыновления и следит за населением приютов.
type AdoptionMetrics struct {
	adoptions  *prometheus.CounterVec
	population *prometheus.GaugeVec
}

// NewAdoptionMetrics регистрирует метрики в reg.
func NewAdoptionMetrics(reg prometheus.Registerer) (*AdoptionMetrics, error) {
	m := &AdoptionMetrics{
		adoptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shelter",
			Name:      "adoptions_total",
			Help:      "Number of adopted animals.",
		}, []string{"shelter", "kind"}),
		population: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "shelter",
			Name:      "animals",
			Help:      "Animals currently waiting in the shelter.",
		}, []string{"shelter"}),
	}

	for _, c := range []prometheus.Collector{m.adoptions, m.population} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// SetPopulation выставляет текущее число животных.
func (m *AdoptionMetrics) SetPopulation(shelterName string, n int) {
	m.population.WithLabelValues(shelterName).Set(float64(n))
}

// Observe подходит как shelter.AdoptionHandler.
func (m *AdoptionMetrics) Observe(sender shelter.Sender, e shelter.AdoptionEvent) error {
	name := e.ShelterName
	if sender != nil {
		name = sender.Name()
	}

	kind := "unknown"
	if e.Animal != nil {
		kind = e.Animal.Kind().String()
	}
	m.adoptions.WithLabelValues(name, kind).Inc()

	if sized, ok := sender.(interface{ Len() int }); ok {
		m.SetPopulation(name, sized.Len())
	}
	return nil
}
