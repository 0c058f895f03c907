package service

import "github.com/prometheus/client_golang/prometheus"

// Ingestion outcomes recorded in upload_ingestions_total.
const (
	outcomeSuccess         = "success"
	outcomeValidationError = "validation_error"
	outcomeStorageError    = "storage_error"
	outcomeDatabaseError   = "database_error"
)

// Metrics counts ingestion attempts by outcome.
type Metrics struct {
	ingestions *prometheus.CounterVec
}

// NewMetrics registers the ingestion counters on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ingestions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upload_ingestions_total",
				Help: "Upload ingestion attempts by outcome.",
			},
			[]string{"outcome"},
		),
	}
	if err := reg.Register(m.ingestions); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.ingestions.WithLabelValues(outcome).Inc()
}
