package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vipcleaners/pos-api/internal/application/storage"
)

var _ storage.Recorder = (*Recorder)(nil)

// Recorder contadores de la asignación de ubicaciones.
type Recorder struct {
	registry        *prometheus.Registry
	codesGenerated  *prometheus.CounterVec
	codesValidated  *prometheus.CounterVec
	locationsAssign *prometheus.CounterVec
}

// NewRecorder registra los contadores en un registry propio (más collectors de Go y proceso).
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		codesGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vip_storage_codes_generated_total",
			Help: "Location codes proposed, by generation mode.",
		}, []string{"mode"}),
		codesValidated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vip_storage_codes_validated_total",
			Help: "Location code validations, by result (available, taken, invalid, error).",
		}, []string{"result"}),
		locationsAssign: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vip_storage_locations_assigned_total",
			Help: "Items assigned to a storage location, by mode.",
		}, []string{"mode"}),
	}
}

func (r *Recorder) CodeGenerated(mode string) { r.codesGenerated.WithLabelValues(mode).Inc() }

func (r *Recorder) CodeValidated(result string) { r.codesValidated.WithLabelValues(result).Inc() }

func (r *Recorder) LocationAssigned(mode string) { r.locationsAssign.WithLabelValues(mode).Inc() }

// Handler expone el registry en formato de texto Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
