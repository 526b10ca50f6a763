// Package metrics exposes Prometheus instrumentation for persistence
// traversals and the streams they run over.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ssargent/freyjastate/pkg/persistence"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the persistence engine
type Metrics struct {
	bytesWritten prometheus.Counter
	bytesRead    prometheus.Counter

	traversalsTotal *prometheus.CounterVec
}

// NewMetrics creates the engine metrics and registers them with reg. A nil
// reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		bytesWritten: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "freyjastate_bytes_written_total",
				Help: "Total number of bytes written by store contexts",
			},
		),

		bytesRead: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "freyjastate_bytes_read_total",
				Help: "Total number of bytes read by restore and ignore contexts",
			},
		),

		traversalsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "freyjastate_traversals_total",
				Help: "Total number of completed traversals",
			},
			[]string{"direction", "status"},
		),
	}
}

// InstrumentWriter returns a writer that counts every byte accepted by w.
func (m *Metrics) InstrumentWriter(w io.Writer) io.Writer {
	return &countingWriter{w: w, counter: m.bytesWritten}
}

// InstrumentReader returns a reader that counts every byte returned by r.
func (m *Metrics) InstrumentReader(r io.Reader) io.Reader {
	return &countingReader{r: r, counter: m.bytesRead}
}

// ObserveTraversal records the outcome of one traversal.
func (m *Metrics) ObserveTraversal(direction persistence.Direction, err error) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	m.traversalsTotal.WithLabelValues(direction.String(), status).Inc()
}

type countingWriter struct {
	w       io.Writer
	counter prometheus.Counter
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	if n > 0 {
		cw.counter.Add(float64(n))
	}
	return n, err
}

type countingReader struct {
	r       io.Reader
	counter prometheus.Counter
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.counter.Add(float64(n))
	}
	return n, err
}
