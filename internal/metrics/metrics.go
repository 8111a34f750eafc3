package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/l1jgo/typereg/internal/core/ecs"
)

// Metrics publishes registry counts. Observe is called from the tick loop;
// the gauges themselves are safe to scrape concurrently.
type Metrics struct {
	reg       *prometheus.Registry
	instances *prometheus.GaugeVec
	types     prometheus.Gauge
	destroyed prometheus.Counter
	ticks     prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		instances: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "typereg_instances",
				Help: "Live registered instances per component type",
			},
			[]string{"type"},
		),
		types: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "typereg_registries",
			Help: "Number of per-type registries created",
		}),
		destroyed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "typereg_entities_destroyed_total",
			Help: "Entities destroyed by the cleanup phase",
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "typereg_ticks_total",
			Help: "Completed simulation ticks",
		}),
	}
	m.reg.MustRegister(m.instances, m.types, m.destroyed, m.ticks)
	return m
}

// Observe records a Table.Stats snapshot.
func (m *Metrics) Observe(stats []ecs.TypeStats) {
	m.types.Set(float64(len(stats)))
	for _, s := range stats {
		m.instances.WithLabelValues(s.Type).Set(float64(s.Count))
	}
}

func (m *Metrics) AddDestroyed(n int) { m.destroyed.Add(float64(n)) }

func (m *Metrics) IncTick() { m.ticks.Inc() }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, log *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
