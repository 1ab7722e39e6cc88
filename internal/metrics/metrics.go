package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/annel0/fortress-slice/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fortress"

// Metrics инкапсулирует Prometheus-метрики генерации мира, видимости и теней.
// Все методы безопасны для nil-получателя: компоненты работают и без метрик.
type Metrics struct {
	generationSeconds prometheus.Histogram
	visibilityUpdates *prometheus.CounterVec
	tilesShown        prometheus.Counter
	tilesHidden       prometheus.Counter
	viewedHeight      prometheus.Gauge
	shadowRebuilds    prometheus.Counter
	shadowTiles       prometheus.Gauge
}

// New создаёт метрики и регистрирует их в reg (если reg != nil)
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "worldgen_duration_seconds",
			Help:      "Длительность генерации карты высот и построения слоёв.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),
		visibilityUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visibility_updates_total",
			Help:      "Число обновлений видимости по типу перехода.",
		}, []string{"transition"}),
		tilesShown: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visibility_tiles_shown_total",
			Help:      "Тайлы, ставшие видимыми.",
		}),
		tilesHidden: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visibility_tiles_hidden_total",
			Help:      "Тайлы, ставшие скрытыми.",
		}),
		viewedHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "viewed_height",
			Help:      "Текущий просматриваемый слой.",
		}),
		shadowRebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shadow_rebuilds_total",
			Help:      "Число полных перестроений слоя теней.",
		}),
		shadowTiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "shadow_tiles",
			Help:      "Количество тайлов в текущем слое теней.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.generationSeconds,
			m.visibilityUpdates,
			m.tilesShown,
			m.tilesHidden,
			m.viewedHeight,
			m.shadowRebuilds,
			m.shadowTiles,
		)
	}
	return m
}

// ObserveGeneration фиксирует длительность генерации мира
func (m *Metrics) ObserveGeneration(d time.Duration) {
	if m == nil {
		return
	}
	m.generationSeconds.Observe(d.Seconds())
}

// ObserveVisibility фиксирует одно обновление видимости
func (m *Metrics) ObserveVisibility(transition string, viewed, shown, hidden int) {
	if m == nil {
		return
	}
	m.visibilityUpdates.WithLabelValues(transition).Inc()
	m.tilesShown.Add(float64(shown))
	m.tilesHidden.Add(float64(hidden))
	m.viewedHeight.Set(float64(viewed))
}

// ObserveShadow фиксирует перестроение слоя теней
func (m *Metrics) ObserveShadow(tiles int) {
	if m == nil {
		return
	}
	m.shadowRebuilds.Inc()
	m.shadowTiles.Set(float64(tiles))
}

// Serve запускает HTTP-эндпоинт /metrics в отдельной горутине.
// Возвращает функцию остановки сервера.
func Serve(addr string, gatherer prometheus.Gatherer) func(context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logging.Info("📊 Prometheus метрики доступны на http://%s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("❌ Ошибка HTTP-сервера метрик: %v", err)
		}
	}()

	return srv.Shutdown
}
