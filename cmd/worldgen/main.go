package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/annel0/fortress-slice/internal/config"
	"github.com/annel0/fortress-slice/internal/game"
	"github.com/annel0/fortress-slice/internal/logging"
	"github.com/annel0/fortress-slice/internal/metrics"
	"github.com/annel0/fortress-slice/internal/observability"
	"github.com/annel0/fortress-slice/internal/render"
	"github.com/prometheus/client_golang/prometheus"
)

var version = "dev"

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config (falls back to FORTRESS_CONFIG)")
		seed       = flag.Int64("seed", 0, "Override noise seed (0 keeps config value)")
		sweep      = flag.Bool("sweep", false, "Walk the viewer from the bottom layer to the top and back")
		slices     = flag.Bool("slices", false, "Print an ASCII slice for every visited height")
		otelOn     = flag.Bool("otel", false, "Export traces over OTLP/HTTP")
		serve      = flag.Bool("serve-metrics", false, "Keep running and serve Prometheus metrics until interrupted")
	)
	flag.Parse()

	if err := logging.InitDefaultLogger("worldgen"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if *seed != 0 {
		cfg.Noise.Seed = *seed
	}

	ctx := context.Background()
	if *otelOn {
		shutdown, err := observability.InitTelemetry(ctx, observability.Options{
			ServiceName:    "fortress-worldgen",
			ServiceVersion: version,
			Endpoint:       cfg.Telemetry.Endpoint,
			Insecure:       cfg.Telemetry.Insecure,
			SampleRatio:    cfg.Telemetry.SampleRatio,
		})
		if err != nil {
			log.Fatalf("❌ Ошибка инициализации OpenTelemetry: %v", err)
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				logging.Warn("Ошибка остановки OpenTelemetry: %v", err)
			}
		}()
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	w, err := game.GenerateWorld(ctx, cfg, m)
	if err != nil {
		log.Fatalf("❌ Ошибка генерации мира: %v", err)
	}

	lo, hi := w.Heightmap().MinMax()
	fmt.Printf("world %s  size %dx%d  heights %v  surface %d..%d  seed %d\n",
		w.ID, w.Size().W, w.Size().D, w.Heights(), lo, hi, cfg.Noise.Seed)
	fmt.Print(render.Heightmap(w.Heightmap()))

	initial, err := cfg.InitialHeight()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	session, err := game.NewSession(w, initial, m)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	report(session, *slices)

	if *sweep {
		runSweep(session, *slices)
	}

	if ps, err := metrics.NewProcessStats(); err == nil {
		snap, _ := ps.Snapshot()
		logging.Info("📈 %s", snap)
	}

	if *serve {
		addr := fmt.Sprintf(":%d", cfg.Metrics.GetMetricsPort())
		stop := metrics.Serve(addr, reg)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logging.Info("📡 Получен сигнал %v, завершение работы...", sig)
		if err := stop(ctx); err != nil {
			logging.Error("❌ Ошибка остановки сервера метрик: %v", err)
		}
	}
}

// runSweep поднимает зрителя до верхнего слоя и опускает обратно, по одному слою за кадр
func runSweep(s *game.Session, slices bool) {
	top := s.World().Heights().Top()
	for s.Viewed() < top {
		s.Apply(game.RaiseHeight)
		report(s, slices)
	}
	bottom := s.World().Heights().Min
	for s.Viewed() > bottom {
		s.Apply(game.LowerHeight)
		report(s, slices)
	}
}

func report(s *game.Session, slices bool) {
	res, changed := s.Frame()
	if !changed {
		return
	}
	v := res.Visibility
	fmt.Printf("height %3d  %-7s  shown %5d  hidden %5d  shadows %5d\n",
		v.Height, v.Transition, v.Shown, v.Hidden, res.Overlay.Len())
	if slices {
		fmt.Print(render.Slice(s.World(), res.Overlay, v.Height))
	}
}
