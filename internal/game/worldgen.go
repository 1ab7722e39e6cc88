package game

import (
	"context"
	"time"

	"github.com/annel0/fortress-slice/internal/config"
	"github.com/annel0/fortress-slice/internal/logging"
	"github.com/annel0/fortress-slice/internal/metrics"
	"github.com/annel0/fortress-slice/internal/world"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/annel0/fortress-slice/internal/game"

// GenerateWorld генерирует карту высот и строит слои по конфигурации.
// Span'ы пишутся в глобальный TracerProvider (noop, если телеметрия не включена).
func GenerateWorld(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*world.World, error) {
	genCfg := cfg.GeneratorConfig()

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "worldgen", trace.WithAttributes(
		attribute.Int64("worldgen.seed", genCfg.Seed),
		attribute.Int("worldgen.width", genCfg.Size.W),
		attribute.Int("worldgen.depth", genCfg.Size.D),
		attribute.Int("worldgen.layers", genCfg.Heights.Len()),
		attribute.Float64("worldgen.scale", genCfg.Scale),
	))
	defer span.End()

	start := time.Now()

	gen, err := world.NewHeightmapGenerator(genCfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid generator config")
		return nil, err
	}

	_, hmSpan := tracer.Start(ctx, "worldgen.heightmap")
	hm := gen.Generate()
	hmSpan.End()

	_, buildSpan := tracer.Start(ctx, "worldgen.build")
	w := world.BuildWorld(hm)
	buildSpan.SetAttributes(attribute.String("world.id", w.ID.String()))
	buildSpan.End()

	elapsed := time.Since(start)
	m.ObserveGeneration(elapsed)
	logging.GetWorldgenLogger().Info("✅ Генерация мира %s заняла %v", w.ID, elapsed)
	return w, nil
}
