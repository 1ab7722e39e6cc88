package world

import (
	"fmt"
	"math"

	"github.com/annel0/fortress-slice/internal/logging"
	"github.com/annel0/fortress-slice/internal/util"
	"github.com/annel0/fortress-slice/internal/vec"
)

// DefaultNoiseScale – масштаб шума высот по умолчанию (сглаженность ландшафта)
const DefaultNoiseScale = 0.1

// GeneratorConfig – параметры генерации карты высот
type GeneratorConfig struct {
	Seed     int64       // Сид шума
	Size     vec.Size    // Размер слоя
	Heights  HeightRange // Диапазон высот мира
	Scale    float64     // Масштаб координат шума, > 0
	Headroom int         // Сколько верхних слоёв оставить пустыми (небо)

	// Параметры шума Перлина; нулевые значения заменяются значениями по умолчанию
	Alpha   float64
	Beta    float64
	Octaves int32
}

// DefaultGeneratorConfig возвращает конфигурацию по умолчанию для указанного сида
func DefaultGeneratorConfig(seed int64) GeneratorConfig {
	return GeneratorConfig{
		Seed:    seed,
		Size:    vec.Size{W: 64, D: 64},
		Heights: HeightRange{Min: 0, Max: 32},
		Scale:   DefaultNoiseScale,
	}
}

func (c GeneratorConfig) withDefaults() GeneratorConfig {
	if c.Alpha == 0 {
		c.Alpha = util.DefaultNoiseAlpha
	}
	if c.Beta == 0 {
		c.Beta = util.DefaultNoiseBeta
	}
	if c.Octaves == 0 {
		c.Octaves = util.DefaultNoiseOctaves
	}
	return c
}

// Validate проверяет конфигурацию; ошибки оборачивают ErrInvalidConfig
func (c GeneratorConfig) Validate() error {
	if !(c.Scale > 0) || math.IsInf(c.Scale, 0) {
		return fmt.Errorf("%w: noise scale must be positive, got %v", ErrInvalidConfig, c.Scale)
	}
	if err := c.Heights.Validate(); err != nil {
		return err
	}
	if c.Size.W <= 0 || c.Size.D <= 0 {
		return fmt.Errorf("%w: world size %dx%d must be positive", ErrInvalidConfig, c.Size.W, c.Size.D)
	}
	if c.Headroom < 0 || c.Headroom >= c.Heights.Len() {
		return fmt.Errorf("%w: headroom %d must be in [0, %d)", ErrInvalidConfig, c.Headroom, c.Heights.Len())
	}
	if c.Octaves < 0 {
		return fmt.Errorf("%w: octaves must be at least 1, got %d", ErrInvalidConfig, c.Octaves)
	}
	return nil
}

// HeightmapGenerator генерирует карту высот из шума Перлина
type HeightmapGenerator struct {
	cfg   GeneratorConfig
	noise *util.Noise
}

// NewHeightmapGenerator создаёт генератор. Некорректная конфигурация отклоняется здесь,
// поэтому Generate не может завершиться ошибкой.
func NewHeightmapGenerator(cfg GeneratorConfig) (*HeightmapGenerator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	return &HeightmapGenerator{
		cfg:   cfg,
		noise: util.NewNoiseWithParams(cfg.Seed, cfg.Alpha, cfg.Beta, cfg.Octaves),
	}, nil
}

// Config возвращает итоговую конфигурацию генератора (с подставленными значениями по умолчанию)
func (g *HeightmapGenerator) Config() GeneratorConfig {
	return g.cfg
}

// SurfaceAt вычисляет высоту поверхности в одной точке
func (g *HeightmapGenerator) SurfaceAt(v vec.Vec2) Height {
	n := g.noise.Normalized2D(float64(v.X)*g.cfg.Scale, float64(v.Y)*g.cfg.Scale)

	span := float64(g.cfg.Heights.Len() - g.cfg.Headroom)
	offset := int(math.Round(n * span))

	return g.cfg.Heights.Clamp(int(g.cfg.Heights.Min) + offset)
}

// Generate строит карту высот для всего слоя
func (g *HeightmapGenerator) Generate() *Heightmap {
	hm := &Heightmap{
		size:    g.cfg.Size,
		heights: g.cfg.Heights,
		values:  make([]Height, g.cfg.Size.Area()),
	}
	for v := range g.cfg.Size.All() {
		hm.values[g.cfg.Size.Index(v)] = g.SurfaceAt(v)
	}

	lo, hi := hm.MinMax()
	logging.GetWorldgenLogger().Debug("Карта высот %dx%d (seed=%d, scale=%.3f): поверхность от %d до %d",
		g.cfg.Size.W, g.cfg.Size.D, g.cfg.Seed, g.cfg.Scale, lo, hi)
	return hm
}

// GenerateHeightmap – однократная генерация без сохранения генератора
func GenerateHeightmap(seed int64, width, depth int, minHeight, maxHeight Height, scale float64) (*Heightmap, error) {
	g, err := NewHeightmapGenerator(GeneratorConfig{
		Seed:    seed,
		Size:    vec.Size{W: width, D: depth},
		Heights: HeightRange{Min: minHeight, Max: maxHeight},
		Scale:   scale,
	})
	if err != nil {
		return nil, err
	}
	return g.Generate(), nil
}
