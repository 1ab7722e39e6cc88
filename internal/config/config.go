package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/annel0/fortress-slice/internal/vec"
	"github.com/annel0/fortress-slice/internal/world"
	"gopkg.in/yaml.v3"
)

// ErrInvalid – ошибка валидации конфигурации
var ErrInvalid = errors.New("invalid config")

// Config корневая структура конфигурации приложения
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Noise     NoiseConfig     `yaml:"noise"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type WorldConfig struct {
	Width     int `yaml:"width"`
	Depth     int `yaml:"depth"`
	MinHeight int `yaml:"min_height"`
	MaxHeight int `yaml:"max_height"`
	Headroom  int `yaml:"headroom"` // пустые слои неба над самой высокой точкой
}

type NoiseConfig struct {
	Seed    int64   `yaml:"seed"`
	Scale   float64 `yaml:"scale"`
	Alpha   float64 `yaml:"alpha"`
	Beta    float64 `yaml:"beta"`
	Octaves int32   `yaml:"octaves"`
}

type ViewerConfig struct {
	Title         string `yaml:"title"`
	WindowWidth   int    `yaml:"window_width"`
	WindowHeight  int    `yaml:"window_height"`
	TileSize      int    `yaml:"tile_size"`
	InitialHeight int    `yaml:"initial_height"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type TelemetryConfig struct {
	Endpoint    string  `yaml:"endpoint"` // host:port OTLP/HTTP коллектора
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Width:     64,
			Depth:     64,
			MinHeight: 0,
			MaxHeight: 32,
		},
		Noise: NoiseConfig{
			Seed:  0,
			Scale: world.DefaultNoiseScale,
		},
		Viewer: ViewerConfig{
			Title:        "Fortress Slice",
			WindowWidth:  1280,
			WindowHeight: 720,
			TileSize:     16,
		},
	}
}

// GetMetricsPort возвращает порт метрик: config -> env -> default
func (m *MetricsConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(m.Port, "FORTRESS_METRICS_PORT", 2112)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать путь из ENV FORTRESS_CONFIG;
// если и он не задан – возвращает Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("FORTRESS_CONFIG")
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse разбирает YAML поверх Default() и валидирует результат
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.World.MinHeight < 0 || c.World.MaxHeight < 0 {
		return fmt.Errorf("%w: world heights must not be negative", ErrInvalid)
	}
	if c.Viewer.TileSize <= 0 {
		return fmt.Errorf("%w: viewer.tile_size must be positive", ErrInvalid)
	}
	if _, err := c.InitialHeight(); err != nil {
		return err
	}
	return c.GeneratorConfig().Validate()
}

// Heights возвращает диапазон высот мира
func (c *Config) Heights() world.HeightRange {
	return world.HeightRange{Min: world.Height(c.World.MinHeight), Max: world.Height(c.World.MaxHeight)}
}

// InitialHeight возвращает стартовую просматриваемую высоту.
// Нулевое значение означает нижний слой мира.
func (c *Config) InitialHeight() (world.Height, error) {
	if c.Viewer.InitialHeight == 0 {
		return c.Heights().Min, nil
	}
	h := world.Height(c.Viewer.InitialHeight)
	if c.Viewer.InitialHeight < 0 || !c.Heights().Contains(h) {
		return 0, fmt.Errorf("%w: viewer.initial_height %d outside %v", ErrInvalid, c.Viewer.InitialHeight, c.Heights())
	}
	return h, nil
}

// GeneratorConfig переводит конфигурацию в параметры генератора карты высот
func (c *Config) GeneratorConfig() world.GeneratorConfig {
	return world.GeneratorConfig{
		Seed:     c.Noise.Seed,
		Size:     vec.Size{W: c.World.Width, D: c.World.Depth},
		Heights:  c.Heights(),
		Scale:    c.Noise.Scale,
		Headroom: c.World.Headroom,
		Alpha:    c.Noise.Alpha,
		Beta:     c.Noise.Beta,
		Octaves:  c.Noise.Octaves,
	}
}
