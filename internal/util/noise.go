package util

import (
	"github.com/aquilax/go-perlin"
)

// Параметры шума по умолчанию
const (
	DefaultNoiseAlpha   = 2.0 // Сглаживание шума
	DefaultNoiseBeta    = 2.0 // Частота шума
	DefaultNoiseOctaves = 3   // Количество октав
)

// Noise – детерминированный 2D шум Перлина для одного сида.
// Каждый генератор владеет своим экземпляром, глобального состояния нет.
type Noise struct {
	seed   int64
	perlin *perlin.Perlin
}

// NewNoise создаёт генератор шума Перлина с параметрами по умолчанию
func NewNoise(seed int64) *Noise {
	return NewNoiseWithParams(seed, DefaultNoiseAlpha, DefaultNoiseBeta, DefaultNoiseOctaves)
}

// NewNoiseWithParams создаёт генератор шума с явными alpha, beta и числом октав
func NewNoiseWithParams(seed int64, alpha, beta float64, octaves int32) *Noise {
	return &Noise{
		seed:   seed,
		perlin: perlin.NewPerlin(alpha, beta, octaves, seed),
	}
}

// Seed возвращает сид генератора
func (n *Noise) Seed() int64 {
	return n.seed
}

// Sample2D возвращает сырое значение шума (примерно от -1 до 1)
func (n *Noise) Sample2D(x, y float64) float64 {
	return n.perlin.Noise2D(x, y)
}

// Normalized2D возвращает значение шума, приведённое к диапазону [0, 1].
// Сумма октав может выйти за [-1, 1], поэтому результат дополнительно обрезается.
func (n *Noise) Normalized2D(x, y float64) float64 {
	return Clamp01((n.Sample2D(x, y) + 1.0) / 2.0)
}

// Clamp01 обрезает значение до [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
