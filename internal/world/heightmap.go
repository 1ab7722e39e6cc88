package world

import (
	"fmt"

	"github.com/annel0/fortress-slice/internal/vec"
)

// Heightmap хранит высоту поверхности для каждой координаты слоя.
// После построения не изменяется.
type Heightmap struct {
	size    vec.Size
	heights HeightRange
	values  []Height // индекс – size.Index(v)
}

// NewHeightmapFromFunc строит карту высот, вызывая surface для каждой координаты.
// Все значения должны лежать в heights, иначе возвращается ErrValueOutOfRange.
func NewHeightmapFromFunc(size vec.Size, heights HeightRange, surface func(vec.Vec2) Height) (*Heightmap, error) {
	if size.W <= 0 || size.D <= 0 {
		return nil, fmt.Errorf("%w: world size %dx%d must be positive", ErrInvalidConfig, size.W, size.D)
	}
	if err := heights.Validate(); err != nil {
		return nil, err
	}

	hm := &Heightmap{
		size:    size,
		heights: heights,
		values:  make([]Height, size.Area()),
	}
	for v := range size.All() {
		h := surface(v)
		if !heights.Contains(h) {
			return nil, fmt.Errorf("%w: %d at %v, range %v", ErrValueOutOfRange, h, v, heights)
		}
		hm.values[size.Index(v)] = h
	}
	return hm, nil
}

// NewFlatHeightmap строит ровную карту высот с одинаковой поверхностью h
func NewFlatHeightmap(size vec.Size, heights HeightRange, h Height) (*Heightmap, error) {
	return NewHeightmapFromFunc(size, heights, func(vec.Vec2) Height { return h })
}

// Size возвращает размер слоя
func (hm *Heightmap) Size() vec.Size {
	return hm.size
}

// Range возвращает диапазон высот мира
func (hm *Heightmap) Range() HeightRange {
	return hm.heights
}

// At возвращает высоту поверхности. Координата должна лежать внутри Size.
func (hm *Heightmap) At(v vec.Vec2) Height {
	return hm.values[hm.size.Index(v)]
}

// Lookup как At, но с проверкой границ
func (hm *Heightmap) Lookup(v vec.Vec2) (Height, bool) {
	if !hm.size.Contains(v) {
		return 0, false
	}
	return hm.At(v), true
}

// MinMax возвращает самую низкую и самую высокую точку поверхности
func (hm *Heightmap) MinMax() (lo, hi Height) {
	lo, hi = hm.values[0], hm.values[0]
	for _, h := range hm.values[1:] {
		if h < lo {
			lo = h
		}
		if h > hi {
			hi = h
		}
	}
	return lo, hi
}

// Equal сравнивает две карты высот поэлементно
func (hm *Heightmap) Equal(other *Heightmap) bool {
	if other == nil || hm.size != other.size || hm.heights != other.heights {
		return false
	}
	for i, h := range hm.values {
		if other.values[i] != h {
			return false
		}
	}
	return true
}
