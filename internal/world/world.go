package world

import (
	"iter"

	"github.com/annel0/fortress-slice/internal/logging"
	"github.com/annel0/fortress-slice/internal/vec"
	"github.com/google/uuid"
)

// World – упорядоченный набор слоёв min..max-1 и общая карта высот.
// Мир владеет слоями; слои не переживают мир.
type World struct {
	ID        uuid.UUID
	heightmap *Heightmap
	layers    []*Layer // layers[h - Min]
}

// BuildWorld строит по одному слою на каждую высоту диапазона карты высот.
// Классификация тотальна, поэтому построение не может завершиться ошибкой.
func BuildWorld(hm *Heightmap) *World {
	heights := hm.Range()
	w := &World{
		ID:        uuid.New(),
		heightmap: hm,
		layers:    make([]*Layer, 0, heights.Len()),
	}
	for h := range heights.All() {
		w.layers = append(w.layers, newLayer(h, hm))
	}

	size := hm.Size()
	logging.GetWorldgenLogger().Info("🌍 Мир %s построен: %dx%d, слоёв %d (%v)",
		w.ID, size.W, size.D, len(w.layers), heights)
	return w
}

// Heightmap возвращает карту высот мира
func (w *World) Heightmap() *Heightmap {
	return w.heightmap
}

// Size возвращает размер слоя
func (w *World) Size() vec.Size {
	return w.heightmap.Size()
}

// Heights возвращает диапазон высот
func (w *World) Heights() HeightRange {
	return w.heightmap.Range()
}

// Layer возвращает слой на высоте h или nil, если h вне диапазона
func (w *World) Layer(h Height) *Layer {
	if !w.Heights().Contains(h) {
		return nil
	}
	return w.layers[h-w.Heights().Min]
}

// Tile возвращает тайл по мировой координате
func (w *World) Tile(v vec.Vec3) (*Tile, bool) {
	if v.Z < 0 {
		return nil, false
	}
	l := w.Layer(Height(v.Z))
	if l == nil {
		return nil, false
	}
	return l.Get(v.ToVec2())
}

// Layers перебирает слои снизу вверх
func (w *World) Layers() iter.Seq[*Layer] {
	return func(yield func(*Layer) bool) {
		for _, l := range w.layers {
			if !yield(l) {
				return
			}
		}
	}
}

// LayersBetween перебирает слои с высотами в [lo, hi] снизу вверх (границы обрезаются диапазоном мира)
func (w *World) LayersBetween(lo, hi Height) iter.Seq[*Layer] {
	return func(yield func(*Layer) bool) {
		heights := w.Heights()
		if lo < heights.Min {
			lo = heights.Min
		}
		if hi > heights.Top() {
			hi = heights.Top()
		}
		for h := lo; h <= hi && h >= lo; h++ {
			if !yield(w.layers[h-heights.Min]) {
				return
			}
		}
	}
}

// VisibleCount возвращает общее количество видимых тайлов во всех слоях
func (w *World) VisibleCount() int {
	n := 0
	for _, l := range w.layers {
		n += l.VisibleCount()
	}
	return n
}
