package shadow

import (
	"image/color"
	"iter"

	"github.com/annel0/fortress-slice/internal/vec"
	"github.com/annel0/fortress-slice/internal/world"
)

// Cell – одна клетка слоя теней: позиция и прозрачность чёрного тайла
type Cell struct {
	Pos    vec.Vec2
	Alpha  uint8
	Height world.Height // Высота затенённого тайла
}

// Color возвращает цвет клетки (чёрный с альфой, premultiplied)
func (c Cell) Color() color.RGBA {
	return color.RGBA{A: c.Alpha}
}

// Overlay – плоский слой теней поверх ландшафта, по размеру слоя мира.
// Строится заново при каждой смене высоты.
type Overlay struct {
	size   vec.Size
	viewed world.Height
	cells  []Cell
	index  []int32 // size.Index(v) -> позиция в cells, -1 если клетки нет
}

func newOverlay(size vec.Size, viewed world.Height) *Overlay {
	index := make([]int32, size.Area())
	for i := range index {
		index[i] = -1
	}
	return &Overlay{
		size:   size,
		viewed: viewed,
		index:  index,
	}
}

// put добавляет клетку; из двух клеток в одной позиции остаётся верхняя
func (o *Overlay) put(c Cell) {
	i := o.size.Index(c.Pos)
	if j := o.index[i]; j >= 0 {
		if c.Height >= o.cells[j].Height {
			o.cells[j] = c
		}
		return
	}
	o.index[i] = int32(len(o.cells))
	o.cells = append(o.cells, c)
}

// Size возвращает размер слоя теней
func (o *Overlay) Size() vec.Size {
	return o.size
}

// Viewed возвращает высоту, для которой построен слой
func (o *Overlay) Viewed() world.Height {
	return o.viewed
}

// Len возвращает количество клеток
func (o *Overlay) Len() int {
	return len(o.cells)
}

// At возвращает клетку в позиции v
func (o *Overlay) At(v vec.Vec2) (Cell, bool) {
	if !o.size.Contains(v) {
		return Cell{}, false
	}
	j := o.index[o.size.Index(v)]
	if j < 0 {
		return Cell{}, false
	}
	return o.cells[j], true
}

// All перебирает клетки в порядке добавления
func (o *Overlay) All() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, c := range o.cells {
			if !yield(c) {
				return
			}
		}
	}
}
