package world

import (
	"iter"

	"github.com/annel0/fortress-slice/internal/vec"
)

// Layer – все тайлы одной высоты. Слой владеет ареной тайлов,
// доступ по координате слоя – O(1).
type Layer struct {
	height Height
	size   vec.Size
	tiles  []Tile // индекс – size.Index(v)
}

// newLayer классифицирует каждый воксель слоя по карте высот.
// Все тайлы создаются скрытыми.
func newLayer(h Height, hm *Heightmap) *Layer {
	size := hm.Size()
	l := &Layer{
		height: h,
		size:   size,
		tiles:  make([]Tile, size.Area()),
	}
	for v := range size.All() {
		l.tiles[size.Index(v)] = Tile{
			Pos:  v.WithHeight(h.Int()),
			Kind: Classify(h, hm.At(v)),
		}
	}
	return l
}

// Height возвращает высоту слоя
func (l *Layer) Height() Height {
	return l.height
}

// Size возвращает размер слоя
func (l *Layer) Size() vec.Size {
	return l.size
}

// Get возвращает тайл по координате слоя
func (l *Layer) Get(v vec.Vec2) (*Tile, bool) {
	if !l.size.Contains(v) {
		return nil, false
	}
	return &l.tiles[l.size.Index(v)], true
}

// at – Get без проверки границ, для горячих циклов контроллера видимости
func (l *Layer) at(v vec.Vec2) *Tile {
	return &l.tiles[l.size.Index(v)]
}

// All перебирает тайлы слоя в порядке обхода vec.Size.All
func (l *Layer) All() iter.Seq[*Tile] {
	return func(yield func(*Tile) bool) {
		for i := range l.tiles {
			if !yield(&l.tiles[i]) {
				return
			}
		}
	}
}

// SetVisible меняет флаг видимости тайла и сообщает, изменилось ли значение
func (l *Layer) SetVisible(v vec.Vec2, visible bool) bool {
	t := l.at(v)
	if t.Visible == visible {
		return false
	}
	t.Visible = visible
	return true
}

// VisibleCount возвращает количество видимых тайлов слоя
func (l *Layer) VisibleCount() int {
	n := 0
	for i := range l.tiles {
		if l.tiles[i].Visible {
			n++
		}
	}
	return n
}

// CountKind возвращает количество тайлов заданного типа
func (l *Layer) CountKind(k Kind) int {
	n := 0
	for i := range l.tiles {
		if l.tiles[i].Kind == k {
			n++
		}
	}
	return n
}
