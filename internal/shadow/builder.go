// Package shadow строит слой "глубинного тумана": видимые тайлы земли ниже
// просматриваемой высоты затемняются пропорционально глубине.
package shadow

import (
	"iter"

	"github.com/annel0/fortress-slice/internal/logging"
	"github.com/annel0/fortress-slice/internal/metrics"
	"github.com/annel0/fortress-slice/internal/world"
)

const (
	// DarknessPerLayer – прирост альфы на каждый слой глубины
	DarknessPerLayer = 4
	// MaxDarkness – насыщение альфы
	MaxDarkness = 255
)

// Depth возвращает глубину тайла под просматриваемой высотой (не меньше 0)
func Depth(viewed, h world.Height) world.Height {
	return viewed.Sub(h)
}

// Darkness переводит глубину в альфу: min(depth*4, 255)
func Darkness(depth world.Height) uint8 {
	d := uint64(depth) * DarknessPerLayer
	if d > MaxDarkness {
		return MaxDarkness
	}
	return uint8(d)
}

// Source – источник видимого множества тайлов (контроллер видимости)
type Source interface {
	World() *world.World
	VisibleTiles() iter.Seq[*world.Tile]
}

// Builder перестраивает слой теней целиком при каждой смене высоты
type Builder struct {
	current *Overlay
	metrics *metrics.Metrics
	log     *logging.Logger
}

// NewBuilder создаёт построитель теней; m может быть nil
func NewBuilder(m *metrics.Metrics) *Builder {
	return &Builder{
		metrics: m,
		log:     logging.GetShadowLogger(),
	}
}

// Current возвращает последний построенный слой (nil до первого Rebuild)
func (b *Builder) Current() *Overlay {
	return b.current
}

// Rebuild отбрасывает предыдущий слой и строит новый по видимым тайлам земли
// с высотой не выше viewed. Если в одной клетке видно несколько тайлов,
// остаётся верхний.
func (b *Builder) Rebuild(src Source, viewed world.Height) *Overlay {
	b.current = nil

	o := newOverlay(src.World().Size(), viewed)
	for t := range src.VisibleTiles() {
		h := t.Height()
		if !t.IsTerrain() || h > viewed {
			continue
		}
		o.put(Cell{
			Pos:    t.Pos.ToVec2(),
			Alpha:  Darkness(Depth(viewed, h)),
			Height: h,
		})
	}

	b.current = o
	b.metrics.ObserveShadow(o.Len())
	b.log.Debug("Слой теней для высоты %d: %d клеток", viewed, o.Len())
	return o
}
