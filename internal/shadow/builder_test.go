package shadow

import (
	"iter"
	"testing"

	"github.com/annel0/fortress-slice/internal/vec"
	"github.com/annel0/fortress-slice/internal/visibility"
	"github.com/annel0/fortress-slice/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDarkness(t *testing.T) {
	assert.Equal(t, uint8(0), Darkness(0))
	assert.Equal(t, uint8(4), Darkness(1))
	assert.Equal(t, uint8(252), Darkness(63))
	assert.Equal(t, uint8(255), Darkness(64), "Насыщение с глубины 64")
	assert.Equal(t, uint8(255), Darkness(1000))
	assert.Equal(t, uint8(255), Darkness(world.Height(1<<31)), "Без переполнения")
}

func TestDarkness_Monotonic(t *testing.T) {
	const viewed = world.Height(100)
	for h1 := world.Height(0); h1 < viewed; h1++ {
		for h2 := h1 + 1; h2 <= viewed; h2++ {
			assert.GreaterOrEqual(t, Darkness(Depth(viewed, h1)), Darkness(Depth(viewed, h2)),
				"Глубже – не светлее: %d vs %d", h1, h2)
		}
	}
}

func TestDepth_Saturates(t *testing.T) {
	assert.Equal(t, world.Height(0), Depth(3, 5), "Тайл выше просмотра – глубина 0")
	assert.Equal(t, world.Height(2), Depth(5, 3))
}

func TestBuilder_FlatWorld(t *testing.T) {
	hm, err := world.NewFlatHeightmap(vec.Size{W: 4, D: 4}, world.HeightRange{Min: 0, Max: 5}, 2)
	require.NoError(t, err)
	w := world.BuildWorld(hm)
	c := visibility.NewController(w)
	b := NewBuilder(nil)

	assert.Nil(t, b.Current())

	for _, h := range []world.Height{0, 1, 2, 3} {
		_, err := c.Update(h)
		require.NoError(t, err)
	}

	// На высоте 3 видны: слой 3 (воздух) и сохранённая поверхность слоя 2
	o := b.Rebuild(c, 3)
	assert.Same(t, o, b.Current())
	assert.Equal(t, 16, o.Len(), "Одна тень на каждую клетку поверхности")
	assert.Equal(t, w.Size(), o.Size())
	assert.Equal(t, world.Height(3), o.Viewed())

	for v := range w.Size().All() {
		cell, ok := o.At(v)
		require.True(t, ok)
		assert.Equal(t, uint8(4), cell.Alpha, "Глубина 1 -> альфа 4")
		assert.Equal(t, world.Height(2), cell.Height)
		assert.Equal(t, uint8(4), cell.Color().A)
	}

	// Спуск на поверхность: тень без затемнения
	_, err = c.Update(2)
	require.NoError(t, err)
	o2 := b.Rebuild(c, 2)
	assert.NotSame(t, o, o2, "Слой строится заново")
	for cell := range o2.All() {
		assert.Equal(t, uint8(0), cell.Alpha)
	}
}

func TestBuilder_SkipsOpenTiles(t *testing.T) {
	hm, err := world.NewFlatHeightmap(vec.Size{W: 3, D: 3}, world.HeightRange{Min: 0, Max: 4}, 0)
	require.NoError(t, err)
	w := world.BuildWorld(hm)
	c := visibility.NewController(w)

	_, err = c.Update(3)
	require.NoError(t, err)

	o := NewBuilder(nil).Rebuild(c, 3)
	assert.Zero(t, o.Len(), "Воздух не затеняется")

	_, ok := o.At(vec.Vec2{X: 5, Y: 5})
	assert.False(t, ok)
}

// stubSource выдаёт заданный набор тайлов в произвольном порядке
type stubSource struct {
	w     *world.World
	tiles []*world.Tile
}

func (s stubSource) World() *world.World { return s.w }

func (s stubSource) VisibleTiles() iter.Seq[*world.Tile] {
	return func(yield func(*world.Tile) bool) {
		for _, t := range s.tiles {
			if !yield(t) {
				return
			}
		}
	}
}

func TestBuilder_TopmostTileWins(t *testing.T) {
	hm, err := world.NewFlatHeightmap(vec.Size{W: 2, D: 2}, world.HeightRange{Min: 0, Max: 80}, 70)
	require.NoError(t, err)
	w := world.BuildWorld(hm)

	pos := vec.Vec2{X: 1, Y: 1}
	deep, _ := w.Tile(pos.WithHeight(2))
	high, _ := w.Tile(pos.WithHeight(60))
	above, _ := w.Tile(pos.WithHeight(70))

	// Порядок намеренно сверху вниз; тайл выше просмотра игнорируется
	src := stubSource{w: w, tiles: []*world.Tile{above, high, deep}}
	o := NewBuilder(nil).Rebuild(src, 66)

	require.Equal(t, 1, o.Len())
	cell, ok := o.At(pos)
	require.True(t, ok)
	assert.Equal(t, world.Height(60), cell.Height)
	assert.Equal(t, uint8(24), cell.Alpha)

	// Отдельно: глубина >= 64 насыщается
	o = NewBuilder(nil).Rebuild(stubSource{w: w, tiles: []*world.Tile{deep}}, 66)
	cell, _ = o.At(pos)
	assert.Equal(t, uint8(255), cell.Alpha)
}
