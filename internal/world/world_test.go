package world

import (
	"testing"

	"github.com/annel0/fortress-slice/internal/vec"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWorld_ClassificationTotality(t *testing.T) {
	hm, err := GenerateHeightmap(0, 8, 8, 0, 16, 0.1)
	require.NoError(t, err)

	w := BuildWorld(hm)
	require.NotNil(t, w)

	for h := range w.Heights().All() {
		layer := w.Layer(h)
		require.NotNil(t, layer, "Слой %d должен существовать", h)
		assert.Equal(t, h, layer.Height())

		for v := range w.Size().All() {
			tile, ok := layer.Get(v)
			require.True(t, ok)

			expectTerrain := h <= hm.At(v)
			assert.Equal(t, expectTerrain, tile.IsTerrain(),
				"Тайл %v: высота %d, поверхность %d", tile.Pos, h, hm.At(v))
			assert.Equal(t, v.WithHeight(h.Int()), tile.Pos)
		}
	}
}

func TestBuildWorld_AllTilesHidden(t *testing.T) {
	hm, err := NewFlatHeightmap(vec.Size{W: 4, D: 4}, HeightRange{Min: 0, Max: 5}, 2)
	require.NoError(t, err)

	w := BuildWorld(hm)
	assert.Equal(t, 0, w.VisibleCount(), "Мир создаётся без видимых тайлов")
	assert.NotEqual(t, uuid.Nil, w.ID, "Миру должен быть присвоен ID")

	n := 0
	for range w.Layers() {
		n++
	}
	assert.Equal(t, 5, n, "Один слой на каждую высоту")
}

func TestBuildWorld_FlatSurfaceCounts(t *testing.T) {
	hm, err := NewFlatHeightmap(vec.Size{W: 4, D: 4}, HeightRange{Min: 0, Max: 5}, 2)
	require.NoError(t, err)
	w := BuildWorld(hm)

	for h := range w.Heights().All() {
		layer := w.Layer(h)
		if h <= 2 {
			assert.Equal(t, 16, layer.CountKind(Terrain), "Слой %d целиком земля", h)
		} else {
			assert.Equal(t, 16, layer.CountKind(Open), "Слой %d целиком воздух", h)
		}
	}
}

func TestWorld_Lookups(t *testing.T) {
	hm, err := NewFlatHeightmap(vec.Size{W: 3, D: 2}, HeightRange{Min: 1, Max: 4}, 2)
	require.NoError(t, err)
	w := BuildWorld(hm)

	assert.Nil(t, w.Layer(0), "Высота ниже диапазона")
	assert.Nil(t, w.Layer(4), "Высота выше диапазона")

	tile, ok := w.Tile(vec.Vec3{X: 2, Y: 1, Z: 3})
	require.True(t, ok)
	assert.Equal(t, Open, tile.Kind)

	_, ok = w.Tile(vec.Vec3{X: 3, Y: 1, Z: 3})
	assert.False(t, ok, "X вне слоя")
	_, ok = w.Tile(vec.Vec3{X: 0, Y: 0, Z: -1})
	assert.False(t, ok, "Отрицательная высота")

	var heights []Height
	for l := range w.LayersBetween(0, 2) {
		heights = append(heights, l.Height())
	}
	assert.Equal(t, []Height{1, 2}, heights, "Границы обрезаются диапазоном мира")
}

func TestLayer_SetVisibleReportsChange(t *testing.T) {
	hm, err := NewFlatHeightmap(vec.Size{W: 2, D: 2}, HeightRange{Min: 0, Max: 2}, 0)
	require.NoError(t, err)
	layer := BuildWorld(hm).Layer(0)

	v := vec.Vec2{X: 1, Y: 0}
	assert.True(t, layer.SetVisible(v, true))
	assert.False(t, layer.SetVisible(v, true), "Повторная установка не меняет состояние")
	assert.Equal(t, 1, layer.VisibleCount())
	assert.True(t, layer.SetVisible(v, false))
	assert.Equal(t, 0, layer.VisibleCount())
}

func TestTile_Tint(t *testing.T) {
	tile := Tile{Pos: vec.Vec3{X: 0, Y: 0, Z: 12}}
	c := tile.Tint()
	assert.Equal(t, uint8(12), c.G)
	assert.Equal(t, uint8(10), c.R)
	assert.Equal(t, uint8(255), c.A)
	assert.Equal(t, "terrain", Terrain.String())
}
