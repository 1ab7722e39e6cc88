package render

import (
	"strings"
	"testing"

	"github.com/annel0/fortress-slice/internal/game"
	"github.com/annel0/fortress-slice/internal/vec"
	"github.com/annel0/fortress-slice/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepped(t *testing.T) *world.World {
	t.Helper()
	// Столбец x=0 на высоте 1, x=1 на высоте 3
	hm, err := world.NewHeightmapFromFunc(vec.Size{W: 2, D: 2}, world.HeightRange{Min: 0, Max: 40},
		func(v vec.Vec2) world.Height {
			if v.X == 0 {
				return 1
			}
			return 3
		})
	require.NoError(t, err)
	return world.BuildWorld(hm)
}

func TestHeightmap(t *testing.T) {
	w := stepped(t)
	assert.Equal(t, "13\n13\n", Heightmap(w.Heightmap()))
}

func TestSlice_ShowsDepthBelowViewer(t *testing.T) {
	s, err := game.NewSession(stepped(t), 0, nil)
	require.NoError(t, err)
	s.Frame()

	for i := 0; i < 3; i++ {
		s.Apply(game.RaiseHeight)
		s.Frame()
	}

	// На высоте 3: x=0 – земля на глубине 2, x=1 – земля на просматриваемом слое
	out := Slice(s.World(), s.Overlay(), s.Viewed())
	assert.Equal(t, "2#\n2#\n", out)

	for i := 0; i < 12; i++ {
		s.Apply(game.RaiseHeight)
		s.Frame()
	}
	out = Slice(s.World(), s.Overlay(), s.Viewed())
	assert.Equal(t, "**\n**\n", out, "Глубже 9 слоёв – '*'")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestSlice_NoOverlay(t *testing.T) {
	w := stepped(t)
	assert.Equal(t, "  \n  \n", Slice(w, nil, 5))
}
