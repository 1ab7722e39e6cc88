package game

import (
	"context"
	"testing"

	"github.com/annel0/fortress-slice/internal/config"
	"github.com/annel0/fortress-slice/internal/metrics"
	"github.com/annel0/fortress-slice/internal/vec"
	"github.com/annel0/fortress-slice/internal/visibility"
	"github.com/annel0/fortress-slice/internal/world"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatSession(t *testing.T, initial world.Height) *Session {
	t.Helper()
	hm, err := world.NewFlatHeightmap(vec.Size{W: 4, D: 4}, world.HeightRange{Min: 0, Max: 5}, 2)
	require.NoError(t, err)
	s, err := NewSession(world.BuildWorld(hm), initial, nil)
	require.NoError(t, err)
	return s
}

func TestViewedHeight_ClampsToRange(t *testing.T) {
	vh := NewViewedHeight(world.HeightRange{Min: 1, Max: 4}, 1)

	assert.False(t, vh.Apply(LowerHeight), "Ниже минимума опуститься нельзя")
	assert.Equal(t, world.Height(1), vh.Value())

	assert.True(t, vh.Apply(RaiseHeight))
	assert.True(t, vh.Apply(RaiseHeight))
	assert.False(t, vh.Apply(RaiseHeight), "Выше max-1 подняться нельзя")
	assert.Equal(t, world.Height(3), vh.Value())

	assert.False(t, vh.Apply(Action(42)))
	assert.Equal(t, "raise_height", RaiseHeight.String())
}

func TestSession_FrameRunsOnlyOnChange(t *testing.T) {
	s := flatSession(t, 0)

	res, changed := s.Frame()
	require.True(t, changed, "Первый кадр инициализирует видимость")
	assert.Equal(t, visibility.Init, res.Visibility.Transition)
	require.NotNil(t, res.Overlay)

	_, changed = s.Frame()
	assert.False(t, changed, "Без смены высоты кадр ничего не делает")
	assert.Same(t, res.Overlay, s.Overlay(), "Слой теней не перестраивается")

	s.Apply(RaiseHeight)
	res, changed = s.Frame()
	require.True(t, changed)
	assert.Equal(t, visibility.Ascend, res.Visibility.Transition)
	assert.Equal(t, world.Height(1), s.Viewed())
	assert.Equal(t, uint64(3), s.Frames())
}

func TestSession_ScenarioThroughInput(t *testing.T) {
	s := flatSession(t, 0)
	s.Frame()

	for i := 0; i < 3; i++ {
		s.Apply(RaiseHeight)
		s.Frame()
	}
	w := s.World()
	assert.Equal(t, 16, w.Layer(2).VisibleCount(), "Поверхность остаётся видимой")
	assert.Equal(t, 16, w.Layer(3).VisibleCount())
	assert.Equal(t, 16, s.Overlay().Len())

	s.Apply(LowerHeight)
	s.Frame()
	assert.Equal(t, 0, w.Layer(3).VisibleCount())
	assert.Equal(t, world.Height(2), s.Overlay().Viewed())
}

func TestSession_PanicsOnMultiStep(t *testing.T) {
	s := flatSession(t, 0)
	s.Frame()

	// Обход ввода: прыжок через слой – нарушение контракта
	s.viewed.value = 3
	assert.Panics(t, func() { s.Frame() })
}

func TestNewSession_RejectsInitialOutOfRange(t *testing.T) {
	hm, err := world.NewFlatHeightmap(vec.Size{W: 2, D: 2}, world.HeightRange{Min: 0, Max: 3}, 1)
	require.NoError(t, err)

	_, err = NewSession(world.BuildWorld(hm), 3, nil)
	assert.ErrorIs(t, err, visibility.ErrHeightOutOfRange)
}

func TestGenerateWorld_FromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width = 8
	cfg.World.Depth = 8
	cfg.World.MaxHeight = 16

	reg := prometheus.NewRegistry()
	w, err := GenerateWorld(context.Background(), cfg, metrics.New(reg))
	require.NoError(t, err)
	assert.Equal(t, vec.Size{W: 8, D: 8}, w.Size())
	assert.Equal(t, 16, w.Heights().Len())

	// Тот же сид – та же карта высот
	w2, err := GenerateWorld(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.True(t, w.Heightmap().Equal(w2.Heightmap()))
	assert.NotEqual(t, w.ID, w2.ID)

	cfg.Noise.Scale = -1
	_, err = GenerateWorld(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, world.ErrInvalidConfig)
}
