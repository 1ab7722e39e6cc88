package game

import (
	"fmt"

	"github.com/annel0/fortress-slice/internal/logging"
	"github.com/annel0/fortress-slice/internal/metrics"
	"github.com/annel0/fortress-slice/internal/shadow"
	"github.com/annel0/fortress-slice/internal/visibility"
	"github.com/annel0/fortress-slice/internal/world"
)

// Session – покадровый конвейер просмотра мира:
// ввод -> контроллер видимости -> слой теней.
// Однопоточный; все шаги выполняются синхронно внутри Frame.
type Session struct {
	world      *world.World
	viewed     *ViewedHeight
	controller *visibility.Controller
	shadows    *shadow.Builder

	lastHeight world.Height
	started    bool
	frames     uint64
}

// FrameResult – итог кадра, в котором высота изменилась
type FrameResult struct {
	Visibility visibility.Result
	Overlay    *shadow.Overlay
}

// NewSession создаёт сессию над построенным миром. m может быть nil.
func NewSession(w *world.World, initial world.Height, m *metrics.Metrics) (*Session, error) {
	if !w.Heights().Contains(initial) {
		return nil, fmt.Errorf("%w: initial height %d not in %v", visibility.ErrHeightOutOfRange, initial, w.Heights())
	}
	return &Session{
		world:      w,
		viewed:     NewViewedHeight(w.Heights(), initial),
		controller: visibility.NewController(w, visibility.WithMetrics(m)),
		shadows:    shadow.NewBuilder(m),
	}, nil
}

// Apply передаёт действие ввода в просматриваемую высоту
func (s *Session) Apply(a Action) bool {
	return s.viewed.Apply(a)
}

// Frame выполняет один кадр. Если высота не менялась с прошлого кадра,
// кадр ничего не делает и возвращает false.
//
// Нарушение контракта контроллера (прыжок через слой, выход за диапазон)
// означает испорченное состояние видимости, поэтому вызывает панику.
func (s *Session) Frame() (FrameResult, bool) {
	s.frames++

	h := s.viewed.Value()
	if s.started && h == s.lastHeight {
		return FrameResult{}, false
	}

	res, err := s.controller.Update(h)
	if err != nil {
		logging.GetVisibilityLogger().Error("❌ Мир %s, кадр %d: %v", s.world.ID, s.frames, err)
		panic(fmt.Sprintf("visibility update failed: %v", err))
	}
	overlay := s.shadows.Rebuild(s.controller, h)

	s.lastHeight = h
	s.started = true
	return FrameResult{Visibility: res, Overlay: overlay}, true
}

// World возвращает мир сессии
func (s *Session) World() *world.World {
	return s.world
}

// Viewed возвращает текущую просматриваемую высоту
func (s *Session) Viewed() world.Height {
	return s.viewed.Value()
}

// Controller возвращает контроллер видимости
func (s *Session) Controller() *visibility.Controller {
	return s.controller
}

// Overlay возвращает текущий слой теней (nil до первого кадра)
func (s *Session) Overlay() *shadow.Overlay {
	return s.shadows.Current()
}

// Frames возвращает число обработанных кадров
func (s *Session) Frames() uint64 {
	return s.frames
}
