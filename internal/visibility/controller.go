// Package visibility поддерживает видимость тайлов по слоям при смене
// просматриваемой высоты. Каждое обновление затрагивает только два соседних
// слоя, поэтому стоимость – O(площадь слоя), а не O(объём мира).
package visibility

import (
	"errors"
	"fmt"
	"iter"

	"github.com/annel0/fortress-slice/internal/logging"
	"github.com/annel0/fortress-slice/internal/metrics"
	"github.com/annel0/fortress-slice/internal/world"
)

var (
	// ErrHeightOutOfRange – просматриваемая высота вне [min_height, max_height)
	ErrHeightOutOfRange = errors.New("viewed height out of range")

	// ErrMultiStep – высота изменилась больше чем на один слой за обновление
	ErrMultiStep = errors.New("viewed height changed by more than one layer")
)

// State – состояние контроллера
type State uint8

const (
	Uninitialized State = iota
	Tracking
)

func (s State) String() string {
	if s == Tracking {
		return "tracking"
	}
	return "uninitialized"
}

// Transition – тип выполненного перехода
type Transition uint8

const (
	None Transition = iota // Высота не изменилась
	Init
	Ascend
	Descend
)

func (t Transition) String() string {
	switch t {
	case Init:
		return "init"
	case Ascend:
		return "ascend"
	case Descend:
		return "descend"
	default:
		return "none"
	}
}

// Result описывает одно обновление видимости
type Result struct {
	Transition Transition
	Height     world.Height
	Shown      int // Тайлы, ставшие видимыми
	Hidden     int // Тайлы, ставшие скрытыми
}

// Controller – конечный автомат Uninitialized | Tracking(prev).
// Помнит только предыдущую высоту; флаги видимости хранятся в самих тайлах.
type Controller struct {
	world   *world.World
	state   State
	prev    world.Height
	metrics *metrics.Metrics
	log     *logging.Logger
}

// Option настраивает контроллер
type Option func(*Controller)

// WithMetrics подключает Prometheus-метрики
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithLogger заменяет логгер компонента
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// NewController создаёт контроллер в состоянии Uninitialized
func NewController(w *world.World, opts ...Option) *Controller {
	c := &Controller{
		world: w,
		state: Uninitialized,
		log:   logging.GetVisibilityLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State возвращает текущее состояние автомата
func (c *Controller) State() State {
	return c.state
}

// Viewed возвращает запомненную высоту; ok == false до инициализации
func (c *Controller) Viewed() (h world.Height, ok bool) {
	return c.prev, c.state == Tracking
}

// World возвращает мир, которым управляет контроллер
func (c *Controller) World() *world.World {
	return c.world
}

// Update применяет новую просматриваемую высоту.
// Допустимы только шаги на ±1 слой; при ошибке состояние не меняется.
func (c *Controller) Update(h world.Height) (Result, error) {
	heights := c.world.Heights()
	if !heights.Contains(h) {
		return Result{}, fmt.Errorf("%w: %d not in %v", ErrHeightOutOfRange, h, heights)
	}

	var res Result
	switch {
	case c.state == Uninitialized:
		res = c.initialize(h)
	case h == c.prev:
		return Result{Transition: None, Height: h}, nil
	case h == c.prev+1:
		res = c.ascend(h)
	case c.prev > 0 && h == c.prev-1:
		res = c.descend(h)
	default:
		return Result{}, fmt.Errorf("%w: %d -> %d", ErrMultiStep, c.prev, h)
	}

	c.state = Tracking
	c.prev = h

	c.metrics.ObserveVisibility(res.Transition.String(), h.Int(), res.Shown, res.Hidden)
	c.log.Debug("%s -> слой %d: показано %d, скрыто %d", res.Transition, h, res.Shown, res.Hidden)
	return res, nil
}

// initialize делает видимым весь слой h; остальные слои остаются скрытыми
func (c *Controller) initialize(h world.Height) Result {
	res := Result{Transition: Init, Height: h}
	layer := c.world.Layer(h)
	for v := range c.world.Size().All() {
		if layer.SetVisible(v, true) {
			res.Shown++
		}
	}
	return res
}

// ascend показывает слой h и скрывает покинутый слой h-1,
// кроме клеток, где он совпадает с поверхностью (земля под ногами остаётся видна)
func (c *Controller) ascend(h world.Height) Result {
	res := Result{Transition: Ascend, Height: h}
	hm := c.world.Heightmap()
	current := c.world.Layer(h)
	below := c.world.Layer(h - 1)

	for v := range c.world.Size().All() {
		if current.SetVisible(v, true) {
			res.Shown++
		}
		if hm.At(v) != h-1 && below.SetVisible(v, false) {
			res.Hidden++
		}
	}
	return res
}

// descend показывает слой h и безусловно скрывает покинутый слой h+1
func (c *Controller) descend(h world.Height) Result {
	res := Result{Transition: Descend, Height: h}
	current := c.world.Layer(h)
	above := c.world.Layer(h + 1)

	for v := range c.world.Size().All() {
		if current.SetVisible(v, true) {
			res.Shown++
		}
		if above.SetVisible(v, false) {
			res.Hidden++
		}
	}
	return res
}

// VisibleTiles перебирает видимые тайлы снизу вверх.
// Выше просматриваемой высоты видимых тайлов не бывает, поэтому обход ограничен слоями min..prev.
func (c *Controller) VisibleTiles() iter.Seq[*world.Tile] {
	return func(yield func(*world.Tile) bool) {
		if c.state != Tracking {
			return
		}
		for layer := range c.world.LayersBetween(c.world.Heights().Min, c.prev) {
			for t := range layer.All() {
				if t.Visible && !yield(t) {
					return
				}
			}
		}
	}
}
