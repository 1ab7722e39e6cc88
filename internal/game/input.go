package game

import "github.com/annel0/fortress-slice/internal/world"

// Action – дискретное действие ввода, меняющее просматриваемую высоту
type Action uint8

const (
	RaiseHeight Action = iota + 1
	LowerHeight
)

func (a Action) String() string {
	switch a {
	case RaiseHeight:
		return "raise_height"
	case LowerHeight:
		return "lower_height"
	default:
		return "unknown"
	}
}

// ViewedHeight – просматриваемый срез. Единственное значение, которое меняет ввод.
// Зажимается в [min, max-1] здесь, а не в контроллере видимости.
type ViewedHeight struct {
	value   world.Height
	heights world.HeightRange
}

// NewViewedHeight создаёт высоту просмотра; initial зажимается в диапазон
func NewViewedHeight(heights world.HeightRange, initial world.Height) *ViewedHeight {
	return &ViewedHeight{
		value:   heights.Clamp(int(initial)),
		heights: heights,
	}
}

// Value возвращает текущую высоту
func (vh *ViewedHeight) Value() world.Height {
	return vh.value
}

// Apply меняет высоту ровно на ±1 с зажимом; возвращает true, если значение изменилось
func (vh *ViewedHeight) Apply(a Action) bool {
	next := int(vh.value)
	switch a {
	case RaiseHeight:
		next++
	case LowerHeight:
		next--
	default:
		return false
	}

	clamped := vh.heights.Clamp(next)
	if clamped == vh.value {
		return false
	}
	vh.value = clamped
	return true
}
