package world

import (
	"fmt"
	"iter"
)

// Height – дискретный уровень высоты (номер слоя)
type Height uint32

// Int возвращает высоту как int (для мировых координат)
func (h Height) Int() int {
	return int(h)
}

// Sub возвращает h - other с насыщением в 0
func (h Height) Sub(other Height) Height {
	if other >= h {
		return 0
	}
	return h - other
}

// HeightRange – полуоткрытый диапазон высот [Min, Max)
type HeightRange struct {
	Min Height
	Max Height
}

// Validate проверяет, что диапазон не пустой
func (r HeightRange) Validate() error {
	if r.Max <= r.Min {
		return fmt.Errorf("%w: max_height (%d) must be greater than min_height (%d)", ErrInvalidConfig, r.Max, r.Min)
	}
	return nil
}

// Len возвращает количество слоёв в диапазоне
func (r HeightRange) Len() int {
	if r.Max <= r.Min {
		return 0
	}
	return int(r.Max - r.Min)
}

// Contains проверяет, что высота лежит в [Min, Max)
func (r HeightRange) Contains(h Height) bool {
	return h >= r.Min && h < r.Max
}

// Top возвращает самый верхний допустимый слой (Max-1)
func (r HeightRange) Top() Height {
	return r.Max - 1
}

// Clamp ограничивает произвольное целое значение диапазоном [Min, Max-1]
func (r HeightRange) Clamp(v int) Height {
	if v < int(r.Min) {
		return r.Min
	}
	if v > int(r.Top()) {
		return r.Top()
	}
	return Height(v)
}

// All перебирает высоты снизу вверх
func (r HeightRange) All() iter.Seq[Height] {
	return func(yield func(Height) bool) {
		for h := r.Min; h < r.Max; h++ {
			if !yield(h) {
				return
			}
		}
	}
}

func (r HeightRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Min, r.Max)
}
