package vec

import "iter"

// Size задаёт размер слоя мира: W тайлов по X и D тайлов по Y.
// Одинаков для всех слоёв, поэтому хранится один раз на мир.
type Size struct {
	W, D int
}

// Area возвращает количество тайлов в одном слое
func (s Size) Area() int {
	return s.W * s.D
}

// Contains проверяет, лежит ли координата внутри слоя
func (s Size) Contains(v Vec2) bool {
	return v.X >= 0 && v.X < s.W && v.Y >= 0 && v.Y < s.D
}

// Index возвращает плоский индекс координаты в арене слоя (x-major).
// Вызывающий обязан проверить Contains.
func (s Size) Index(v Vec2) int {
	return v.X*s.D + v.Y
}

// At выполняет обратное преобразование плоского индекса в координату
func (s Size) At(i int) Vec2 {
	return Vec2{X: i / s.D, Y: i % s.D}
}

// All перебирает все координаты слоя в том же порядке, что и Index
func (s Size) All() iter.Seq[Vec2] {
	return func(yield func(Vec2) bool) {
		for x := 0; x < s.W; x++ {
			for y := 0; y < s.D; y++ {
				if !yield(Vec2{X: x, Y: y}) {
					return
				}
			}
		}
	}
}
