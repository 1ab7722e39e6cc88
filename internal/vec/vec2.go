package vec

import "fmt"

// Vec2 – координата тайла внутри одного слоя (x, y)
type Vec2 struct {
	X, Y int
}

// WithHeight поднимает координату слоя до мировой координаты на высоте z
func (v Vec2) WithHeight(z int) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: z}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}
