package vec

import "fmt"

// Vec3 – мировая координата вокселя: X, Y внутри слоя, Z – высота слоя
type Vec3 struct {
	X, Y, Z int
}

// ToVec2 отбрасывает высоту
func (v Vec3) ToVec2() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}
