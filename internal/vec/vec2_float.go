package vec

// Vec2Float – точка или смещение в экранных пикселях (камера просмотрщика)
type Vec2Float struct {
	X, Y float64
}

// Add складывает два вектора
func (v Vec2Float) Add(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X + other.X, Y: v.Y + other.Y}
}

// Scale умножает вектор на скаляр
func (v Vec2Float) Scale(k float64) Vec2Float {
	return Vec2Float{X: v.X * k, Y: v.Y * k}
}
