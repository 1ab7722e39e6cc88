package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSize_AllVisitsEveryCoordinateOnce(t *testing.T) {
	s := Size{W: 3, D: 5}

	seen := make(map[Vec2]int)
	i := 0
	for v := range s.All() {
		assert.Equal(t, i, s.Index(v), "Порядок обхода должен совпадать с Index")
		assert.Equal(t, v, s.At(i), "At должен быть обратным к Index")
		seen[v]++
		i++
	}

	assert.Equal(t, s.Area(), len(seen), "Каждая координата должна встретиться")
	for v, n := range seen {
		assert.Equal(t, 1, n, "Координата %v встретилась больше одного раза", v)
	}
}

func TestSize_AllStopsEarly(t *testing.T) {
	s := Size{W: 4, D: 4}
	n := 0
	for range s.All() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestSize_Contains(t *testing.T) {
	s := Size{W: 2, D: 3}

	assert.True(t, s.Contains(Vec2{X: 0, Y: 0}))
	assert.True(t, s.Contains(Vec2{X: 1, Y: 2}))
	assert.False(t, s.Contains(Vec2{X: 2, Y: 0}))
	assert.False(t, s.Contains(Vec2{X: 0, Y: 3}))
	assert.False(t, s.Contains(Vec2{X: -1, Y: 1}))
}

func TestVec_Conversions(t *testing.T) {
	v := Vec2{X: 3, Y: 7}
	w := v.WithHeight(4)

	assert.Equal(t, Vec3{X: 3, Y: 7, Z: 4}, w)
	assert.Equal(t, v, w.ToVec2())
	assert.Equal(t, "(3,7,4)", w.String())
}

func TestVec2Float_Pan(t *testing.T) {
	cam := Vec2Float{X: 10, Y: 20}
	cam = cam.Add(Vec2Float{X: 1, Y: -1}.Scale(4))
	assert.Equal(t, Vec2Float{X: 14, Y: 16}, cam)
}
