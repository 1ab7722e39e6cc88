package world

import (
	"image/color"

	"github.com/annel0/fortress-slice/internal/vec"
)

// Kind – классификация вокселя
type Kind uint8

const (
	Open    Kind = iota // Воздух над поверхностью
	Terrain             // Твёрдая земля на уровне поверхности и ниже
)

func (k Kind) String() string {
	switch k {
	case Open:
		return "open"
	case Terrain:
		return "terrain"
	default:
		return "unknown"
	}
}

// Classify – тотальная функция классификации: Terrain, если h <= surface, иначе Open
func Classify(h, surface Height) Kind {
	if h > surface {
		return Open
	}
	return Terrain
}

// Tile – одна клетка одного слоя
type Tile struct {
	Pos     vec.Vec3 // Мировая координата, Z – высота слоя
	Kind    Kind
	Visible bool // Управляется только контроллером видимости
}

// Height возвращает высоту слоя тайла
func (t *Tile) Height() Height {
	return Height(t.Pos.Z)
}

// IsTerrain сообщает, является ли тайл твёрдой землёй
func (t *Tile) IsTerrain() bool {
	return t.Kind == Terrain
}

// Tint возвращает базовый цвет тайла: зелёный канал растёт с высотой слоя
func (t *Tile) Tint() color.RGBA {
	return color.RGBA{R: 10, G: uint8(t.Pos.Z), B: 10, A: 255}
}
