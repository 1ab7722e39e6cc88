// Package render содержит текстовый рендерер срезов мира для headless-режима.
package render

import (
	"strings"

	"github.com/annel0/fortress-slice/internal/shadow"
	"github.com/annel0/fortress-slice/internal/vec"
	"github.com/annel0/fortress-slice/internal/world"
)

const heightDigits = "0123456789abcdefghijklmnopqrstuvwxyz"

// Heightmap рисует карту высот: одна цифра base36 на клетку, '+' для высот >= 36
func Heightmap(hm *world.Heightmap) string {
	size := hm.Size()
	var sb strings.Builder
	sb.Grow((size.W + 1) * size.D)

	for y := 0; y < size.D; y++ {
		for x := 0; x < size.W; x++ {
			h := int(hm.At(vec.Vec2{X: x, Y: y}))
			if h < len(heightDigits) {
				sb.WriteByte(heightDigits[h])
			} else {
				sb.WriteByte('+')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Slice рисует то, что видит зритель на высоте viewed:
//
//	'#' – видимая земля на просматриваемом слое;
//	'1'..'9' – видимая земля ниже, цифра – глубина (до 9);
//	'*' – земля глубже 9 слоёв;
//	' ' – ничего не видно.
//
// Затенённые клетки берутся из слоя теней, чтобы глубина совпадала с тем, что рисует графический клиент.
func Slice(w *world.World, o *shadow.Overlay, viewed world.Height) string {
	size := w.Size()
	layer := w.Layer(viewed)

	var sb strings.Builder
	sb.Grow((size.W + 1) * size.D)

	for y := 0; y < size.D; y++ {
		for x := 0; x < size.W; x++ {
			sb.WriteByte(sliceCell(layer, o, vec.Vec2{X: x, Y: y}, viewed))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func sliceCell(layer *world.Layer, o *shadow.Overlay, v vec.Vec2, viewed world.Height) byte {
	if layer != nil {
		if t, ok := layer.Get(v); ok && t.Visible && t.IsTerrain() {
			return '#'
		}
	}
	if o == nil {
		return ' '
	}
	cell, ok := o.At(v)
	if !ok {
		return ' '
	}
	depth := shadow.Depth(viewed, cell.Height)
	switch {
	case depth == 0:
		return '#'
	case depth <= 9:
		return byte('0' + depth)
	default:
		return '*'
	}
}
