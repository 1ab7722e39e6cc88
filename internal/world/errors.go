package world

import "errors"

var (
	// ErrInvalidConfig – некорректные параметры генерации (scale, диапазон высот, размер)
	ErrInvalidConfig = errors.New("invalid world generation config")

	// ErrValueOutOfRange – значение карты высот вне [min_height, max_height)
	ErrValueOutOfRange = errors.New("heightmap value out of range")
)
