package domain

import "errors"

// Таксономия ошибок модели. Обращение по незарегистрированному ключу или
// за пределы сетки - ошибка программирования или битых данных, поэтому
// падаем громко и сразу, а не молча игнорируем.
var (
	// ErrNotFound - иконка или маркер с таким ключом никогда не регистрировались.
	ErrNotFound = errors.New("not found")

	// ErrOutOfRange - координаты тайла вне сетки GridWidth x GridHeight.
	ErrOutOfRange = errors.New("tile out of range")

	// ErrOutOfBounds - пиксельная позиция вне прямоугольника карты.
	ErrOutOfBounds = errors.New("position out of bounds")
)
