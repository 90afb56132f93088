package domain

// Геометрия карты. Один фиксированный мир, никакой мульти-карты:
// картинка нарезана на сетку экранов 16x16, экран = 320x180 пикселей
// (нативное разрешение игры).
const (
	GridWidth  = 16
	GridHeight = 16

	TileWidth  = 320
	TileHeight = 180

	MapWidth  = GridWidth * TileWidth   // 5120
	MapHeight = GridHeight * TileHeight // 2880
)

// Домашний экран. Открыт с первого запуска; "скрыть все" никогда его не прячет.
const (
	HomeTileX = 5
	HomeTileY = 4
)

// Пределы зума подложки (CRS.Simple на клиенте).
const (
	ZoomMin     = 0
	ZoomMax     = 4
	ZoomDefault = 2
)

// SaveKey - ключ, под которым хранится состояние открытых экранов.
// Исторически совпадает с ключом localStorage старого клиента.
const SaveKey = "map"

// Параметры иконок маркеров
const (
	IconSizePx  = 32
	FoundSuffix = "-found"
	DefaultIcon = "egg"
)
