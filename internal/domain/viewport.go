package domain

import (
	"net/url"
	"strconv"
)

// Viewport - позиция камеры: центр в пиксельных координатах карты плюс зум.
// Сериализуется в query-параметры x/y/z, чтобы ссылку на место можно было
// закинуть в закладки или отправить другу.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom int     `json:"z"`
}

// DefaultViewport - центр домашнего экрана на зуме по умолчанию.
func DefaultViewport() Viewport {
	return Viewport{
		X:    HomeTileX*TileWidth + TileWidth/2,
		Y:    HomeTileY*TileHeight + TileHeight/2,
		Zoom: ZoomDefault,
	}
}

// ParseViewport читает x/y/z из query-параметров. ok=false, когда x и y
// оба отсутствуют или нулевые - это значит "позиция не задана", и вызывающий
// падает обратно на DefaultViewport. Кодек дергается только при загрузке
// и на settle-событиях карты, не на каждом кадре панорамирования.
func ParseViewport(q url.Values) (Viewport, bool) {
	x, _ := strconv.ParseFloat(q.Get("x"), 64)
	y, _ := strconv.ParseFloat(q.Get("y"), 64)
	if x == 0 && y == 0 {
		return Viewport{}, false
	}

	zoom := ZoomDefault
	if z, err := strconv.Atoi(q.Get("z")); err == nil {
		zoom = ClampZoom(z)
	}
	return Viewport{X: x, Y: y, Zoom: zoom}, true
}

// Query - обратное преобразование: позиция округляется до одного знака,
// зум до целого, чтобы ссылки оставались короткими.
func (v Viewport) Query() url.Values {
	q := url.Values{}
	q.Set("x", strconv.FormatFloat(v.X, 'f', 1, 64))
	q.Set("y", strconv.FormatFloat(v.Y, 'f', 1, 64))
	q.Set("z", strconv.Itoa(v.Zoom))
	return q
}

// QueryString - готовая строка вида "x=1760.0&y=810.0&z=2".
func (v Viewport) QueryString() string {
	return v.Query().Encode()
}

// ClampZoom загоняет зум в допустимые пределы.
func ClampZoom(z int) int {
	if z < ZoomMin {
		return ZoomMin
	}
	if z > ZoomMax {
		return ZoomMax
	}
	return z
}
