package domain

import "fmt"

// PixelPos - позиция в пиксельных координатах карты.
type PixelPos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TileFor вычисляет экран, которому принадлежит пиксель: целочисленное
// деление на размер экрана. Позиция вне картинки - ErrOutOfBounds.
func TileFor(pos PixelPos) (tx, ty int, err error) {
	if pos.X < 0 || pos.X >= MapWidth || pos.Y < 0 || pos.Y >= MapHeight {
		return 0, 0, fmt.Errorf("pixel (%d,%d): %w", pos.X, pos.Y, ErrOutOfBounds)
	}
	return pos.X / TileWidth, pos.Y / TileHeight, nil
}

// Egg - коллекционное яйцо (маркер на карте).
//
// Отображаемое состояние маркера - чистая функция от (Found, Visible,
// tile.Revealed): маркер виден, только когда пользовательский флаг
// Visible взведен И его экран открыт; вариант иконки "found" берется
// ровно при Found.
type Egg struct {
	Code string `json:"code"`
	Icon string `json:"icon"`

	// Placed=false означает "позиции нет": яйцо известно приложению,
	// но на карте не стоит. Pos/TileX/TileY валидны только при Placed.
	Placed bool     `json:"placed"`
	Pos    PixelPos `json:"pos"`
	TileX  int      `json:"tileX"`
	TileY  int      `json:"tileY"`

	Found   bool `json:"found"`
	Visible bool `json:"visible"`
}

// IconKey - ключ иконки в реестре с учетом состояния Found.
func (e *Egg) IconKey() string {
	if e.Found {
		return e.Icon + FoundSuffix
	}
	return e.Icon
}

// ShownOn применяет правило видимости к конкретной сетке.
func (e *Egg) ShownOn(g *Grid) bool {
	if !e.Placed || !e.Visible {
		return false
	}
	t, err := g.At(e.TileX, e.TileY)
	if err != nil {
		return false
	}
	return t.Revealed
}

// EggRegistry - все известные виджету маркеры, по уникальному коду.
// Порядок регистрации запоминается, чтобы снапшоты были стабильными.
type EggRegistry struct {
	byCode map[string]*Egg
	order  []string
}

func NewEggRegistry() *EggRegistry {
	return &EggRegistry{byCode: make(map[string]*Egg)}
}

// Place регистрирует яйцо на карте (или перемещает уже известное).
// Owning-тайл считается один раз здесь; позиция вне карты - ErrOutOfBounds.
func (r *EggRegistry) Place(code, icon string, pos PixelPos, found, visible bool) (*Egg, error) {
	tx, ty, err := TileFor(pos)
	if err != nil {
		return nil, fmt.Errorf("place %q: %w", code, err)
	}
	if icon == "" {
		icon = DefaultIcon
	}

	e, ok := r.byCode[code]
	if !ok {
		e = &Egg{Code: code}
		r.byCode[code] = e
		r.order = append(r.order, code)
	}
	e.Icon = icon
	e.Placed = true
	e.Pos = pos
	e.TileX, e.TileY = tx, ty
	e.Found = found
	e.Visible = visible
	return e, nil
}

// Update меняет флаги уже зарегистрированного яйца.
func (r *EggRegistry) Update(code string, found, visible bool) (*Egg, error) {
	e, ok := r.byCode[code]
	if !ok {
		return nil, fmt.Errorf("egg %q: %w", code, ErrNotFound)
	}
	e.Found = found
	e.Visible = visible
	return e, nil
}

// Get возвращает яйцо по коду.
func (r *EggRegistry) Get(code string) (*Egg, error) {
	e, ok := r.byCode[code]
	if !ok {
		return nil, fmt.Errorf("egg %q: %w", code, ErrNotFound)
	}
	return e, nil
}

// All - все яйца в порядке регистрации.
func (r *EggRegistry) All() []*Egg {
	out := make([]*Egg, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.byCode[code])
	}
	return out
}

// OnTile - яйца, стоящие на конкретном экране. Зовется при каждом
// переключении тайла: их видимость нужно пересчитать без отдельной команды.
func (r *EggRegistry) OnTile(tx, ty int) []*Egg {
	var out []*Egg
	for _, code := range r.order {
		e := r.byCode[code]
		if e.Placed && e.TileX == tx && e.TileY == ty {
			out = append(out, e)
		}
	}
	return out
}

// SetAllVisible массово выставляет пользовательский флаг видимости.
func (r *EggRegistry) SetAllVisible(v bool) {
	for _, e := range r.byCode {
		e.Visible = v
	}
}

// Len - количество зарегистрированных яиц.
func (r *EggRegistry) Len() int {
	return len(r.byCode)
}
