package domain

import "fmt"

// Tile - один экран карты. Создается один раз при инициализации сетки,
// дальше мутируется на месте и никогда не удаляется.
type Tile struct {
	X        int  `json:"x"`
	Y        int  `json:"y"`
	Revealed bool `json:"revealed"`
}

// Grid - модель тумана войны: фиксированная сетка тайлов поверх картинки
// карты. Владеет состоянием открыто/скрыто; вся производная видимость
// маркеров считается от него.
type Grid struct {
	Width  int
	Height int

	tiles [][]Tile // [y][x], строки сверху вниз
}

// NewGrid создает сетку GridWidth x GridHeight. Все тайлы скрыты,
// кроме домашнего экрана.
func NewGrid() *Grid {
	g := &Grid{
		Width:  GridWidth,
		Height: GridHeight,
		tiles:  make([][]Tile, GridHeight),
	}
	for y := 0; y < g.Height; y++ {
		row := make([]Tile, g.Width)
		for x := 0; x < g.Width; x++ {
			row[x] = Tile{X: x, Y: y}
		}
		g.tiles[y] = row
	}
	g.tiles[HomeTileY][HomeTileX].Revealed = true
	return g
}

// Index возвращает линейный индекс тайла (row-major). Используется
// битовой маской и не проверяет границы - на то есть At.
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// At - доступ к тайлу с проверкой границ. Прямой индексации в сетку,
// которая падала бы паникой, снаружи пакета нет.
func (g *Grid) At(x, y int) (*Tile, error) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return nil, fmt.Errorf("tile (%d,%d): %w", x, y, ErrOutOfRange)
	}
	return &g.tiles[y][x], nil
}

// Toggle меняет состояние тайла. explicit == nil - инвертировать,
// иначе выставить ровно это значение (идемпотентно).
func (g *Grid) Toggle(x, y int, explicit *bool) (*Tile, error) {
	t, err := g.At(x, y)
	if err != nil {
		return nil, err
	}
	if explicit != nil {
		t.Revealed = *explicit
	} else {
		t.Revealed = !t.Revealed
	}
	return t, nil
}

// RevealAll открывает всю карту.
func (g *Grid) RevealAll() {
	g.setAll(true)
}

// HideAll прячет всю карту, но домашний экран остается открытым всегда.
func (g *Grid) HideAll() {
	g.setAll(false)
	g.tiles[HomeTileY][HomeTileX].Revealed = true
}

func (g *Grid) setAll(v bool) {
	for y := range g.tiles {
		for x := range g.tiles[y] {
			g.tiles[y][x].Revealed = v
		}
	}
}

// RevealedCount считает открытые тайлы (для логов и /debug).
func (g *Grid) RevealedCount() int {
	n := 0
	for y := range g.tiles {
		for x := range g.tiles[y] {
			if g.tiles[y][x].Revealed {
				n++
			}
		}
	}
	return n
}

// RevealedRows отдает состояние сетки как массив строк из 0/1 -
// именно эта форма пишется в сохранение ({"revealed": [[...], ...]}).
func (g *Grid) RevealedRows() [][]int {
	rows := make([][]int, g.Height)
	for y := 0; y < g.Height; y++ {
		row := make([]int, g.Width)
		for x := 0; x < g.Width; x++ {
			if g.tiles[y][x].Revealed {
				row[x] = 1
			}
		}
		rows[y] = row
	}
	return rows
}

// ApplyRows проигрывает сохраненное состояние в сетку. Формат терпимый:
// недостающие строки/столбцы считаются скрытыми, лишние игнорируются.
// Сохраненное состояние восстанавливается как есть, включая вручную
// скрытый домашний экран: правило "дом всегда открыт" применяется
// только к массовым операциям.
func (g *Grid) ApplyRows(rows [][]int) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			v := false
			if y < len(rows) && x < len(rows[y]) {
				v = rows[y][x] != 0
			}
			g.tiles[y][x].Revealed = v
		}
	}
}
