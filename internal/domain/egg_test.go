package domain

import (
	"errors"
	"testing"
)

func TestTileFor(t *testing.T) {
	tests := []struct {
		x, y   int
		tx, ty int
	}{
		{0, 0, 0, 0},
		{319, 179, 0, 0},   // последний пиксель первого экрана
		{320, 180, 1, 1},   // первый пиксель следующего
		{1800, 800, 5, 4},  // где-то на домашнем экране
		{5119, 2879, 15, 15},
	}
	for _, tt := range tests {
		tx, ty, err := TileFor(PixelPos{X: tt.x, Y: tt.y})
		if err != nil {
			t.Fatalf("TileFor(%d,%d): %v", tt.x, tt.y, err)
		}
		if tx != tt.tx || ty != tt.ty {
			t.Errorf("TileFor(%d,%d) = (%d,%d), want (%d,%d)", tt.x, tt.y, tx, ty, tt.tx, tt.ty)
		}
	}
}

func TestTileFor_OutOfBounds(t *testing.T) {
	bad := []PixelPos{
		{X: -1, Y: 0},
		{X: 0, Y: -1},
		{X: MapWidth, Y: 0},
		{X: 0, Y: MapHeight},
		{X: 99999, Y: 99999},
	}
	for _, pos := range bad {
		if _, _, err := TileFor(pos); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("TileFor(%d,%d) error = %v, want ErrOutOfBounds", pos.X, pos.Y, err)
		}
	}
}

func TestEggRegistry_PlaceAndUpdate(t *testing.T) {
	r := NewEggRegistry()

	egg, err := r.Place("egg-65", "", PixelPos{X: 1800, Y: 800}, false, true)
	if err != nil {
		t.Fatal(err)
	}
	if egg.TileX != 5 || egg.TileY != 4 {
		t.Errorf("owning tile = (%d,%d), want (5,4)", egg.TileX, egg.TileY)
	}
	if egg.Icon != DefaultIcon {
		t.Errorf("icon = %q, want default %q", egg.Icon, DefaultIcon)
	}
	if egg.IconKey() != DefaultIcon {
		t.Errorf("IconKey = %q for unfound egg", egg.IconKey())
	}

	// Повторный Place того же кода - перемещение, не дубль
	egg2, err := r.Place("egg-65", "egg", PixelPos{X: 10, Y: 10}, true, true)
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != 1 {
		t.Fatalf("registry len = %d after re-place, want 1", r.Len())
	}
	if egg2.TileX != 0 || egg2.TileY != 0 {
		t.Errorf("re-place should move the egg, tile = (%d,%d)", egg2.TileX, egg2.TileY)
	}
	if egg2.IconKey() != DefaultIcon+FoundSuffix {
		t.Errorf("IconKey = %q for found egg", egg2.IconKey())
	}

	// Update меняет флаги
	upd, err := r.Update("egg-65", false, false)
	if err != nil {
		t.Fatal(err)
	}
	if upd.Found || upd.Visible {
		t.Error("Update should clear both flags")
	}
}

func TestEggRegistry_Errors(t *testing.T) {
	r := NewEggRegistry()

	if _, err := r.Place("bad", "", PixelPos{X: -5, Y: 0}, false, true); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Place out of map error = %v, want ErrOutOfBounds", err)
	}
	if _, err := r.Update("ghost", true, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update unknown code error = %v, want ErrNotFound", err)
	}
	if _, err := r.Get("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get unknown code error = %v, want ErrNotFound", err)
	}
}

// Видимость маркера - чистая функция (Visible && тайл открыт).
// Переключение тайла меняет ее без отдельного вызова по каждому яйцу.
func TestEgg_ShownOn(t *testing.T) {
	g := NewGrid()
	r := NewEggRegistry()

	// Экран (2,2) скрыт; яйцо на нем с взведенным флагом видимости
	egg, err := r.Place("e1", "", PixelPos{X: 2*TileWidth + 7, Y: 2*TileHeight + 7}, false, true)
	if err != nil {
		t.Fatal(err)
	}
	if egg.ShownOn(g) {
		t.Error("egg on a hidden tile must not be shown")
	}

	// 1. Открыли тайл - яйцо показалось
	if _, err := g.Toggle(2, 2, boolPtr(true)); err != nil {
		t.Fatal(err)
	}
	if !egg.ShownOn(g) {
		t.Error("egg should be shown once its tile is revealed")
	}

	// 2. Сняли пользовательский флаг - яйцо скрылось при открытом тайле
	if _, err := r.Update("e1", false, false); err != nil {
		t.Fatal(err)
	}
	if egg.ShownOn(g) {
		t.Error("egg with visible=false must not be shown")
	}

	// 3. Вернули флаг, спрятали тайл - снова скрыто
	r.Update("e1", false, true)
	g.Toggle(2, 2, boolPtr(false))
	if egg.ShownOn(g) {
		t.Error("hiding the tile must hide the egg again")
	}
}

func TestEggRegistry_OnTileAndBulk(t *testing.T) {
	r := NewEggRegistry()
	r.Place("a", "", PixelPos{X: 5, Y: 5}, false, true)           // тайл (0,0)
	r.Place("b", "", PixelPos{X: 300, Y: 170}, false, true)       // тоже (0,0)
	r.Place("c", "", PixelPos{X: 5000, Y: 2800}, false, true)     // (15,15)

	onHome := r.OnTile(0, 0)
	if len(onHome) != 2 {
		t.Fatalf("OnTile(0,0) = %d eggs, want 2", len(onHome))
	}
	// Порядок регистрации стабильный
	if onHome[0].Code != "a" || onHome[1].Code != "b" {
		t.Errorf("OnTile order = %q,%q", onHome[0].Code, onHome[1].Code)
	}

	r.SetAllVisible(false)
	for _, e := range r.All() {
		if e.Visible {
			t.Fatalf("egg %q still visible after SetAllVisible(false)", e.Code)
		}
	}
}
