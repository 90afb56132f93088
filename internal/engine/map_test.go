package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sntrenter/AnimalWell-Helper/internal/domain"
	"github.com/sntrenter/AnimalWell-Helper/pkg/api"
)

// Helper: сервис с чистым сохранением во временном каталоге
func newTestService(t *testing.T) *MapService {
	t.Helper()
	return NewService(Config{DataDir: t.TempDir(), SaveKey: "map"})
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

// recv снимает одно сообщение, которое уже должно лежать в канале.
// execute синхронный, так что ждать нечего.
func recv(t *testing.T, ch chan api.ServerResponse) api.ServerResponse {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	default:
		t.Fatal("expected a message, channel is empty")
		return api.ServerResponse{}
	}
}

func noMsg(t *testing.T, ch chan api.ServerResponse) {
	t.Helper()
	select {
	case msg := <-ch:
		t.Fatalf("unexpected message of type %q", msg.Type)
	default:
	}
}

func TestInit_DefaultState(t *testing.T) {
	s := newTestService(t)
	ch := s.Hub.Register("tab1")

	s.execute(domain.InternalCommand{Action: domain.ActionInit, SessionID: "tab1"})

	resp := recv(t, ch)
	if resp.Type != api.TypeState {
		t.Fatalf("type = %q, want STATE", resp.Type)
	}
	if resp.Grid == nil || resp.Grid.Width != domain.GridWidth || resp.Grid.Height != domain.GridHeight {
		t.Fatalf("grid meta = %+v", resp.Grid)
	}
	if len(resp.Revealed) != domain.GridHeight {
		t.Fatalf("revealed rows = %d", len(resp.Revealed))
	}

	// Свежая карта: открыт ровно домашний экран
	total := 0
	for _, row := range resp.Revealed {
		for _, v := range row {
			total += v
		}
	}
	if total != 1 || resp.Revealed[domain.HomeTileY][domain.HomeTileX] != 1 {
		t.Errorf("fresh map should reveal only home, revealed %d tiles", total)
	}

	if resp.View == nil || resp.View.X != 1760 || resp.View.Y != 810 || resp.View.Zoom != domain.ZoomDefault {
		t.Errorf("default view = %+v", resp.View)
	}
	if resp.Share != "x=1760.0&y=810.0&z=2" {
		t.Errorf("share = %q", resp.Share)
	}

	// Иконка по умолчанию заведена парой
	names := map[string]bool{}
	for _, ic := range resp.Icons {
		names[ic.Name] = true
	}
	if !names[domain.DefaultIcon] || !names[domain.DefaultIcon+domain.FoundSuffix] {
		t.Errorf("default icon pair missing: %v", names)
	}
}

func TestInit_QueryViewport(t *testing.T) {
	s := newTestService(t)
	ch := s.Hub.Register("tab1")

	// location.search приходит как есть, с ведущим "?"
	payload := mustJSON(t, api.InitPayload{Query: "?x=500.0&y=600.0&z=4"})
	s.execute(domain.InternalCommand{Action: domain.ActionInit, SessionID: "tab1", Payload: payload})

	resp := recv(t, ch)
	if resp.View.X != 500 || resp.View.Y != 600 || resp.View.Zoom != 4 {
		t.Errorf("view from query = %+v", resp.View)
	}
	if s.View.X != 500 {
		t.Error("parsed viewport must become the current one")
	}
}

func TestToggle_BroadcastsDelta(t *testing.T) {
	s := newTestService(t)
	chA := s.Hub.Register("tabA")
	chB := s.Hub.Register("tabB")

	payload := mustJSON(t, api.TogglePayload{X: 2, Y: 3})
	s.execute(domain.InternalCommand{Action: domain.ActionToggleTile, SessionID: "tabA", Payload: payload})

	// Дельта уходит всем вкладкам, не только отправителю
	for _, ch := range []chan api.ServerResponse{chA, chB} {
		resp := recv(t, ch)
		if resp.Type != api.TypeTile {
			t.Fatalf("type = %q, want TILE", resp.Type)
		}
		if resp.Tile.X != 2 || resp.Tile.Y != 3 || !resp.Tile.Revealed {
			t.Errorf("tile delta = %+v", resp.Tile)
		}
	}

	tile, err := s.Grid.At(2, 3)
	if err != nil || !tile.Revealed {
		t.Error("grid state not mutated")
	}
}

func TestToggle_OutOfRange(t *testing.T) {
	s := newTestService(t)
	chA := s.Hub.Register("tabA")
	chB := s.Hub.Register("tabB")

	payload := mustJSON(t, api.TogglePayload{X: 99, Y: 99})
	s.execute(domain.InternalCommand{Action: domain.ActionToggleTile, SessionID: "tabA", Payload: payload})

	resp := recv(t, chA)
	if resp.Type != api.TypeError || resp.Error.Code != api.ErrCodeOutOfRange {
		t.Errorf("got %q/%+v, want ERROR OUT_OF_RANGE", resp.Type, resp.Error)
	}
	// Ошибки - личное дело отправителя
	noMsg(t, chB)
}

func TestConfirmFlow_RevealAll(t *testing.T) {
	s := newTestService(t)
	ch := s.Hub.Register("tab1")

	// 1. Запрос не выполняется сразу - приходит вопрос
	s.execute(domain.InternalCommand{Action: domain.ActionRevealAll, SessionID: "tab1"})
	ask := recv(t, ch)
	if ask.Type != api.TypeConfirm || ask.Confirm == nil || ask.Confirm.ID == "" {
		t.Fatalf("expected CONFIRM with id, got %+v", ask)
	}
	if ask.Confirm.Action != "REVEAL_ALL" {
		t.Errorf("confirm action = %q", ask.Confirm.Action)
	}
	if s.Grid.RevealedCount() != 1 {
		t.Fatal("map revealed before confirmation")
	}

	// 2. Подтверждение выполняет и рассылает полный снимок
	payload := mustJSON(t, api.ConfirmPayload{ID: ask.Confirm.ID})
	s.execute(domain.InternalCommand{Action: domain.ActionConfirm, SessionID: "tab1", Payload: payload})

	state := recv(t, ch)
	if state.Type != api.TypeState {
		t.Fatalf("type = %q, want STATE", state.Type)
	}
	if s.Grid.RevealedCount() != domain.GridWidth*domain.GridHeight {
		t.Errorf("revealed = %d after confirm", s.Grid.RevealedCount())
	}

	// 3. Токен одноразовый
	s.execute(domain.InternalCommand{Action: domain.ActionConfirm, SessionID: "tab1", Payload: payload})
	again := recv(t, ch)
	if again.Type != api.TypeError || again.Error.Code != api.ErrCodeNotFound {
		t.Errorf("reused token: got %q/%+v", again.Type, again.Error)
	}
}

func TestCancel_DropsPending(t *testing.T) {
	s := newTestService(t)
	ch := s.Hub.Register("tab1")

	s.execute(domain.InternalCommand{Action: domain.ActionRevealAll, SessionID: "tab1"})
	ask := recv(t, ch)

	// Отказ молчаливый и всегда успешный
	payload := mustJSON(t, api.CancelPayload{ID: ask.Confirm.ID})
	s.execute(domain.InternalCommand{Action: domain.ActionCancel, SessionID: "tab1", Payload: payload})
	noMsg(t, ch)
	if s.Grid.RevealedCount() != 1 {
		t.Error("cancel must not execute the action")
	}

	// После отказа токен мертв
	confirm := mustJSON(t, api.ConfirmPayload{ID: ask.Confirm.ID})
	s.execute(domain.InternalCommand{Action: domain.ActionConfirm, SessionID: "tab1", Payload: confirm})
	resp := recv(t, ch)
	if resp.Type != api.TypeError || resp.Error.Code != api.ErrCodeNotFound {
		t.Errorf("confirm after cancel: %q/%+v", resp.Type, resp.Error)
	}

	// Отказ с чужим токеном - тоже не ошибка
	s.execute(domain.InternalCommand{Action: domain.ActionCancel, SessionID: "tab1", Payload: mustJSON(t, api.CancelPayload{ID: "ghost"})})
	noMsg(t, ch)
}

func TestConfirm_NewerRequestWins(t *testing.T) {
	s := newTestService(t)
	ch := s.Hub.Register("tab1")

	s.execute(domain.InternalCommand{Action: domain.ActionRevealAll, SessionID: "tab1"})
	first := recv(t, ch)
	s.execute(domain.InternalCommand{Action: domain.ActionHideAllEggs, SessionID: "tab1"})
	second := recv(t, ch)

	// Старый вопрос вытеснен новым
	payload := mustJSON(t, api.ConfirmPayload{ID: first.Confirm.ID})
	s.execute(domain.InternalCommand{Action: domain.ActionConfirm, SessionID: "tab1", Payload: payload})
	resp := recv(t, ch)
	if resp.Type != api.TypeError || resp.Error.Code != api.ErrCodeNotFound {
		t.Fatalf("stale confirm: %q/%+v", resp.Type, resp.Error)
	}

	payload = mustJSON(t, api.ConfirmPayload{ID: second.Confirm.ID})
	s.execute(domain.InternalCommand{Action: domain.ActionConfirm, SessionID: "tab1", Payload: payload})
	if resp := recv(t, ch); resp.Type != api.TypeState {
		t.Errorf("fresh confirm: type = %q", resp.Type)
	}
}

func TestEggsUpdated_Batch(t *testing.T) {
	s := newTestService(t)
	ch := s.Hub.Register("tab1")

	payload := mustJSON(t, api.EggsPayload{Eggs: []api.EggUpdate{
		// Новое яйцо на домашнем экране (он открыт) - сразу видно
		{Code: "egg-65", Icon: "bunny", Pos: &api.PosView{X: 1800, Y: 800}, Visible: true},
		// Неизвестный код без позиции размещать нечего - пропускается
		{Code: "ghost", Found: true},
	}})
	s.execute(domain.InternalCommand{Action: domain.ActionEggsUpdated, SessionID: "tab1", Payload: payload})

	resp := recv(t, ch)
	if resp.Type != api.TypeEggs {
		t.Fatalf("type = %q, want EGGS", resp.Type)
	}
	if len(resp.Eggs) != 1 {
		t.Fatalf("eggs in delta = %d, want 1 (ghost skipped)", len(resp.Eggs))
	}
	egg := resp.Eggs[0]
	if egg.Code != "egg-65" || egg.Icon != "bunny" || !egg.Shown {
		t.Errorf("egg view = %+v", egg)
	}

	// Иконка зарегистрировалась парой
	if _, err := s.Icons.Get("bunny-found"); err != nil {
		t.Errorf("found icon variant not ensured: %v", err)
	}

	// Обновление флагов без позиции
	payload = mustJSON(t, api.EggsPayload{Eggs: []api.EggUpdate{
		{Code: "egg-65", Found: true, Visible: true},
	}})
	s.execute(domain.InternalCommand{Action: domain.ActionEggsUpdated, SessionID: "tab1", Payload: payload})

	resp = recv(t, ch)
	if resp.Eggs[0].Icon != "bunny-found" {
		t.Errorf("found egg icon = %q", resp.Eggs[0].Icon)
	}
}

func TestEggDClick(t *testing.T) {
	s := newTestService(t)
	chA := s.Hub.Register("tabA")
	chB := s.Hub.Register("tabB")

	if _, err := s.Eggs.Place("egg-1", "", domain.PixelPos{X: 10, Y: 10}, false, true); err != nil {
		t.Fatal(err)
	}

	payload := mustJSON(t, api.EggPayload{Code: "egg-1"})
	s.execute(domain.InternalCommand{Action: domain.ActionEggDClick, SessionID: "tabA", Payload: payload})

	// Ретрансляция уходит всем, включая источник
	for _, ch := range []chan api.ServerResponse{chA, chB} {
		resp := recv(t, ch)
		if resp.Type != api.TypeEggDClick || len(resp.Eggs) != 1 || resp.Eggs[0].Code != "egg-1" {
			t.Errorf("dclick relay = %+v", resp)
		}
	}

	// Неизвестный код - ошибка отправителю
	payload = mustJSON(t, api.EggPayload{Code: "nope"})
	s.execute(domain.InternalCommand{Action: domain.ActionEggDClick, SessionID: "tabA", Payload: payload})
	resp := recv(t, chA)
	if resp.Type != api.TypeError || resp.Error.Code != api.ErrCodeNotFound {
		t.Errorf("unknown egg: %q/%+v", resp.Type, resp.Error)
	}
	noMsg(t, chB)
}

func TestGotoQuadrant_SnapsToScreenCenter(t *testing.T) {
	s := newTestService(t)
	ch := s.Hub.Register("tab1")

	payload := mustJSON(t, api.QuadrantPayload{QX: 700, QY: 500})
	s.execute(domain.InternalCommand{Action: domain.ActionGotoQuadrant, SessionID: "tab1", Payload: payload})

	resp := recv(t, ch)
	// (700,500) лежит на экране (2,2), его центр - (800,450)
	if resp.Type != api.TypeView || resp.View.X != 800 || resp.View.Y != 450 {
		t.Errorf("view = %+v", resp.View)
	}
	if resp.View.Zoom != domain.ZoomDefault {
		t.Errorf("zoom changed to %d", resp.View.Zoom)
	}

	// Координаты за картой прижимаются, а не падают
	payload = mustJSON(t, api.QuadrantPayload{QX: -50, QY: 99999})
	s.execute(domain.InternalCommand{Action: domain.ActionGotoQuadrant, SessionID: "tab1", Payload: payload})
	resp = recv(t, ch)
	if resp.View.X != 160 || resp.View.Y != float64(15*domain.TileHeight+domain.TileHeight/2) {
		t.Errorf("clamped view = %+v", resp.View)
	}
}

func TestGotoTile_RevealOnDemand(t *testing.T) {
	s := newTestService(t)
	ch := s.Hub.Register("tab1")

	payload := mustJSON(t, api.GotoTilePayload{PX: 650, PY: 400, Reveal: true})
	s.execute(domain.InternalCommand{Action: domain.ActionGotoTile, SessionID: "tab1", Payload: payload})

	// Сначала личный ответ с точной целью, затем общая дельта экрана
	view := recv(t, ch)
	if view.Type != api.TypeView || view.View.X != 650 || view.View.Y != 400 {
		t.Fatalf("view reply = %+v", view)
	}
	delta := recv(t, ch)
	if delta.Type != api.TypeTile || delta.Tile.X != 2 || delta.Tile.Y != 2 || !delta.Tile.Revealed {
		t.Fatalf("tile delta = %+v", delta.Tile)
	}

	// Повторный заход на уже открытый экран дельту не шлет
	s.execute(domain.InternalCommand{Action: domain.ActionGotoTile, SessionID: "tab1", Payload: payload})
	if resp := recv(t, ch); resp.Type != api.TypeView {
		t.Fatalf("expected only VIEW, got %q", resp.Type)
	}
	noMsg(t, ch)

	// Точка за пределами карты
	payload = mustJSON(t, api.GotoTilePayload{PX: 99999, PY: 0})
	s.execute(domain.InternalCommand{Action: domain.ActionGotoTile, SessionID: "tab1", Payload: payload})
	resp := recv(t, ch)
	if resp.Type != api.TypeError || resp.Error.Code != api.ErrCodeOutOfBounds {
		t.Errorf("oob goto: %q/%+v", resp.Type, resp.Error)
	}
}

func TestViewSettled_SharesCanonicalQuery(t *testing.T) {
	s := newTestService(t)
	ch := s.Hub.Register("tab1")

	payload := mustJSON(t, api.ViewPayload{X: 100.5, Y: 200.3, Zoom: 9})
	s.execute(domain.InternalCommand{Action: domain.ActionViewSettled, SessionID: "tab1", Payload: payload})

	resp := recv(t, ch)
	if resp.Type != api.TypeView {
		t.Fatalf("type = %q", resp.Type)
	}
	// Зум прижат к потолку, share собран кодеком
	if resp.View.Zoom != domain.ZoomMax {
		t.Errorf("zoom = %d", resp.View.Zoom)
	}
	if resp.Share != "x=100.5&y=200.3&z=4" {
		t.Errorf("share = %q", resp.Share)
	}
	if s.View.X != 100.5 || s.View.Zoom != domain.ZoomMax {
		t.Errorf("stored view = %+v", s.View)
	}
}

// Туман переживает перезапуск: что натыкали - то и загрузится.
func TestPersistence_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	s1 := NewService(Config{DataDir: dir, SaveKey: "map"})
	for _, pos := range [][2]int{{2, 3}, {7, 7}, {15, 15}} {
		payload := mustJSON(t, api.TogglePayload{X: pos[0], Y: pos[1]})
		s1.execute(domain.InternalCommand{Action: domain.ActionToggleTile, SessionID: "x", Payload: payload})
	}

	s2 := NewService(Config{DataDir: dir, SaveKey: "map"})
	if s2.Grid.RevealedCount() != 4 { // домашний + три натыканных
		t.Fatalf("revealed after reload = %d, want 4", s2.Grid.RevealedCount())
	}
	for _, pos := range [][2]int{{2, 3}, {7, 7}, {15, 15}, {domain.HomeTileX, domain.HomeTileY}} {
		tile, err := s2.Grid.At(pos[0], pos[1])
		if err != nil || !tile.Revealed {
			t.Errorf("tile (%d,%d) lost on reload", pos[0], pos[1])
		}
	}
}

func TestProcessCommand_UnknownAction(t *testing.T) {
	s := newTestService(t)
	ch := s.Hub.Register("tab1")

	s.ProcessCommand("tab1", api.ClientCommand{Action: "FLY_TO_THE_MOON"})

	resp := recv(t, ch)
	if resp.Type != api.TypeError || resp.Error.Code != api.ErrCodeBadPayload {
		t.Errorf("unknown action: %q/%+v", resp.Type, resp.Error)
	}
}

func TestBadPayload(t *testing.T) {
	s := newTestService(t)
	ch := s.Hub.Register("tab1")

	// Мусор вместо JSON
	s.execute(domain.InternalCommand{
		Action: domain.ActionToggleTile, SessionID: "tab1",
		Payload: json.RawMessage(`{"x": "not a number"}`),
	})
	resp := recv(t, ch)
	if resp.Type != api.TypeError || resp.Error.Code != api.ErrCodeBadPayload {
		t.Errorf("garbage payload: %q/%+v", resp.Type, resp.Error)
	}

	// CONFIRM без токена режется валидатором
	s.execute(domain.InternalCommand{Action: domain.ActionConfirm, SessionID: "tab1"})
	resp = recv(t, ch)
	if resp.Type != api.TypeError || resp.Error.Code != api.ErrCodeBadPayload {
		t.Errorf("empty confirm: %q/%+v", resp.Type, resp.Error)
	}
}

// Полный проезд через работающий цикл: команда, снимок, остановка.
func TestLoop_EndToEnd(t *testing.T) {
	s := newTestService(t)
	ch := s.Hub.Register("tab1")

	s.Start()

	s.ProcessCommand("tab1", api.ClientCommand{
		Action:  "TOGGLE_TILE",
		Payload: mustJSON(t, api.TogglePayload{X: 1, Y: 1}),
	})

	select {
	case resp := <-ch:
		if resp.Type != api.TypeTile || !resp.Tile.Revealed {
			t.Errorf("loop delta = %+v", resp)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no broadcast from the loop")
	}

	snap := s.Snapshot()
	if snap.Type != api.TypeState || snap.Revealed[1][1] != 1 {
		t.Errorf("snapshot = %q, revealed[1][1] = %v", snap.Type, snap.Revealed[1][1])
	}

	s.Stop()

	// После остановки снимок все еще доступен (REST не должен виснуть)
	if snap := s.Snapshot(); snap.Type != api.TypeState {
		t.Errorf("post-stop snapshot type = %q", snap.Type)
	}
}
