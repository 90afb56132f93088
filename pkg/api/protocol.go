package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы ответов сервера. Клиент смотрит на Type и читает только те поля,
// которые этому типу соответствуют.
const (
	// TypeState полный снимок: сетка, открытые экраны, яйца, иконки, вьюпорт.
	TypeState = "STATE"
	// TypeTile дельта одного экрана после переключения тумана.
	TypeTile = "TILE"
	// TypeEggs дельта по яйцам (пачка обновленных маркеров).
	TypeEggs = "EGGS"
	// TypeView команда клиенту передвинуть камеру.
	TypeView = "VIEW"
	// TypeConfirm запрос подтверждения разрушительного действия.
	TypeConfirm = "CONFIRM"
	// TypeEggDClick ретрансляция двойного клика по яйцу. Eggs содержит ровно одно яйцо.
	TypeEggDClick = "EGG_DCLICK"
	// TypeError ошибка обработки команды. Уходит только отправителю.
	TypeError = "ERROR"
)

// Коды ошибок в ErrorView.Code.
const (
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeOutOfRange  = "OUT_OF_RANGE"
	ErrCodeOutOfBounds = "OUT_OF_BOUNDS"
	ErrCodeBadPayload  = "BAD_PAYLOAD"
)

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Все поля кроме Type опциональны: состав зависит от типа сообщения.
type ServerResponse struct {
	Type string `json:"type"`

	// Grid метаданные карты, чтобы клиент знал, какую сетку готовить.
	Grid *GridMeta `json:"grid,omitempty"`

	// Revealed строки 0/1 по всей сетке. Тот же формат, что и в сохранении.
	Revealed [][]int `json:"revealed,omitempty"`

	// Mask то же состояние тумана одной base36-строкой для шаринга.
	Mask string `json:"mask,omitempty"`

	// Tile дельта одного экрана (для TILE).
	Tile *TileView `json:"tile,omitempty"`

	// Eggs маркеры яиц. В STATE - все, в EGGS - только измененные.
	Eggs []EggView `json:"eggs,omitempty"`

	// Icons зарегистрированные иконки (базовая и найденная для каждого имени).
	Icons []IconView `json:"icons,omitempty"`

	// View целевая позиция камеры (для VIEW и STATE).
	View *ViewportView `json:"view,omitempty"`

	// Share канонический query вида "x=1760.0&y=810.0&z=2" для адресной строки.
	Share string `json:"share,omitempty"`

	// Confirm описание отложенного действия, ждущего подтверждения.
	Confirm *ConfirmView `json:"confirm,omitempty"`

	// Error код и текст ошибки (для ERROR).
	Error *ErrorView `json:"error,omitempty"`
}

// GridMeta содержит размеры сетки и экрана в пикселях.
type GridMeta struct {
	Width      int `json:"w"`
	Height     int `json:"h"`
	TileWidth  int `json:"tileW"`
	TileHeight int `json:"tileH"`
	HomeX      int `json:"homeX"`
	HomeY      int `json:"homeY"`
}

// TileView это DTO одного экрана карты.
type TileView struct {
	X        int  `json:"x"`
	Y        int  `json:"y"`
	Revealed bool `json:"revealed"`

	// Eggs яйца, принадлежащие этому экрану: их эффективная видимость
	// меняется вместе с туманом, поэтому едут в той же дельте.
	Eggs []EggView `json:"eggs,omitempty"`
}

// EggView это DTO маркера яйца.
type EggView struct {
	Code string `json:"code"`

	// Icon ключ иконки в реестре. Для найденного яйца уже с суффиксом "-found".
	Icon string `json:"icon"`

	// Pos пиксельная позиция на карте. Пустая, если яйцо еще не размещено.
	Pos *PosView `json:"pos,omitempty"`

	Found   bool `json:"found"`
	Visible bool `json:"visible"`

	// Shown итог: рисовать ли маркер прямо сейчас (Visible И экран открыт).
	Shown bool `json:"shown"`
}

// PosView пиксельная точка на карте.
type PosView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// IconView это DTO иконки для клиентского реестра.
type IconView struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Size    int    `json:"size"`
	Anchor  int    `json:"anchor"`
	IsFound bool   `json:"isFound"`
}

// ViewportView позиция камеры: центр в пикселях карты и зум.
type ViewportView struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom int     `json:"z"`
}

// ConfirmView описывает действие, отложенное до подтверждения.
// Клиент показывает Prompt и отвечает CONFIRM либо CANCEL с этим же ID.
type ConfirmView struct {
	ID     string `json:"id"`
	Action string `json:"action"`
	Prompt string `json:"prompt"`
}

// ErrorView код и человекочитаемый текст ошибки.
type ErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// InitPayload используется для INIT. Query - сырая строка location.search,
// из нее кодек вьюпорта достает x/y/z, если они там есть.
type InitPayload struct {
	Query string `json:"query,omitempty"`
}

// TogglePayload используется для TOGGLE_TILE.
type TogglePayload struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Revealed явное целевое состояние. nil означает "перевернуть".
	Revealed *bool `json:"revealed,omitempty"`
}

// ConfirmPayload используется для CONFIRM.
type ConfirmPayload struct {
	ID string `json:"id"`
}

// CancelPayload используется для CANCEL. Никакой валидации: отказ
// обязан проходить всегда, даже с пустым или протухшим токеном.
type CancelPayload struct {
	ID string `json:"id"`
}

// EggUpdate одна запись в пачке EGGS_UPDATED.
type EggUpdate struct {
	Code string `json:"code"`

	// Icon базовое имя иконки. Пустое - реестр подставит имя по умолчанию.
	Icon string `json:"icon,omitempty"`

	// Pos позиция. С позицией запись размещает/перемещает яйцо,
	// без позиции - только обновляет флаги уже известного.
	Pos *PosView `json:"pos,omitempty"`

	Found   bool `json:"found"`
	Visible bool `json:"visible"`
}

// EggsPayload используется для EGGS_UPDATED.
type EggsPayload struct {
	Eggs []EggUpdate `json:"eggs"`
}

// EggPayload используется для EGG_DCLICK.
type EggPayload struct {
	Code string `json:"code"`
}

// QuadrantPayload используется для GOTO_QUADRANT. Координаты квадранта
// примерные (доли карты), сервер сам приводит их к центру экрана.
type QuadrantPayload struct {
	QX float64 `json:"qx"`
	QY float64 `json:"qy"`
}

// GotoTilePayload используется для GOTO_TILE: точные пиксели цели.
type GotoTilePayload struct {
	PX int `json:"px"`
	PY int `json:"py"`

	// Reveal true - заодно открыть экран, на который указывает точка.
	Reveal bool `json:"reveal"`
}

// ViewPayload используется для VIEW_SETTLED: где камера остановилась.
type ViewPayload struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom int     `json:"z"`
}
