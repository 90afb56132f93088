package handlers

import (
	"encoding/json"

	"github.com/sntrenter/AnimalWell-Helper/internal/domain"
	"github.com/sntrenter/AnimalWell-Helper/pkg/api"
)

// Context передает хендлеру состояние виджета.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
// Все хендлеры выполняются на одной горутине сервиса, поэтому блокировок
// внутри нет и быть не должно.
type Context struct {
	Grid  *domain.Grid
	Eggs  *domain.EggRegistry
	Icons *domain.IconRegistry

	// View - общий вьюпорт виджета. Хендлеры панорамирования пишут в него.
	View *domain.Viewport

	// Confirms - отложенные разрушительные действия.
	Confirms *ConfirmBroker

	// SessionID - вкладка, приславшая команду.
	SessionID string
}

// Result - результат выполнения команды.
// Хендлер НЕ шлет сообщения в хаб напрямую, он возвращает данные.
type Result struct {
	Reply     *api.ServerResponse // Ответ только отправителю
	Broadcast *api.ServerResponse // Рассылка всем вкладкам
	Persist   bool                // Состояние тумана изменилось, пора сохранять
}

// HandlerFunc - это контракт для любой команды (TOGGLE_TILE, EGGS_UPDATED, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
