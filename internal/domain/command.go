package domain

import "encoding/json"

// InternalCommand - команда в очереди движка. Все мутации состояния
// проходят через нее: одна горутина-владелец разбирает очередь, поэтому
// конкурентных писателей у сетки и маркеров не бывает.
type InternalCommand struct {
	Action    ActionType      // Число вместо строки: быстро и безопасно.
	SessionID string          // Сессия-отправитель (адрес для ответа)
	Payload   json.RawMessage // Сырые данные (парсятся хендлером)
}
