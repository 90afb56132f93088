package storage

import (
	"encoding/json"
	"os"

	"github.com/sntrenter/AnimalWell-Helper/pkg/logger"
)

// LoadGrid читает сохраненные строки тумана. Любая беда с файлом -
// отсутствие, битый JSON, чужая структура - означает "ничего не открыто":
// возвращаем nil, сервер стартует с чистой картой. Сохранение не должно
// уметь ронять запуск.
func (s *StateStore) LoadGrid(key string) [][]int {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Log.WithError(err).Warnf("Save %q unreadable, starting fresh", key)
		}
		return nil
	}

	var state SavedState
	if err := json.Unmarshal(data, &state); err != nil {
		logger.Log.WithError(err).Warnf("Save %q corrupted, starting fresh", key)
		return nil
	}
	return state.Revealed
}
