package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SavedState - формат файла сохранения. Ровно то, что виджет писал
// в localStorage: строки 0/1 по всей сетке, построчно.
type SavedState struct {
	Revealed [][]int `json:"revealed"`
}

// StateStore пишет и читает состояние тумана в каталоге сохранений.
type StateStore struct {
	SaveDir string
}

func NewStateStore(dir string) *StateStore {
	// Создаем папку если нет
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &StateStore{SaveDir: dir}
}

// path строит имя файла для ключа: "map" -> <dir>/map.json.
func (s *StateStore) path(key string) string {
	return filepath.Join(s.SaveDir, key+".json")
}

// SaveGrid записывает строки тумана под ключом.
// Пишем во временный файл и переименовываем: упавший посреди записи
// процесс не должен оставить после себя полфайла.
func (s *StateStore) SaveGrid(key string, rows [][]int) error {
	data, err := json.Marshal(SavedState{Revealed: rows})
	if err != nil {
		return fmt.Errorf("marshal state %q: %w", key, err)
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write state %q: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("rename state %q: %w", key, err)
	}
	return nil
}
