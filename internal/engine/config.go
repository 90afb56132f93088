package engine

import "github.com/sntrenter/AnimalWell-Helper/internal/domain"

// Config хранит параметры запуска сервиса карты
type Config struct {
	// DataDir - каталог сохранений. Состояние тумана лежит в нем
	// под именем <SaveKey>.json.
	DataDir string
	SaveKey string
}

// NewConfig создает конфиг по умолчанию
func NewConfig() Config {
	return Config{
		DataDir: "data",
		SaveKey: domain.SaveKey,
	}
}
