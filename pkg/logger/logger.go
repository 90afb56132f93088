package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log - глобальный логгер приложения.
var Log *logrus.Logger

// Init настраивает глобальный логгер.
// Вызывается один раз при старте (main.go); тесты зовут его сами.
func Init() {
	Log = logrus.New()

	// Уровень логирования берем из окружения. По умолчанию "info",
	// при отладке виджета удобно выставить "debug".
	levelName, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		levelName = "info"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// Формат: "json" для сбора логов, текст с цветами для разработки.
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}
