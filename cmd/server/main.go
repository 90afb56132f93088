package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sntrenter/AnimalWell-Helper/internal/engine"
	"github.com/sntrenter/AnimalWell-Helper/internal/server"
	"github.com/sntrenter/AnimalWell-Helper/internal/version"
	"github.com/sntrenter/AnimalWell-Helper/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	cfg := engine.NewConfig()
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "Directory for the saved map state")
	flag.StringVar(&cfg.SaveKey, "save-key", cfg.SaveKey, "Save slot name (file <key>.json)")
	flag.Parse()

	logger.Log.Info("Starting Animal Well map helper...")
	logger.Log.Info(version.String())
	logger.Log.Infof("💾 Save slot: %s/%s.json", cfg.DataDir, cfg.SaveKey)

	port := os.Getenv("AWH_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра с конфигом
	mapService := engine.NewService(cfg)
	mapService.Start()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(mapService, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	// Останавливаем цикл: он допишет туман на диск
	mapService.Stop()

	logger.Log.Info("Done.")
}
