package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"order_router/internal/api"
	"order_router/internal/cache"
	"order_router/internal/config"
	"order_router/internal/database"
	"order_router/internal/metrics"
	"order_router/internal/tracing"
)

func main() {
	cfg := config.Get()
	metrics.Init()

	shutdownTracing := tracing.InitTracerProvider("order-router-api")
	defer shutdownTracing()

	// Инициализация хранилища
	storage, err := database.New(cfg.Postgres.URL, "./migrations")
	if err != nil {
		log.Fatalf("Ошибка инициализации хранилища: %v", err)
	}
	defer storage.Close()

	// Инициализация кэша
	decisionCache := cache.NewLRUCache(cfg.Cache.Size)
	if err := cache.WarmUp(context.Background(), storage, decisionCache); err != nil {
		log.Printf("Ошибка при прогреве кэша: %v", err)
	}

	// Запуск HTTP-сервера
	server := api.NewServer(cfg.HTTP.Port, storage, decisionCache)
	go func() {
		if err := server.Run(); err != nil {
			log.Fatalf("Ошибка запуска HTTP-сервера: %v", err)
		}
	}()

	// Ожидание сигнала для корректного завершения работы
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	log.Println("Сервис останавливается...")
	log.Println("Сервис успешно остановлен.")
}
