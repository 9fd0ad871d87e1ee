package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/streadway/amqp"

	"inventory/internal/app"
	"inventory/internal/config"
	"inventory/internal/services"
	"inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Env: "production"}).Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}
	defer application.Close()

	// Audit consumer: logs every product event that reaches the queue.
	if application.MQ != nil {
		err := application.MQ.ConsumeProductEvents(func(msg amqp.Delivery) error {
			var event services.ProductEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				log.Warn().Err(err).Uint64("tag", msg.DeliveryTag).Msg("discarding malformed product event")
				return nil
			}
			log.Info().
				Str("event", event.Event).
				Str("product_id", event.ID).
				Int64("stock", event.Stock).
				Msg("received product event")
			return nil
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to start product event consumer")
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.App.Port).Str("store", cfg.Store.Driver).Msg("starting server")
		if err := application.Fiber.Listen(cfg.App.Port); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")

	if err := application.Fiber.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during fiber shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}
