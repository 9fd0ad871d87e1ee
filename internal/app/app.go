package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"inventory/internal/config"
	"inventory/internal/database"
	"inventory/internal/handlers"
	"inventory/internal/query"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/pkg/clock"
	"inventory/pkg/logger"
	"inventory/pkg/rabbitmq"
)

// App is the wired HTTP application and the resources it owns.
type App struct {
	Fiber    *fiber.App
	Products *services.ProductService
	// MQ is nil when RabbitMQ is not configured.
	MQ *rabbitmq.Client

	db *gorm.DB
}

// New builds the product store, service and routes described by cfg.
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{}

	repo, err := a.openStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := repo.EnsureIndexes(context.Background(), query.IndexHints); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to prepare product indexes: %w", err)
	}

	var events services.ProductEventPublisher
	if cfg.RabbitMQ.URL != "" {
		a.MQ, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL})
		if err != nil {
			a.Close()
			return nil, err
		}
		events = a.MQ
		log.Info().Str("queue", rabbitmq.ProductEventsQueue).Msg("publishing product events")
	}

	a.Products = services.NewProductService(repo, clock.System, events, log)
	productHandler := handlers.NewProductHandler(a.Products, log)

	a.Fiber = fiber.New()
	if cfg.App.Env == "development" {
		a.Fiber.Use(fiberlogger.New())
	}

	apiV1 := a.Fiber.Group("/api/v1")
	productHandler.RegisterRoutes(apiV1)

	a.Fiber.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  cfg.Store.Driver,
			"events": a.MQ != nil,
		})
	})

	return a, nil
}

func (a *App) openStore(cfg config.StoreConfig) (repositories.ProductRepository, error) {
	if cfg.Driver == config.DriverMemory {
		return repositories.NewMemoryProductRepository(), nil
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	a.db = db
	return repositories.NewGORMProductRepository(db), nil
}

// Close releases the broker connection and database handle.
func (a *App) Close() error {
	var errs []error
	if a.MQ != nil {
		if err := a.MQ.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close database: %w", err))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors while closing app: %v", errs)
	}
	return nil
}
