package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	goredis "github.com/redis/go-redis/v9"

	"github.com/koosco-commerce/inventory-service/internal/application/stock"
	infrakafka "github.com/koosco-commerce/inventory-service/internal/infrastructure/kafka"
	"github.com/koosco-commerce/inventory-service/internal/infrastructure/postgres"
	infraredis "github.com/koosco-commerce/inventory-service/internal/infrastructure/redis"
	httpRouter "github.com/koosco-commerce/inventory-service/internal/interfaces/http"
	"github.com/koosco-commerce/inventory-service/pkg/config"
	"github.com/koosco-commerce/inventory-service/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool, time.Duration(cfg.DB.LockTimeoutMS)*time.Millisecond)

	// Repositorios de solo lectura atados al pool, fuera de transacción.
	invRepo := postgres.NewInventoryRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)

	topics := infrakafka.NewTopicResolver(cfg.Kafka.Topics)
	publisher := infrakafka.NewPublisher(cfg.Kafka.Brokers, topics, cfg.App.Name, log)
	defer publisher.Close()

	reserveUC := stock.NewReserveStockUseCase(txRunner, publisher)
	confirmUC := stock.NewConfirmStockUseCase(txRunner, publisher)
	releaseUC := stock.NewReleaseStockUseCase(txRunner)
	initializeUC := stock.NewInitializeStockUseCase(txRunner)
	adjustUC := stock.NewAdjustStockUseCase(txRunner)
	addUC := stock.NewAddStockUseCase(txRunner)
	reduceUC := stock.NewReduceStockUseCase(txRunner)
	queryUC := stock.NewGetInventoryUseCase(invRepo)
	movementsUC := stock.NewGetStockMovementsUseCase(movRepo)

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	guard := infraredis.NewGuard(redisClient, time.Duration(cfg.Redis.IdempotencyTTLMin)*time.Minute)

	zl := log.Zerolog()
	consumers := []*infrakafka.Consumer{
		infrakafka.NewConsumer(infrakafka.ConsumerConfig{
			Brokers:         cfg.Kafka.Brokers,
			GroupID:         cfg.Kafka.GroupID,
			Topic:           cfg.Kafka.Topics.OrderPlaced,
			DeadLetterTopic: cfg.Kafka.Topics.DeadLetter,
			MaxRetries:      cfg.Kafka.MaxRetries,
		}, infrakafka.NewOrderPlacedHandler(reserveUC, guard, zl), zl),
		infrakafka.NewConsumer(infrakafka.ConsumerConfig{
			Brokers:         cfg.Kafka.Brokers,
			GroupID:         cfg.Kafka.GroupID,
			Topic:           cfg.Kafka.Topics.OrderConfirmed,
			DeadLetterTopic: cfg.Kafka.Topics.DeadLetter,
			MaxRetries:      cfg.Kafka.MaxRetries,
		}, infrakafka.NewOrderConfirmedHandler(confirmUC, guard, zl), zl),
		infrakafka.NewConsumer(infrakafka.ConsumerConfig{
			Brokers:         cfg.Kafka.Brokers,
			GroupID:         cfg.Kafka.GroupID,
			Topic:           cfg.Kafka.Topics.OrderCancelled,
			DeadLetterTopic: cfg.Kafka.Topics.DeadLetter,
			MaxRetries:      cfg.Kafka.MaxRetries,
		}, infrakafka.NewOrderCancelledHandler(releaseUC, guard, zl), zl),
		infrakafka.NewConsumer(infrakafka.ConsumerConfig{
			Brokers:         cfg.Kafka.Brokers,
			GroupID:         cfg.Kafka.GroupID,
			Topic:           cfg.Kafka.Topics.ProductSkuCreated,
			DeadLetterTopic: cfg.Kafka.Topics.DeadLetter,
			MaxRetries:      cfg.Kafka.MaxRetries,
		}, infrakafka.NewProductSkuCreatedHandler(initializeUC, zl), zl),
	}
	for _, c := range consumers {
		consumer := c
		go func() {
			if err := consumer.Run(ctx); err != nil {
				log.Error().Err(err).Msg("consumidor detenido con error")
				stop()
			}
		}()
	}
	defer func() {
		for _, c := range consumers {
			_ = c.Close()
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		QueryUC:     queryUC,
		MovementsUC: movementsUC,
		AdjustUC:    adjustUC,
		AddUC:       addUC,
		ReduceUC:    reduceUC,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP detenido")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("apagando aplicación")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
}
