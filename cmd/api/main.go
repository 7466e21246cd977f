// Command api runs the storefront HTTP server.
//
//	@title						Storefront API
//	@version					1.0
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	TokenAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	_ "github.com/virtualvault/storefront/docs"
	"github.com/virtualvault/storefront/internal/api"
	"github.com/virtualvault/storefront/internal/api/handler"
	"github.com/virtualvault/storefront/internal/core/ports"
	"github.com/virtualvault/storefront/internal/core/service"
	"github.com/virtualvault/storefront/internal/infrastructure/config"
	mongodb "github.com/virtualvault/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/virtualvault/storefront/internal/infrastructure/db/redis"
	"github.com/virtualvault/storefront/internal/infrastructure/http/handlers"
	"github.com/virtualvault/storefront/internal/infrastructure/messaging"
	"github.com/virtualvault/storefront/internal/infrastructure/payment"
	"github.com/virtualvault/storefront/internal/infrastructure/queue"
	"github.com/virtualvault/storefront/internal/pkg/token"
	"github.com/virtualvault/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// publisher is an EventPublisher that owns a connection.
type publisher interface {
	ports.EventPublisher
	Close() error
}

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "storefront",
	})

	// Prices render as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}

	users := mongodb.NewUserRepository(db)
	orders := mongodb.NewOrderRepository(db)
	categories := mongodb.NewCategoryRepository(db)
	products := mongodb.NewProductRepository(db)
	audit := mongodb.NewAuditRepository(db)

	if err := mongodb.EnsureIndexes(ctx, users, orders, categories, products, audit); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	// --- Events ---
	var pub publisher
	if len(cfg.Kafka.Brokers) > 0 {
		pub = messaging.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publishing events to kafka")
	} else {
		pub = messaging.NewLogPublisher(logger.Component("events"))
		log.Warn().Msg("KAFKA_BROKERS not set, events are only logged")
	}

	dispatcher := queue.NewDispatcher(cfg.Kafka.Workers, pub, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	// --- Services ---
	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	idempotency := redisdb.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)

	authService := service.NewAuthService(users, tokens, logger.Component("auth"))
	userService := service.NewUserService(users, audit, dispatcher, logger.Component("users"))
	orderService := service.NewOrderService(orders, products, payment.NewSandbox(), idempotency, audit, dispatcher, logger.Component("orders"))
	categoryService := service.NewCategoryService(categories, logger.Component("categories"))
	productService := service.NewProductService(products, categories, cfg.Catalog.PageSize, logger.Component("products"))

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Auth:     handler.NewAuthHandler(authService, cfg.Auth.GenericLoginErrors, log),
		Users:    handler.NewUserHandler(userService, log),
		Orders:   handler.NewOrderHandler(orderService, log),
		Category: handler.NewCategoryHandler(categoryService, log),
		Products: handler.NewProductHandler(productService, log),
		Tokens:   tokens,
		Finder:   users,
		Probes: map[string]handlers.Pinger{
			"mongo": handlers.MongoPinger(db),
			"redis": handlers.RedisPinger(rdb),
		},
		Log: logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	// Drain queued events before closing the publisher they go to.
	dispatcher.Close()
	dispatcher.Wait()
	if err := pub.Close(); err != nil {
		log.Error().Err(err).Msg("close publisher")
	}

	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("close redis")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("disconnect mongo")
	}
	log.Info().Msg("stopped")
}
