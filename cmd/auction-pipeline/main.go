package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-pipeline/internal/api/handlers"
	"auction-pipeline/internal/config"
	"auction-pipeline/internal/domain"
	"auction-pipeline/internal/infrastructure/memory"
	"auction-pipeline/internal/infrastructure/mysql"
	"auction-pipeline/internal/infrastructure/rabbitmq"
	redisinfra "auction-pipeline/internal/infrastructure/redis"
	wsinfra "auction-pipeline/internal/infrastructure/websocket"
	"auction-pipeline/internal/services"
	"auction-pipeline/pkg/logger"

	redisClient "github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	amqp "github.com/rabbitmq/amqp091-go"
)

func main() {
	log := logger.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	log.Info("Configuration loaded", "config", cfg.GetConfigString())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Initialize Redis when a backend needs it
	var rdb *redisClient.Client
	if cfg.Pipeline.QueueBackend == "redis" || sinkEnabled(cfg, "redis") {
		rdb = redisClient.NewClient(&redisClient.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
	}

	// Initialize bid queue
	var queue domain.BidQueue
	switch cfg.Pipeline.QueueBackend {
	case "redis":
		queue = redisinfra.NewRedisBidQueue(rdb)
	default:
		queue = memory.NewBidQueue()
	}

	// Initialize bid store
	var store domain.BidStore
	switch cfg.Pipeline.StoreBackend {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQL.DSN)
		if err != nil {
			log.Error("Failed to connect to MySQL", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

		if err := db.PingContext(ctx); err != nil {
			log.Error("Failed to ping MySQL", "error", err)
			os.Exit(1)
		}
		store = mysql.NewMySQLBidStore(db)
	default:
		store = memory.NewBidStore()
	}

	// Initialize connection manager for websocket watchers
	connManager := wsinfra.NewConnectionManager(log)

	// Initialize notification sinks
	var amqpConn *amqp.Connection
	var sinks []domain.NotificationPublisher
	for _, sink := range cfg.Pipeline.NotifierSinks {
		switch sink {
		case "log":
			sinks = append(sinks, services.NewLogNotificationPublisher(log))
		case "redis":
			sinks = append(sinks, redisinfra.NewRedisEventPublisher(rdb))
		case "rabbitmq":
			amqpConn, err = amqp.Dial(cfg.RabbitMQ.URL)
			if err != nil {
				log.Error("Failed to connect to RabbitMQ", "error", err)
				os.Exit(1)
			}
			publisher, err := rabbitmq.NewRabbitMQEventPublisher(amqpConn, cfg.RabbitMQ.Exchange)
			if err != nil {
				log.Error("Failed to initialize RabbitMQ publisher", "error", err)
				os.Exit(1)
			}
			sinks = append(sinks, publisher)
		case "websocket":
			sinks = append(sinks, wsinfra.NewWebSocketEventPublisher(connManager))
		default:
			log.Warn("Unknown notifier sink", "sink", sink)
		}
	}
	notifier := services.NewMultiPublisher(log, sinks...)

	// Initialize pipeline services
	validator := services.NewBidValidator()
	intake := services.NewBidIntake(validator, queue, log)
	tracker := services.NewWinnerTracker()
	processor := services.NewAuctionProcessor(queue, store, tracker, notifier, log)
	scheduler := services.NewCycleScheduler(processor, cfg.Pipeline.DrainInterval, log)

	// Initialize handlers
	bidHandler := handlers.NewBidHandler(intake, processor, tracker, store, log)
	watchHandler := handlers.NewWatchHandler(connManager, log)

	// Setup routes
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api/v1")
	api.POST("/bids", bidHandler.SubmitBid)
	api.POST("/process", bidHandler.RunCycle)
	api.GET("/items/:id/leader", bidHandler.GetLeader)
	api.GET("/items/:id/bids", bidHandler.GetBids)

	e.GET("/ws/items/:id", watchHandler.WatchItem)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	// Start the processing cycle scheduler
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	defer schedulerCancel()
	if err := scheduler.Start(schedulerCtx); err != nil {
		log.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// Start HTTP server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		log.Info("Starting auction pipeline", "address", address)
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down auction pipeline...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	scheduler.Stop()
	schedulerCancel()

	if amqpConn != nil {
		amqpConn.Close()
	}

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Auction pipeline stopped")
}

func sinkEnabled(cfg *config.Config, name string) bool {
	for _, sink := range cfg.Pipeline.NotifierSinks {
		if sink == name {
			return true
		}
	}
	return false
}
