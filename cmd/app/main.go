package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"valet/cmd"
	"valet/internal/adapters/out/notify"
	"valet/internal/adapters/out/postgres"
	"valet/internal/adapters/out/postgres/userdir"
	"valet/internal/core/ports"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config, err := loadConfig()
	if err != nil {
		logger.Error("configuration failed", "error", err)
		os.Exit(1)
	}

	db, err := openDatabase(config)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err = postgres.Migrate(db); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier, closeNotifier, err := buildNotifier(ctx, config, db, logger)
	if err != nil {
		logger.Error("notifier setup failed", "error", err)
		os.Exit(1)
	}
	defer closeNotifier()

	root := cmd.NewCompositionRoot(config, db, notifier, logger)

	jobManager := root.NewJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Error("starting jobs failed", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	root.NewHTTPServer().RegisterRoutes(e, []byte(config.JWTSecret))

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)
		if err := e.Start(addr); err != nil {
			logger.Info("http server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}

func loadConfig() (cmd.Config, error) {
	// Missing .env is fine in containerized deployments; the variables
	// arrive through the process environment instead.
	_ = godotenv.Load(".env")

	config := cmd.Config{
		HTTPPort:       envOr("HTTP_PORT", "8080"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         envOr("DB_PORT", "5432"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBSslMode:      envOr("DB_SSLMODE", "disable"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		ExpoPushURL:    envOr("EXPO_PUSH_URL", "https://exp.host/--/api/v2/push/send"),
		LockTimeout:    envDuration("LOCK_TIMEOUT_MS", time.Millisecond, 3000),
		SearchLeadTime: envDuration("SEARCH_PROMOTION_LEAD_MIN", time.Minute, 30),
	}

	if config.DBHost == "" || config.DBUser == "" || config.DBName == "" {
		return cmd.Config{}, fmt.Errorf("DB_HOST, DB_USER and DB_NAME are required")
	}
	if config.JWTSecret == "" {
		return cmd.Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return config, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, unit time.Duration, fallback int64) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback) * unit
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return time.Duration(fallback) * unit
	}
	return time.Duration(n) * unit
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode)
	return gorm.Open(gormpg.Open(dsn), &gorm.Config{})
}

// buildNotifier assembles the delivery pipeline and the event bus in front
// of it. With REDIS_ADDR set, events travel through Redis pub/sub so every
// instance behind a load balancer delivers its own subscriptions; otherwise
// the bus is an in-process channel.
func buildNotifier(
	ctx context.Context,
	config cmd.Config,
	db *gorm.DB,
	logger *slog.Logger,
) (ports.Notifier, func(), error) {
	directory := userdir.NewGormUserDirectory(db)
	parties, err := notify.NewGormPartySource(db)
	if err != nil {
		return nil, nil, err
	}

	dispatcher := notify.NewDispatcher(
		directory,
		parties,
		directory,
		notify.NewExpoPushSender(config.ExpoPushURL, logger),
		notify.NewLogEmailSender(logger),
		logger,
	)

	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		bus := notify.NewRedisBus(client, dispatcher, logger)
		go bus.Run(ctx)
		return bus, func() { _ = client.Close() }, nil
	}

	bus := notify.NewChannelBus(dispatcher, logger)
	return bus, bus.Close, nil
}
