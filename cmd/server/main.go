package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"mesaYaCore/internal/config"
	realtimeuc "mesaYaCore/internal/modules/realtime/application/usecase"
	"mesaYaCore/internal/modules/realtime/infrastructure"
	realtimehttp "mesaYaCore/internal/modules/realtime/interface"
	reservationuc "mesaYaCore/internal/modules/reservations/application/usecase"
	reservationhttp "mesaYaCore/internal/modules/reservations/interface"
	restaurantuc "mesaYaCore/internal/modules/restaurants/application/usecase"
	restauranthttp "mesaYaCore/internal/modules/restaurants/interface"
	reviewuc "mesaYaCore/internal/modules/reviews/application/usecase"
	reviewhttp "mesaYaCore/internal/modules/reviews/interface"
	useruc "mesaYaCore/internal/modules/users/application/usecase"
	userhttp "mesaYaCore/internal/modules/users/interface"
	"mesaYaCore/internal/platform/broker"
	"mesaYaCore/internal/platform/registry"
	"mesaYaCore/internal/shared/auth"
	"mesaYaCore/internal/shared/logging"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))

	store := registry.NewStore()
	codec := auth.NewJWTCodec(cfg.Security.JWTSecret, cfg.Security.TokenTTL)

	hub := infrastructure.NewHub()
	targets := []*broker.KafkaPublisher{}
	broadcasters := realtimeuc.NewBroadcastUseCase(hub)
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := broker.NewKafkaPublisher(cfg.Kafka.Brokers)
		targets = append(targets, publisher)
		broadcasters = realtimeuc.NewBroadcastUseCase(hub, publisher)
		slog.Info("kafka publisher enabled", slog.Any("brokers", cfg.Kafka.Brokers))
	}

	sessions := useruc.NewSessionUseCase(store, codec)
	restaurants := restaurantuc.NewRestaurantUseCase(store)
	availability := reservationuc.NewAvailabilityUseCase(store, cfg.Booking.SlotStep)
	reserve := reservationuc.NewReserveUseCase(store, broadcasters)
	reservationQueries := reservationuc.NewReservationQueryUseCase(store)
	reviews := reviewuc.NewReviewUseCase(store, broadcasters)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())

	userhttp.NewUserHandler(sessions).Register(e)
	restauranthttp.NewRestaurantHandler(restaurants, sessions).Register(e)
	reservationhttp.NewReservationHandler(availability, reserve, reservationQueries, sessions).Register(e)
	reviewhttp.NewReviewHandler(reviews, sessions).Register(e)
	e.GET("/ws/notifications/:token", realtimehttp.NewNotificationsHandler(hub, sessions, cfg.Websocket.SendBuffer))
	e.GET("/ws/notifications", realtimehttp.NewNotificationsHandler(hub, sessions, cfg.Websocket.SendBuffer))

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")
	for _, publisher := range targets {
		if err := publisher.Close(); err != nil {
			slog.Warn("kafka publisher close error", slog.Any("error", err))
		}
	}
	e.Close()
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
