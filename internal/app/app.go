package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sharetube/relay/internal/controller"
	"github.com/sharetube/relay/internal/metrics"
	connInmemory "github.com/sharetube/relay/internal/repository/connection/inmemory"
	roomInmemory "github.com/sharetube/relay/internal/repository/room/inmemory"
	roomRedis "github.com/sharetube/relay/internal/repository/room/redis"
	"github.com/sharetube/relay/internal/service/room"
	"github.com/sharetube/relay/pkg/ctxlogger"
	"github.com/sharetube/relay/pkg/redisclient"
	"github.com/sharetube/relay/pkg/validator"
)

const (
	PlayerStoreMemory = "memory"
	PlayerStoreRedis  = "redis"
)

type AppConfig struct {
	Host              string        `json:"host" validate:"required"`
	Port              int           `json:"port" validate:"min=1,max=65535"`
	LogLevel          string        `json:"log_level" validate:"required,oneof=DEBUG INFO WARN ERROR"`
	WebRoot           string        `json:"web_root" validate:"required"`
	ReadinessGating   bool          `json:"readiness_gating"`
	SendBuffer        int           `json:"send_buffer" validate:"min=1"`
	MessagesPerSecond int           `json:"messages_per_second" validate:"gte=0"`
	PlayerStore       string        `json:"player_store" validate:"oneof=memory redis"`
	PlayerTTL         time.Duration `json:"player_ttl" validate:"gt=0"`
	RedisPort         int           `json:"redis_port" validate:"min=1,max=65535"`
	RedisHost         string        `json:"redis_host" validate:"required"`
	RedisPassword     string        `json:"-"`
}

func (cfg *AppConfig) Validate() error {
	cfg.LogLevel = strings.ToUpper(cfg.LogLevel)
	return validator.NewValidator().Struct(cfg)
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       logLevel,
			AddSource:   true,
			ReplaceAttr: ctxlogger.ReplaceAttr,
		}),
	}

	return slog.New(&h), nil
}

// newHandler wires repositories, services and the controller. The returned
// closer releases external clients.
func newHandler(ctx context.Context, cfg *AppConfig, logger *slog.Logger) (http.Handler, func(), error) {
	closer := func() {}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	strict := cfg.LogLevel == "DEBUG"
	roomRepo := roomInmemory.NewRepo(strict, logger)
	connRepo := connInmemory.NewRepo(cfg.SendBuffer, logger)

	var playerRepo room.PlayerRepo = roomRepo
	if cfg.PlayerStore == PlayerStoreRedis {
		rc, err := redisclient.NewRedisClient(ctx, &redisclient.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			return nil, closer, fmt.Errorf("failed to create redis client: %w", err)
		}
		closer = func() { rc.Close() }

		playerRepo = roomRedis.NewRepo(rc, cfg.PlayerTTL)
	}

	roomService := room.NewService(connRepo, roomRepo, playerRepo, m, logger, &room.Config{
		ReadinessGating: cfg.ReadinessGating,
	})
	c := controller.NewController(roomService, m, logger, &controller.Config{
		WebRoot:           cfg.WebRoot,
		MessagesPerSecond: cfg.MessagesPerSecond,
	})

	return c.GetMux(), closer, nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := newLogger(os.Stdout, cfg.LogLevel)
	if err != nil {
		return err
	}

	handler, closer, err := newHandler(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closer()

	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: handler}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)
	shutdownErr := make(chan error, 1)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		// hijacked websocket connections are not tracked by Shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.ErrorContext(shutdownCtx, "graceful shutdown failed", "error", err)
			shutdownErr <- server.Close()
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		serverStopCtx()
		return err
	}

	<-serverCtx.Done()

	select {
	case err := <-shutdownErr:
		return err
	default:
		return nil
	}
}
