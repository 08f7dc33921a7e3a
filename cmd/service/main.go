package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/fitnease/tracking/internal"
	"github.com/fitnease/tracking/internal/config"
	"github.com/fitnease/tracking/internal/logging"

	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	closeLogs := logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled && sentryDSN != "",
		SentryDSN:        sentryDSN,
		SentryServerName: "tracking-service",
	})
	if cfg.SentryEnabled && sentryDSN == "" {
		log.Warnln("sentry enabled but SENTRY_DSN env var not set")
	}

	log.Infof("---->> running in [%s] environment, port %d", cfg.Environment, cfg.Port)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server, err := internal.NewServer(ctx, serverParamsFromEnv(cfg))
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	<-ctx.Done()
	log.Warnln("shutdown signal received")

	server.GracefulShutdown()
	closeLogs()
}

// serverParamsFromEnv collects the secrets that never live in config.toml.
func serverParamsFromEnv(cfg *config.Config) internal.NewServerParams {
	params := internal.NewServerParams{
		Config:                  cfg,
		RedisPassword:           os.Getenv("REDIS_PASS"),
		PostgresPassword:        os.Getenv("POSTGRES_PASSWORD"),
		HoneycombTracingEnabled: os.Getenv("HONEYCOMB_ENABLED") == "true",
	}

	if params.RedisPassword == "" {
		log.Warnln("redis password not set. use REDIS_PASS")
	}
	if params.PostgresPassword == "" {
		log.Warnln("postgres password not set. use POSTGRES_PASSWORD")
	}
	if os.Getenv("OTEL_SERVICE_NAME") == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}
	if params.HoneycombTracingEnabled && os.Getenv("HONEYCOMB_API_KEY") == "" {
		log.Warnln("HONEYCOMB_API_KEY env var not set")
	}

	return params
}
