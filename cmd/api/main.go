package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/warehouse-fulfillment/internal/application/fulfillment"
	"github.com/jhoicas/warehouse-fulfillment/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/warehouse-fulfillment/internal/interfaces/http"
	"github.com/jhoicas/warehouse-fulfillment/pkg/config"
	"github.com/jhoicas/warehouse-fulfillment/pkg/logger"
	"github.com/jhoicas/warehouse-fulfillment/pkg/metrics"
	"github.com/jhoicas/warehouse-fulfillment/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("procedure", cfg.Fulfillment.ProcedureName).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.ApplySchema {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing, cfg.App.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}
	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint != "" {
		log.Info().Str("endpoint", cfg.Tracing.Endpoint).Float64("sample_ratio", cfg.Tracing.SampleRatio).Msg("trazas OTLP habilitadas")
	}

	fulfillmentMetrics := metrics.NewFulfillment(prometheus.DefaultRegisterer)
	fulfillmentUC := fulfillment.NewUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewFulfillmentProcedure(pool, cfg.Fulfillment.ProcedureName),
		log,
		fulfillmentMetrics,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Fulfillment: fulfillmentUC,
		Logger:      log,
		Metrics:     promhttp.Handler(),
	})

	// Después del router: pasa por request_id, access log y recover.
	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("vaciar trazas")
	}

	log.Info().Msg("aplicación detenida")
}
