package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bookora/booking-api/internal/config"
	dbpkg "github.com/bookora/booking-api/internal/db"
	infraRepo "github.com/bookora/booking-api/internal/infra/repository"
	"github.com/bookora/booking-api/internal/logging"
	"github.com/bookora/booking-api/internal/metrics"
	"github.com/bookora/booking-api/internal/routes"
	"github.com/bookora/booking-api/internal/worker"
)

func main() {

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	metrics.Register()

	db := dbpkg.NewDB(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cleanup := worker.NewCleanupWorker(
		infraRepo.NewAppointmentGormRepository(db),
		cfg.CleanupInterval,
		log,
	)
	go cleanup.Start(ctx)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.RegisterRoutes(r, db, cfg, log)

	log.Info().Str("addr", cfg.Addr()).Msg("server starting")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
