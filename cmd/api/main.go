package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-manager/internal/app"
	"github.com/BruksfildServices01/salon-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-manager/internal/db"
	"github.com/BruksfildServices01/salon-manager/internal/routes"
	"github.com/BruksfildServices01/salon-manager/internal/scheduler"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	// valores monetários saem como número no JSON
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, db)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}
	defer a.Close()

	// ======================================================
	// AUTOMAÇÃO DIÁRIA
	// ======================================================
	if cfg.AutomationEnabled {
		daily := scheduler.NewDaily(
			"automation",
			cfg.AutomationHour,
			cfg.AutomationMinute,
			a.Loc,
			func(ctx context.Context, now time.Time) error {
				report, err := a.Runner.RunScheduled(ctx, now)
				for _, s := range report.Scans {
					log.Printf("automation %s: matched=%d sent=%d failed=%d skipped=%d",
						s.Scan, s.Matched, s.Sent, s.Failed, s.Skipped)
				}
				return err
			},
		)
		daily.Start(ctx)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, a)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}
}
