// Command automation roda as rotinas diárias uma vez e sai.
// Útil para cron externo quando AUTOMATION_ENABLED=false na API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/salon-manager/internal/app"
	"github.com/BruksfildServices01/salon-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-manager/internal/db"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

func main() {
	date := flag.String("date", "", "data de referência YYYY-MM-DD (default: agora)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, db)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}
	defer a.Close()

	now := time.Now().In(a.Loc)
	if *date != "" {
		d, err := timezone.ParseDate(*date, a.Loc)
		if err != nil {
			log.Fatalf("invalid -date: %v", err)
		}
		now = d.Add(time.Duration(cfg.AutomationHour) * time.Hour)
	}

	report, runErr := a.Runner.RunScheduled(ctx, now)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Println("encode report error:", err)
	}

	if runErr != nil {
		log.Println("automation error:", runErr)
		a.Close()
		os.Exit(1)
	}
}
