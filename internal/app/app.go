package app

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/cache"
	"github.com/BruksfildServices01/salon-manager/internal/config"
	"github.com/BruksfildServices01/salon-manager/internal/infra/payments"
	infraRepo "github.com/BruksfildServices01/salon-manager/internal/infra/repository"
	"github.com/BruksfildServices01/salon-manager/internal/infra/storage"
	"github.com/BruksfildServices01/salon-manager/internal/messaging"
	"github.com/BruksfildServices01/salon-manager/internal/notifier"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
	"github.com/BruksfildServices01/salon-manager/internal/usecase/automation"
)

// App reúne os singletons de infraestrutura compartilhados por API e CLI.
type App struct {
	Cfg *config.Config
	DB  *gorm.DB
	Loc *time.Location

	Redis     *redis.Client
	Audit     *audit.Dispatcher
	Messenger *messaging.Messenger
	Links     payments.LinkProvider
	Logos     *storage.LogoStore

	Appointments *infraRepo.AppointmentGormRepository
	Finance      *infraRepo.FinanceGormRepository
	Messages     *infraRepo.MessageGormRepository
	Reports      *infraRepo.ReportGormRepository

	Runner *automation.Runner
}

// New monta a aplicação. Redis, Mercado Pago e S3 são opcionais:
// sem configuração o recurso correspondente fica desligado.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB) (*App, error) {
	a := &App{
		Cfg: cfg,
		DB:  db,
		Loc: timezone.Location(cfg.Timezone),

		Appointments: infraRepo.NewAppointmentGormRepository(db),
		Finance:      infraRepo.NewFinanceGormRepository(db),
		Messages:     infraRepo.NewMessageGormRepository(db),
		Reports:      infraRepo.NewReportGormRepository(db),
	}

	// ======================================================
	// AUDIT + MENSAGENS
	// ======================================================
	a.Audit = audit.NewDispatcher(audit.New(db))

	n, err := notifier.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	a.Messenger = messaging.NewMessenger(n, a.Messages)

	// ======================================================
	// OPCIONAIS
	// ======================================================
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Println("redis disabled:", err)
		} else {
			a.Redis = rdb
		}
	}

	if cfg.MercadoPagoAccessToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MercadoPagoAccessToken)
		if err != nil {
			log.Println("payment links disabled:", err)
		} else {
			a.Links = mp
		}
	}

	if cfg.StorageEnabled() {
		a.Logos = storage.NewLogoStore(storage.NewS3(cfg))
	}

	// ======================================================
	// AUTOMAÇÃO
	// ======================================================
	var opts []automation.Option
	if a.Links != nil {
		opts = append(opts, automation.WithPaymentLinks(a.Links))
	}
	if a.Redis != nil {
		opts = append(opts, automation.WithDailyLock(cache.NewRedisGuard(a.Redis, "automation:")))
		if cfg.AutomationDedup {
			opts = append(opts, automation.WithGuard(cache.NewRedisGuard(a.Redis, "automation:sent:")))
		}
	} else if cfg.AutomationDedup {
		log.Println("AUTOMATION_DEDUP requires REDIS_URL; sending without guard")
	}

	a.Runner = automation.NewRunner(
		infraRepo.NewAutomationGormRepository(db),
		a.Messenger,
		a.Loc,
		opts...,
	)

	return a, nil
}

// Close drena o audit e fecha conexões.
func (a *App) Close() {
	a.Audit.Close()

	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			log.Println("redis close error:", err)
		}
	}

	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
