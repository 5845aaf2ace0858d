package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-manager/internal/config"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// constraints que o AutoMigrate não expressa por tag
var constraints = []string{
	// no máximo uma conta a receber por agendamento
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_receivables_appointment
		ON financial_receivables (appointment_id)
		WHERE appointment_id IS NOT NULL`,
	// no máximo um caixa aberto
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cash_sessions_single_open
		ON cash_sessions (status)
		WHERE status = 'open'`,
	`CREATE INDEX IF NOT EXISTS ix_message_history_client_sent
		ON message_history (client_id, sent_at DESC)`,
}

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		// referências órfãs são toleradas (sem cascata)
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate cria/atualiza tabelas, índices e a linha única de settings.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Service{},
		&models.Professional{},
		&models.Appointment{},
		&models.Receivable{},
		&models.Payable{},
		&models.CashSession{},
		&models.MessageHistory{},
		&models.AuditLog{},
		&models.SalonSettings{},
	); err != nil {
		return err
	}

	for _, stmt := range constraints {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	defaults := models.DefaultSalonSettings()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults).Error; err != nil {
		log.Printf("failed to seed salon settings: %v", err)
	}
	return nil
}
