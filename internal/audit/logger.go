package audit

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// Logger grava eventos em audit_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func toRow(ev Event) models.AuditLog {
	row := models.AuditLog{
		UserID:    ev.UserID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		CreatedAt: ev.At,
	}
	if len(ev.Metadata) > 0 {
		row.Metadata = datatypes.JSONMap(ev.Metadata)
	}
	return row
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	row := toRow(ev)
	return l.db.WithContext(ctx).Create(&row).Error
}
