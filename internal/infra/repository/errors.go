package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
)

func loadErr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(entity)
	}
	return httperr.ErrPersistence("load "+entity, err)
}
