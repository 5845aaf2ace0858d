package httperr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ValidationError: campo obrigatório ausente ou inválido, antes de qualquer escrita.
type ValidationError struct {
	Code  string
	Field string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Field)
}

func ErrValidation(code, field string) error {
	return ValidationError{Code: code, Field: field}
}

// NotFoundError: o id referenciado não existe no banco.
type NotFoundError struct {
	Entity string
}

func (e NotFoundError) Error() string {
	return e.Code()
}

func (e NotFoundError) Code() string {
	return e.Entity + "_not_found"
}

func ErrNotFound(entity string) error {
	return NotFoundError{Entity: entity}
}

// PersistenceError: a escrita no banco falhou. Passos anteriores não são desfeitos.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}

func ErrPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return PersistenceError{Op: op, Err: err}
}

// NotifyError: falha no envio de mensagem. Nunca aborta a operação de negócio.
type NotifyError struct {
	Provider string
	Err      error
}

func (e NotifyError) Error() string {
	return fmt.Sprintf("notify via %s: %v", e.Provider, e.Err)
}

func (e NotifyError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// IsExclusionConflict detecta violação de unique (23505) ou exclusion constraint (23P01).
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}
	return false
}
