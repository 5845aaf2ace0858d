package httperr

import "errors"

// BusinessError: regra de negócio violada (status atual não permite a ação,
// conta já paga, caixa já aberto...). Detail vai só para log.
type BusinessError struct {
	Code   string
	Detail string
}

func (e BusinessError) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return e.Code + " (" + e.Detail + ")"
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrInvalidState registra o status que bloqueou a transição.
func ErrInvalidState(current string) error {
	return BusinessError{Code: "invalid_state", Detail: "status=" + current}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	return errors.As(err, &be) && be.Code == code
}
