package httperr

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
)

var messages = map[string]string{
	"missing_field":          "Preencha todos os campos obrigatórios.",
	"invalid_date_or_time":   "Data ou hora inválida.",
	"invalid_payment_method": "Forma de pagamento inválida.",
	"missing_expected_date":  "Informe a data prevista para recebimento.",
	"invalid_expected_date":  "A data prevista não pode estar no passado.",
	"invalid_phone":          "Telefone inválido.",
	"invalid_email":          "E-mail inválido.",
	"invalid_color":          "Cor inválida.",
	"invalid_credentials":    "E-mail ou senha inválidos.",
	"email_in_use":           "E-mail já cadastrado.",
	"user_not_found":         "Usuário não encontrado.",
	"no_professionals":       "Cadastre ao menos 1 profissional antes de agendar.",
	"invalid_amount":         "Valor inválido.",
	"invalid_state":          "Operação não permitida para o status atual.",
	"cash_session_open":      "Já existe um caixa aberto.",
	"cash_session_closed":    "Caixa já está fechado.",
	"already_paid":           "Conta já está paga.",
	"appointment_not_found":  "Agendamento não encontrado.",
	"client_not_found":       "Cliente não encontrado.",
	"service_not_found":      "Serviço não encontrado.",
	"professional_not_found": "Profissional não encontrado.",
	"receivable_not_found":   "Conta a receber não encontrada.",
	"payable_not_found":      "Conta a pagar não encontrada.",
	"cash_session_not_found": "Caixa não encontrado.",
	"payment_link_disabled":  "Link de pagamento não configurado.",
	"storage_disabled":       "Armazenamento de arquivos não configurado.",
	"invalid_image":          "Imagem inválida.",
	"invalid_id":             "Identificador inválido.",
	"invalid_mode":           "Período inválido.",
	"invalid_commission":     "Comissão deve estar entre 0 e 100.",
	"invalid_duration":       "Duração inválida.",
	"registration_closed":    "Cadastro restrito a usuários autenticados.",
	"scan_not_found":         "Rotina não encontrada.",
}

func messageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Dados inválidos."
}

// Respond traduz erros de domínio/use case para a resposta HTTP.
func Respond(c *gin.Context, err error) {
	var (
		ve ValidationError
		nf NotFoundError
		be BusinessError
		pe PersistenceError
	)

	switch {
	case errors.As(err, &ve):
		InvalidField(c, ve.Code, ve.Field)
	case errors.As(err, &nf):
		NotFound(c, nf.Code(), messageFor(nf.Code()))
	case errors.As(err, &be):
		BadRequest(c, be.Code, messageFor(be.Code))
	case IsExclusionConflict(err):
		Conflict(c, "conflict", "Registro em conflito com outro existente.")
	case errors.As(err, &pe):
		log.Println("persistence error:", err)
		Internal(c, "persistence_error", "Erro ao salvar os dados.")
	default:
		log.Println("internal error:", err)
		Internal(c, "internal_error", "Erro interno.")
	}
}
