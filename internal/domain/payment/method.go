package payment

type Method string

const (
	MethodCreditCard Method = "credit_card"
	MethodDebitCard  Method = "debit_card"
	MethodPix        Method = "pix"
	MethodCash       Method = "cash"
	// Conta: pagamento em aberto com data prevista
	MethodAccount Method = "account"
)

type Option struct {
	Value Method `json:"value"`
	Label string `json:"label"`
}

var options = []Option{
	{Value: MethodCreditCard, Label: "Cartao de credito"},
	{Value: MethodDebitCard, Label: "Cartao de debito"},
	{Value: MethodPix, Label: "Pix"},
	{Value: MethodCash, Label: "Dinheiro"},
	{Value: MethodAccount, Label: "Conta"},
}

const unknownLabel = "Nao informado"

func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

func Label(value string) string {
	for _, o := range options {
		if string(o.Value) == value {
			return o.Label
		}
	}
	return unknownLabel
}

func Valid(value string) bool {
	for _, o := range options {
		if string(o.Value) == value {
			return true
		}
	}
	return false
}

func (m Method) IsOpenAccount() bool {
	return m == MethodAccount
}
