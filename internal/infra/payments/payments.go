package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
)

type LinkRequest struct {
	// Reference volta no webhook como external_reference (id da conta a receber).
	Reference string
	Title     string
	Amount    decimal.Decimal
}

// LinkProvider gera um link de pagamento para uma conta pendente.
type LinkProvider interface {
	CreateLink(ctx context.Context, req LinkRequest) (string, error)
}

type MercadoPago struct {
	client preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	if accessToken == "" {
		return nil, errors.New("mercadopago: access token is required")
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{client: preference.NewClient(cfg)}, nil
}

func (m *MercadoPago) CreateLink(ctx context.Context, req LinkRequest) (string, error) {
	if !req.Amount.IsPositive() {
		return "", errors.New("mercadopago: amount must be positive")
	}

	price, _ := req.Amount.Round(2).Float64()

	res, err := m.client.Create(ctx, preference.Request{
		ExternalReference: req.Reference,
		Items: []preference.ItemRequest{
			{
				ID:         req.Reference,
				Title:      req.Title,
				Quantity:   1,
				UnitPrice:  price,
				CurrencyID: "BRL",
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("mercadopago create preference: %w", err)
	}

	return res.InitPoint, nil
}

var _ LinkProvider = (*MercadoPago)(nil)
