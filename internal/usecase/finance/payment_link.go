package finance

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/finance"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/infra/payments"
)

type CreatePaymentLink struct {
	repo     domain.Repository
	provider payments.LinkProvider
}

// provider nil = recurso desligado (sem MERCADOPAGO_ACCESS_TOKEN).
func NewCreatePaymentLink(repo domain.Repository, provider payments.LinkProvider) *CreatePaymentLink {
	return &CreatePaymentLink{repo: repo, provider: provider}
}

func (uc *CreatePaymentLink) Execute(ctx context.Context, receivableID uuid.UUID) (string, error) {
	if uc.provider == nil {
		return "", httperr.ErrBusiness("payment_link_disabled")
	}

	rec, err := uc.repo.GetReceivable(ctx, receivableID)
	if err != nil {
		return "", err
	}
	if rec.Status == string(domain.StatusPaid) {
		return "", httperr.ErrBusiness("already_paid")
	}

	title := rec.Description
	if title == "" {
		title = fmt.Sprintf("Conta %s", rec.ClientName)
	}

	return uc.provider.CreateLink(ctx, payments.LinkRequest{
		Reference: rec.ID.String(),
		Title:     title,
		Amount:    rec.Amount,
	})
}
