package notifier

import (
	"context"
	"fmt"
	"log"

	"github.com/BruksfildServices01/salon-manager/internal/config"
)

type Message struct {
	To       string            `json:"to"`
	Body     string            `json:"body"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Result espelha a resposta do gateway; OK=false com Error é uma recusa do provedor.
type Result struct {
	OK         bool   `json:"ok"`
	Provider   string `json:"provider,omitempty"`
	ExternalID string `json:"externalId,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Notifier envia uma mensagem sem fila nem retry.
// Um erro indica falha de transporte; o chamador registra e segue.
type Notifier interface {
	Send(ctx context.Context, msg Message) (Result, error)
}

const (
	ProviderMock     = "mock"
	ProviderHTTP     = "http"
	ProviderSupabase = "supabase"
)

// FromConfig escolhe a implementação por NOTIFIER_PROVIDER.
func FromConfig(cfg *config.Config) (Notifier, error) {
	switch cfg.NotifierProvider {
	case "", ProviderMock:
		return NewMock(), nil

	case ProviderHTTP:
		if cfg.WhatsAppAPIURL == "" {
			return nil, fmt.Errorf("notifier http: WHATSAPP_API_URL is required")
		}
		return NewHTTPWhatsApp(cfg.WhatsAppAPIURL, cfg.WhatsAppAPIToken, nil), nil

	case ProviderSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" {
			return nil, fmt.Errorf("notifier supabase: SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required")
		}
		return NewSupabaseFunction(cfg.SupabaseURL, cfg.SupabaseServiceKey, nil), nil

	default:
		log.Printf("unknown notifier provider %q, using mock", cfg.NotifierProvider)
		return NewMock(), nil
	}
}
