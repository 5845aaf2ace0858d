package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

func defaultClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: defaultTimeout}
}

func postJSON(
	ctx context.Context,
	client *http.Client,
	url string,
	headers map[string]string,
	payload any,
	out any,
) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// --------------------------------------------------
// HTTPWhatsApp (gateway REST estilo Z-API)
// --------------------------------------------------

const HTTPProvider = "whatsapp-http"

type HTTPWhatsApp struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPWhatsApp(baseURL, token string, client *http.Client) *HTTPWhatsApp {
	return &HTTPWhatsApp{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  defaultClient(client),
	}
}

type sendTextRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type sendTextResponse struct {
	ZaapID    string `json:"zaapId"`
	MessageID string `json:"messageId"`
	ID        string `json:"id"`
	Error     string `json:"error"`
}

func (h *HTTPWhatsApp) Send(ctx context.Context, msg Message) (Result, error) {
	headers := map[string]string{}
	if h.token != "" {
		headers["Client-Token"] = h.token
	}

	var resp sendTextResponse
	err := postJSON(ctx, h.client, h.baseURL+"/send-text", headers,
		sendTextRequest{Phone: msg.To, Message: msg.Body}, &resp)
	if err != nil {
		return Result{OK: false, Provider: HTTPProvider, Error: err.Error()}, err
	}

	if resp.Error != "" {
		return Result{OK: false, Provider: HTTPProvider, Error: resp.Error}, nil
	}

	externalID := resp.MessageID
	if externalID == "" {
		externalID = resp.ID
	}

	return Result{OK: true, Provider: HTTPProvider, ExternalID: externalID}, nil
}

// --------------------------------------------------
// SupabaseFunction (Edge Function "send-whatsapp")
// --------------------------------------------------

const (
	SupabaseProvider = "supabase-function"
	sendFunction     = "send-whatsapp"
)

type SupabaseFunction struct {
	url    string
	key    string
	client *http.Client
}

func NewSupabaseFunction(projectURL, serviceKey string, client *http.Client) *SupabaseFunction {
	return &SupabaseFunction{
		url:    strings.TrimRight(projectURL, "/") + "/functions/v1/" + sendFunction,
		key:    serviceKey,
		client: defaultClient(client),
	}
}

func (s *SupabaseFunction) Send(ctx context.Context, msg Message) (Result, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + s.key,
		"apikey":        s.key,
	}

	var res Result
	if err := postJSON(ctx, s.client, s.url, headers, msg, &res); err != nil {
		return Result{OK: false, Provider: SupabaseProvider, Error: err.Error()}, err
	}

	if res.Provider == "" {
		res.Provider = SupabaseProvider
	}
	return res, nil
}
