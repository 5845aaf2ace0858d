package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/messaging"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/notifier"
	"github.com/BruksfildServices01/salon-manager/internal/usecase/automation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

// --------------------------------------------------
// fakes
// --------------------------------------------------

type memStore struct {
	mu   sync.Mutex
	rows []models.MessageHistory
}

func (s *memStore) SaveMessage(_ context.Context, msg *models.MessageHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, *msg)
	return nil
}

func (s *memStore) ListByClient(_ context.Context, clientID uuid.UUID, _ int) ([]models.MessageHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.MessageHistory
	for _, r := range s.rows {
		if r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out, nil
}

type automationRepo struct {
	clients []models.Client
}

func (r *automationRepo) ListAppointmentsStartingBetween(context.Context, time.Time, time.Time, []string) ([]models.Appointment, error) {
	return nil, nil
}

func (r *automationRepo) ListClientsWithBirthDate(context.Context) ([]models.Client, error) {
	return r.clients, nil
}

func (r *automationRepo) ListUnpaidReceivablesWithClient(context.Context) ([]models.Receivable, error) {
	return nil, nil
}

type reportRepo struct{}

func (reportRepo) ListAppointmentsBetween(context.Context, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (reportRepo) ListReceivables(context.Context) ([]models.Receivable, error) {
	return nil, nil
}

func (reportRepo) ListReceivablesDueBetween(context.Context, time.Time, time.Time) ([]models.Receivable, error) {
	return nil, nil
}

func (reportRepo) ListClientsWithBirthDate(context.Context) ([]models.Client, error) {
	return nil, nil
}

// --------------------------------------------------
// params
// --------------------------------------------------

func TestParamIDRejectsGarbage(t *testing.T) {
	r := gin.New()
	r.GET("/x/:id", func(c *gin.Context) {
		if _, ok := paramID(c); ok {
			c.Status(http.StatusOK)
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_id")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

// --------------------------------------------------
// settings
// --------------------------------------------------

func TestApplySettingsNormalizes(t *testing.T) {
	s := models.DefaultSalonSettings()

	err := applySettings(&s, UpdateSettingsRequest{
		SalonName:  strPtr("  Studio Bela "),
		LogoText:   strPtr("bela"),
		LogoSizePx: intPtr(500),
		TextColor:  strPtr(""),
	})
	require.NoError(t, err)

	assert.Equal(t, "Studio Bela", s.SalonName)
	assert.Equal(t, "BEL", s.LogoText)
	assert.Equal(t, maxLogoSizePx, s.LogoSizePx)
	assert.Equal(t, models.DefaultSalonSettings().TextColor, s.TextColor)

	require.NoError(t, applySettings(&s, UpdateSettingsRequest{LogoSizePx: intPtr(0)}))
	assert.Equal(t, models.DefaultSalonSettings().LogoSizePx, s.LogoSizePx)

	require.NoError(t, applySettings(&s, UpdateSettingsRequest{LogoSizePx: intPtr(3)}))
	assert.Equal(t, minLogoSizePx, s.LogoSizePx)
}

func TestApplySettingsRejectsBadColor(t *testing.T) {
	s := models.DefaultSalonSettings()

	err := applySettings(&s, UpdateSettingsRequest{ButtonColor: strPtr("pink")})

	assert.True(t, httperr.IsValidation(err))
	assert.Equal(t, models.DefaultSalonSettings().ButtonColor, s.ButtonColor)
}

func TestUploadLogoWithoutStorage(t *testing.T) {
	h := NewSettingsHandler(nil, nil)
	r := gin.New()
	r.POST("/settings/logo", h.UploadLogo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/settings/logo", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "storage_disabled")
}

// --------------------------------------------------
// reports
// --------------------------------------------------

func TestReportPeriodInvalidMode(t *testing.T) {
	h := NewReportHandler(reportRepo{}, time.UTC)
	r := gin.New()
	r.GET("/reports", h.Period)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports?mode=week", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_mode")
}

func TestDashboardEmpty(t *testing.T) {
	h := NewReportHandler(reportRepo{}, time.UTC)
	r := gin.New()
	r.GET("/dashboard", h.Dashboard)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	decode(t, w, &body)
	assert.Equal(t, "-", body["top_professional"])
	assert.Empty(t, body["alerts"])
}

// --------------------------------------------------
// automation + messages
// --------------------------------------------------

func TestAutomationRunScanBirthday(t *testing.T) {
	birth := time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC)
	ana := models.Client{ID: uuid.New(), Name: "Ana", Phone: "11999990000", AcceptsMessages: true, BirthDate: &birth}

	mock := notifier.NewMock()
	store := &memStore{}
	runner := automation.NewRunner(
		&automationRepo{clients: []models.Client{ana}},
		messaging.NewMessenger(mock, store),
		time.UTC,
	)

	h := NewAutomationHandler(runner, time.UTC)
	h.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

	r := gin.New()
	r.POST("/automation/run/:scan", h.RunScan)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/automation/run/birthday", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Report automation.ScanReport `json:"report"`
	}
	decode(t, w, &body)
	assert.Equal(t, 1, body.Report.Sent)
	assert.Len(t, mock.Sent(), 1)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/automation/run/weekly", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// o histórico gravado pela automação aparece na listagem do cliente
	mh := NewMessageHandler(nil, store, nil)
	r.GET("/clients/:id/messages", mh.History)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clients/"+ana.ID.String()+"/messages", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Data  []models.MessageHistory `json:"data"`
		Total int                     `json:"total"`
	}
	decode(t, w, &list)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, string(messaging.StatusSent), list.Data[0].Status)
}

func TestSendMessageRequiresBody(t *testing.T) {
	h := NewMessageHandler(nil, &memStore{}, nil)
	r := gin.New()
	r.POST("/clients/:id/messages", h.Send)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/clients/"+uuid.NewString()+"/messages", strings.NewReader(`{"body":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing_field")
}
