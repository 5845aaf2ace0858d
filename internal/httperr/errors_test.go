package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestRespondStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", ErrValidation("missing_field", "client_id"), http.StatusBadRequest, "missing_field"},
		{"not found", ErrNotFound("appointment"), http.StatusNotFound, "appointment_not_found"},
		{"business", ErrBusiness("invalid_state"), http.StatusBadRequest, "invalid_state"},
		{"wrapped not found", fmt.Errorf("load: %w", ErrNotFound("client")), http.StatusNotFound, "client_not_found"},
		{"unique violation", ErrPersistence("insert", &pgconn.PgError{Code: "23505"}), http.StatusConflict, "conflict"},
		{"persistence", ErrPersistence("update appointment", errors.New("boom")), http.StatusInternalServerError, "persistence_error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Respond(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error_code":"`+tc.code+`"`)
		})
	}
}

func TestPersistenceErrorUnwraps(t *testing.T) {
	inner := errors.New("connection reset")
	err := ErrPersistence("upsert receivable", inner)

	assert.ErrorIs(t, err, inner)
	assert.Nil(t, ErrPersistence("noop", nil))
}

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("wrap: %w", ErrBusiness("cash_session_open"))
	assert.True(t, IsBusiness(err, "cash_session_open"))
	assert.False(t, IsBusiness(err, "invalid_state"))
}

func TestValidationCarriesField(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Respond(c, ErrValidation("missing_expected_date", "expected_date"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"expected_date"`)
	assert.True(t, c.IsAborted())
}

func TestInvalidStateDetail(t *testing.T) {
	err := ErrInvalidState("cancelled")

	assert.True(t, IsBusiness(err, "invalid_state"))
	assert.Equal(t, "invalid_state (status=cancelled)", err.Error())
}
