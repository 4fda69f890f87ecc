package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/marketplace-service/internal/pkg/apperror"
	"github.com/fekuna/marketplace-service/internal/pkg/i18n"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
	"github.com/fekuna/marketplace-service/internal/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newResponder(t *testing.T) *Responder {
	t.Helper()
	bundle, err := i18n.New("en")
	require.NoError(t, err)
	return NewResponder(bundle, logger.NewNop())
}

func TestResponder_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		location string
	}{
		{"validation", apperror.NewValidationError("price", validation.MsgPricePositive), http.StatusBadRequest, ""},
		{"not found", fmt.Errorf("load: %w", apperror.ErrNotFound), http.StatusNotFound, ""},
		{"forbidden", apperror.ErrForbidden, http.StatusForbidden, ""},
		{"credentials", apperror.ErrInvalidCredentials, http.StatusBadRequest, ""},
		{"anonymous", apperror.ErrUnauthenticated, http.StatusSeeOther, LoginPath},
		{"no vendor", apperror.ErrNoVendor, http.StatusSeeOther, RegisterPath},
		{"quota", apperror.ErrQuotaExceeded, http.StatusSeeOther, DashboardPath},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, ""},
	}

	r := newResponder(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			r.Error(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.True(t, c.IsAborted())
			if tt.location != "" {
				assert.Equal(t, tt.location, w.Header().Get("Location"))
			}
		})
	}
}

func TestResponder_ValidationBodyIsLocalized(t *testing.T) {
	r := newResponder(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", nil)
	c.Request.Header.Set("Accept-Language", "fr")

	r.Error(c, apperror.NewValidationError("whatsapp_number", validation.MsgWhatsApp))

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Errors["whatsapp_number"], "WhatsApp")
	assert.NotEqual(t, validation.MsgWhatsApp, body.Errors["whatsapp_number"])
}

func TestResponder_ForbiddenBodyIsGeneric(t *testing.T) {
	r := newResponder(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/product/edit/3", nil)

	r.Error(c, fmt.Errorf("product 3 belongs to vendor 9: %w", apperror.ErrForbidden))

	assert.NotContains(t, w.Body.String(), "vendor 9")
}

func TestResponder_ParamID(t *testing.T) {
	r := newResponder(t)

	for raw, ok := range map[string]bool{"12": true, "0": false, "-3": false, "abc": false} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/product/"+raw, nil)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		id, got := r.ParamID(c, "id")
		assert.Equal(t, ok, got, raw)
		if ok {
			assert.Equal(t, int64(12), id)
		} else {
			assert.Equal(t, http.StatusNotFound, w.Code)
		}
	}
}
