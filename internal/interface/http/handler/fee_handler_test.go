package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/campus-market-backend/internal/interface/http/dto"
	"github.com/ignatzorin/campus-market-backend/internal/usecase/reservation"
)

func TestFeeHandler_Quote(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewFeeHandler(reservation.NewQuoteFeeUseCase())
	r.GET("/fees/quote", handler.Quote)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantFee    int64
	}{
		{"regular amount", "?amount=4500", http.StatusOK, 251},
		{"zero amount gets floor", "?amount=0", http.StatusOK, 49},
		{"large amount gets cap", "?amount=100000", http.StatusOK, 999},
		{"negative amount", "?amount=-1", http.StatusBadRequest, 0},
		{"amount overflows total", "?amount=9223372036854775807", http.StatusBadRequest, 0},
		{"not a number", "?amount=abc", http.StatusBadRequest, 0},
		{"missing amount", "", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/fees/quote"+tt.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var env struct {
				Data dto.FeeQuoteResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, tt.wantFee, env.Data.PlatformFee)
			assert.Equal(t, env.Data.Amount+env.Data.PlatformFee, env.Data.Total)
		})
	}
}

func TestHealthHandler_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := newSeededStore(t)
	handler := NewHealthHandler(store, nil)
	r.GET("/health", handler.Health)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 1, resp.Reservations)
}
