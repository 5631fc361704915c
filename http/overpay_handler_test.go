package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltv-advisor/config"
	"ltv-advisor/domain"
	"ltv-advisor/service"
)

const referenceBody = `{
	"property_value": 200000,
	"mortgage_balance": 150000,
	"mortgage_term_years": 30,
	"fixed_term_years": 5,
	"current_ltv_rate_pct": 4.50,
	"next_ltv_rate_pct": 4.45
}`

func newOverpayHandler() *OverpayHandler {
	h := NewOverpayHandler(
		service.NewOverpayService(),
		service.NewExplanationService(config.ExplanationConfig{}),
	)
	h.now = func() time.Time { return time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC) }
	return h
}

func post(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestOverpayHandler_Calculate(t *testing.T) {
	w := post(t, newOverpayHandler().Calculate, "/overpay/calculate", referenceBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result domain.CalculationResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))

	assert.Equal(t, 75, result.LTV.DisplayPct)
	assert.Equal(t, 70.0, result.LTV.NextBracketPct)
	assert.InDelta(t, 10000, result.LTV.AmountToNextBracket, 1e-9)
	assert.Len(t, result.BracketTable, 19)
	assert.InDelta(t, 54.8217, result.Simple.MonthlySavings, 1e-4)
	assert.Len(t, result.Optimistic.Scenarios, 2)
}

func TestOverpayHandler_CalculateErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		field  string
		constr string
	}{
		{
			name:   "malformed json",
			body:   `{"property_value":`,
			status: http.StatusBadRequest,
		},
		{
			name:   "zero property value",
			body:   `{"property_value": 0, "mortgage_balance": 1000, "mortgage_term_years": 25, "fixed_term_years": 2}`,
			status: http.StatusBadRequest,
			field:  "property_value",
		},
		{
			name:   "bracket not below current",
			body:   `{"property_value": 200000, "mortgage_balance": 150000, "mortgage_term_years": 30, "fixed_term_years": 5, "next_ltv_bracket_pct": 80}`,
			status: http.StatusUnprocessableEntity,
			constr: "next_bracket_below_current",
		},
		{
			name:   "fixed term longer than mortgage",
			body:   `{"property_value": 200000, "mortgage_balance": 150000, "mortgage_term_years": 2, "fixed_term_years": 5}`,
			status: http.StatusUnprocessableEntity,
			constr: "fixed_term_within_mortgage_term",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, newOverpayHandler().Calculate, "/overpay/calculate", tt.body)
			require.Equal(t, tt.status, w.Code)

			var body errorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, tt.field, body.Field)
			assert.Equal(t, tt.constr, body.Constraint)
		})
	}
}

func TestOverpayHandler_CalculateMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/overpay/calculate", nil)
	w := httptest.NewRecorder()

	newOverpayHandler().Calculate(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestOverpayHandler_Brackets(t *testing.T) {
	h := newOverpayHandler()

	req := httptest.NewRequest(http.MethodGet, "/overpay/brackets?property_value=250000", nil)
	w := httptest.NewRecorder()
	h.Brackets(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var table []domain.BracketEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&table))
	require.Len(t, table, 19)
	assert.Equal(t, domain.BracketEntry{LTVPct: 60, MortgageAmount: 150000}, table[11])

	for _, query := range []string{"", "?property_value=abc", "?property_value=-10", "?property_value=NaN", "?property_value=Inf"} {
		req := httptest.NewRequest(http.MethodGet, "/overpay/brackets"+query, nil)
		w := httptest.NewRecorder()
		h.Brackets(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}

	req = httptest.NewRequest(http.MethodPost, "/overpay/brackets", nil)
	w = httptest.NewRecorder()
	h.Brackets(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestOverpayHandler_Explain(t *testing.T) {
	w := post(t, newOverpayHandler().Explain, "/overpay/explain", referenceBody)
	require.Equal(t, http.StatusOK, w.Code)

	var body explainResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 70.0, body.Result.LTV.NextBracketPct)
	assert.Contains(t, body.Explanation, "Your current LTV is 75%.")
	assert.Contains(t, body.Explanation, "£10,000.00")
}

func TestOverpayHandler_Report(t *testing.T) {
	w := post(t, newOverpayHandler().Report, "/overpay/report", referenceBody)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ltv-overpayment-report.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestOverpayHandler_ReportRejectsBadInput(t *testing.T) {
	w := post(t, newOverpayHandler().Report, "/overpay/report", `{"property_value": -1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}
